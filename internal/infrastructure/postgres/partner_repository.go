package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

const partnerColumns = `id, partner_code, name, partner_type, contact_person, phone, email, address,
	bank_account, tax_number, remark, is_active, created_at, updated_at`

// PartnerRepo implementación de PartnerRepository sobre PostgreSQL (usable con pool o tx).
type PartnerRepo struct {
	q Querier
}

// NewPartnerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

// Create persiste un socio.
func (r *PartnerRepo) Create(ctx context.Context, p *entity.Partner) error {
	query := `
		INSERT INTO partners (` + partnerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Code, p.Name, p.Type, p.ContactPerson, p.Phone, p.Email, p.Address,
		p.BankAccount, p.TaxNumber, p.Remark, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

// GetByID obtiene un socio por ID.
func (r *PartnerRepo) GetByID(ctx context.Context, id string) (*entity.Partner, error) {
	p, err := scanPartner(r.q.QueryRow(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return p, nil
}

// GetByCode obtiene un socio por código.
func (r *PartnerRepo) GetByCode(ctx context.Context, code string) (*entity.Partner, error) {
	p, err := scanPartner(r.q.QueryRow(ctx, `SELECT `+partnerColumns+` FROM partners WHERE partner_code = $1`, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner by code: %w", err)
	}
	return p, nil
}

// Update actualiza un socio existente.
func (r *PartnerRepo) Update(ctx context.Context, p *entity.Partner) error {
	query := `
		UPDATE partners SET name = $2, partner_type = $3, contact_person = $4, phone = $5, email = $6,
			address = $7, bank_account = $8, tax_number = $9, remark = $10, is_active = $11, updated_at = $12
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Type, p.ContactPerson, p.Phone, p.Email,
		p.Address, p.BankAccount, p.TaxNumber, p.Remark, p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update partner: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un socio.
func (r *PartnerRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM partners WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete partner: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List filtra por tipos, estado y texto, más recientes primero.
func (r *PartnerRepo) List(ctx context.Context, f repository.PartnerFilter) ([]*entity.Partner, error) {
	query := `
		SELECT ` + partnerColumns + `
		FROM partners
		WHERE (cardinality($1::text[]) = 0 OR partner_type = ANY($1))
		  AND ($2::boolean IS NULL OR is_active = $2)
		  AND ($3 = '' OR strpos(lower(name), lower($3)) > 0 OR strpos(lower(partner_code), lower($3)) > 0
		       OR strpos(lower(contact_person), lower($3)) > 0)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`
	types := f.Types
	if types == nil {
		types = []string{}
	}
	rows, err := r.q.Query(ctx, query, types, f.IsActive, f.Search, limitArg(f.Limit), f.Skip)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()
	var list []*entity.Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanPartner(row pgx.Row) (*entity.Partner, error) {
	var p entity.Partner
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Type, &p.ContactPerson, &p.Phone, &p.Email, &p.Address,
		&p.BankAccount, &p.TaxNumber, &p.Remark, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

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

var _ repository.InventoryLineRepository = (*InventoryLineRepo)(nil)

const lineColumns = `id, product_id, warehouse, batch_number, quantity, unit_price, location, created_at, updated_at`

// InventoryLineRepo implementación de InventoryLineRepository sobre PostgreSQL (usable con pool o tx).
type InventoryLineRepo struct {
	q Querier
}

// NewInventoryLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryLineRepository(q Querier) *InventoryLineRepo {
	return &InventoryLineRepo{q: q}
}

// Create persiste una línea nueva.
func (r *InventoryLineRepo) Create(ctx context.Context, l *entity.InventoryLine) error {
	query := `INSERT INTO inventory_lines (` + lineColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.ProductID, l.Warehouse, l.BatchNumber, l.Quantity, l.UnitPrice, l.Location, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("%w: la cantidad no puede ser negativa", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert inventory line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *InventoryLineRepo) GetByID(ctx context.Context, id string) (*entity.InventoryLine, error) {
	return r.get(ctx, `SELECT `+lineColumns+` FROM inventory_lines WHERE id = $1`, id)
}

// GetForUpdate obtiene la línea y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
func (r *InventoryLineRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryLine, error) {
	return r.get(ctx, `SELECT `+lineColumns+` FROM inventory_lines WHERE id = $1 FOR UPDATE`, id)
}

func (r *InventoryLineRepo) get(ctx context.Context, query, id string) (*entity.InventoryLine, error) {
	l, err := scanLine(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory line: %w", err)
	}
	return l, nil
}

// UpdateDetails actualiza todo salvo la cantidad.
func (r *InventoryLineRepo) UpdateDetails(ctx context.Context, l *entity.InventoryLine) error {
	query := `
		UPDATE inventory_lines SET warehouse = $2, batch_number = $3, unit_price = $4, location = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, l.ID, l.Warehouse, l.BatchNumber, l.UnitPrice, l.Location, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update inventory line: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddQuantity suma delta con una actualización condicional: nunca deja la línea en negativo
// aunque el caller no haya bloqueado la fila.
func (r *InventoryLineRepo) AddQuantity(ctx context.Context, id string, delta int) (int, error) {
	var qty int
	err := r.q.QueryRow(ctx, `
		UPDATE inventory_lines SET quantity = quantity + $2, updated_at = now()
		WHERE id = $1 AND quantity + $2 >= 0
		RETURNING quantity`, id, delta).Scan(&qty)
	if err == nil {
		return qty, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("update inventory quantity: %w", err)
	}
	// Sin filas: la línea no existe o el stock no alcanza
	var current int
	if err := r.q.QueryRow(ctx, `SELECT quantity FROM inventory_lines WHERE id = $1`, id).Scan(&current); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get inventory quantity: %w", err)
	}
	return 0, &domain.InsufficientStockError{Current: current, Requested: -delta}
}

// List filtra por producto y bodega, más recientes primero.
func (r *InventoryLineRepo) List(ctx context.Context, f repository.InventoryLineFilter) ([]*entity.InventoryLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM inventory_lines
		WHERE ($1 = '' OR product_id::text = $1)
		  AND ($2 = '' OR warehouse = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.ProductID, f.Warehouse, limitArg(f.Limit), f.Skip)
	if err != nil {
		return nil, fmt.Errorf("list inventory lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanLine(row pgx.Row) (*entity.InventoryLine, error) {
	var l entity.InventoryLine
	err := row.Scan(&l.ID, &l.ProductID, &l.Warehouse, &l.BatchNumber, &l.Quantity, &l.UnitPrice,
		&l.Location, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

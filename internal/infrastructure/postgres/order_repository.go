package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, kind, order_number, partner_id, partner_name, items, total_amount, status,
	order_date, expected_date, shipping_address, remark, created_by, created_at, updated_at`

// orderItemRow forma JSONB de una línea de orden.
type orderItemRow struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	FulfilledQuantity int             `json:"fulfilled_quantity"`
	Remark            string          `json:"remark,omitempty"`
}

// OrderRepo órdenes de compra y venta en una sola tabla, discriminadas por kind.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para órdenes.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste una orden nueva. ErrDuplicate si el número ya existe.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	items, err := marshalItems(o.Items)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.q.Exec(ctx, query,
		o.ID, o.Kind, o.OrderNumber, o.PartnerID, o.PartnerName, items, o.TotalAmount, o.Status,
		o.OrderDate, o.ExpectedDate, o.ShippingAddress, o.Remark, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden de la clase indicada.
func (r *OrderRepo) GetByID(ctx context.Context, kind, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE kind = $1 AND id = $2`, kind, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Update escribe solo las columnas presentes en el patch y devuelve la fila resultante.
func (r *OrderRepo) Update(ctx context.Context, kind, id string, p repository.OrderPatch) (*entity.Order, error) {
	sets := []string{"updated_at = $3"}
	args := []any{kind, id, p.UpdatedAt}
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.PartnerID != nil {
		set("partner_id", *p.PartnerID)
	}
	if p.PartnerName != nil {
		set("partner_name", *p.PartnerName)
	}
	if p.Items != nil {
		items, err := marshalItems(*p.Items)
		if err != nil {
			return nil, err
		}
		set("items", items)
	}
	if p.TotalAmount != nil {
		set("total_amount", *p.TotalAmount)
	}
	if p.Status != nil {
		set("status", *p.Status)
	}
	if p.ExpectedDate != nil {
		set("expected_date", *p.ExpectedDate)
	}
	if p.ShippingAddress != nil {
		set("shipping_address", *p.ShippingAddress)
	}
	if p.Remark != nil {
		set("remark", *p.Remark)
	}
	query := `UPDATE orders SET ` + strings.Join(sets, ", ") + `
		WHERE kind = $1 AND id = $2
		RETURNING ` + orderColumns
	o, err := scanOrder(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update order: %w", err)
	}
	return o, nil
}

// UpdateStatusIf transición condicional: solo aplica si el estado actual es from.
func (r *OrderRepo) UpdateStatusIf(ctx context.Context, kind, id, from, to string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE orders SET status = $4, updated_at = $5 WHERE kind = $1 AND id = $2 AND status = $3`,
		kind, id, from, to, at)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Delete elimina la orden. false si no existía.
func (r *OrderRepo) Delete(ctx context.Context, kind, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE kind = $1 AND id = $2`, kind, id)
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List órdenes de una clase, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE kind = $1
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR partner_id = $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, f.Kind, f.Status, f.PartnerID, limitArg(f.Limit), f.Skip)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var (
		o     entity.Order
		items []byte
	)
	err := row.Scan(&o.ID, &o.Kind, &o.OrderNumber, &o.PartnerID, &o.PartnerName, &items, &o.TotalAmount, &o.Status,
		&o.OrderDate, &o.ExpectedDate, &o.ShippingAddress, &o.Remark, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	var rowsJSON []orderItemRow
	if err := json.Unmarshal(items, &rowsJSON); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	o.Items = make([]entity.OrderItem, 0, len(rowsJSON))
	for _, it := range rowsJSON {
		o.Items = append(o.Items, entity.OrderItem{
			ProductID:         it.ProductID,
			ProductName:       it.ProductName,
			Quantity:          it.Quantity,
			UnitPrice:         it.UnitPrice,
			FulfilledQuantity: it.FulfilledQuantity,
			Remark:            it.Remark,
		})
	}
	return &o, nil
}

func marshalItems(items []entity.OrderItem) ([]byte, error) {
	out := make([]orderItemRow, 0, len(items))
	for _, it := range items {
		out = append(out, orderItemRow{
			ProductID:         it.ProductID,
			ProductName:       it.ProductName,
			Quantity:          it.Quantity,
			UnitPrice:         it.UnitPrice,
			FulfilledQuantity: it.FulfilledQuantity,
			Remark:            it.Remark,
		})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}
	return b, nil
}

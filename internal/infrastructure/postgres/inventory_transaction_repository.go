package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo libro de movimientos sobre PostgreSQL. Solo INSERT y SELECT.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create inserta un movimiento.
func (r *InventoryTransactionRepo) Create(ctx context.Context, t *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (id, product_id, inventory_id, operation_type, quantity, batch_number,
			related_order_id, operator, remark, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ProductID, t.InventoryID, t.Type, t.Quantity, t.BatchNumber,
		t.RelatedOrderID, t.Operator, t.Remark, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// List devuelve movimientos en orden created_at DESC, id DESC. Con After pagina por (created_at, id).
func (r *InventoryTransactionRepo) List(ctx context.Context, f repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	query := `
		SELECT id, product_id, inventory_id, operation_type, quantity, batch_number,
			related_order_id, operator, remark, created_at
		FROM inventory_transactions
		WHERE ($1 = '' OR product_id::text = $1)
		  AND ($2 = '' OR operation_type = $2)
		  AND ($3::timestamptz IS NULL OR (created_at, id) < ($3, $4::uuid))
		ORDER BY created_at DESC, id DESC
		LIMIT $5 OFFSET $6`
	var afterAt, afterID any
	skip := f.Skip
	if f.After != nil {
		afterAt, afterID, skip = f.After.CreatedAt, f.After.ID, 0
	}
	rows, err := r.q.Query(ctx, query, f.ProductID, f.Type, afterAt, afterID, limitArg(f.Limit), skip)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		if err := rows.Scan(&t.ID, &t.ProductID, &t.InventoryID, &t.Type, &t.Quantity, &t.BatchNumber,
			&t.RelatedOrderID, &t.Operator, &t.Remark, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

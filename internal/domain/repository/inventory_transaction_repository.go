package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
)

// TransactionCursor posición estable en el libro: (created_at, id) del último registro visto.
type TransactionCursor struct {
	CreatedAt time.Time
	ID        string
}

// TransactionFilter filtros del libro. Si After no es nil se pagina por cursor y Skip se ignora.
type TransactionFilter struct {
	ProductID string
	Type      string
	After     *TransactionCursor
	Page
}

// InventoryTransactionRepository puerto del libro de movimientos (solo inserción y lectura).
// List ordena por created_at DESC, id DESC.
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	List(ctx context.Context, f TransactionFilter) ([]*entity.InventoryTransaction, error)
}

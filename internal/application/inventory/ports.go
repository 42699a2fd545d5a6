package inventory

import (
	"context"

	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit. Garantiza atomicidad del libro de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lineRepo repository.InventoryLineRepository,
		txRepo repository.InventoryTransactionRepository,
	) error) error
}

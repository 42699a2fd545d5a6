package memory

import (
	"context"

	"github.com/jhoicas/bioinventario-api/internal/application/inventory"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las transacciones del libro sobre el Store.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run toma el lock de escritura, ejecuta fn sobre una copia de líneas y movimientos
// y la publica solo si fn no falla (Rollback implícito).
func (r *TxRunner) Run(ctx context.Context, fn func(
	lineRepo repository.InventoryLineRepository,
	txRepo repository.InventoryTransactionRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tx := r.s.state.cloneLedger()
	v := view{s: r.s, tx: &tx}
	if err := fn(&InventoryLineRepo{v: v}, &InventoryTransactionRepo{v: v}); err != nil {
		return err
	}
	r.s.state.lines = tx.lines
	r.s.state.transactions = tx.transactions
	return nil
}

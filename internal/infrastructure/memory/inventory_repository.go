package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	domaininv "github.com/jhoicas/bioinventario-api/internal/domain/inventory"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

var (
	_ repository.InventoryLineRepository        = (*InventoryLineRepo)(nil)
	_ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)
)

// InventoryLineRepo líneas de inventario en memoria.
type InventoryLineRepo struct {
	v view
}

// NewInventoryLineRepository construye el repositorio fuera de transacción (lecturas y altas).
func NewInventoryLineRepository(s *Store) *InventoryLineRepo {
	return &InventoryLineRepo{v: view{s: s}}
}

// Create persiste una línea nueva.
func (r *InventoryLineRepo) Create(_ context.Context, l *entity.InventoryLine) error {
	if l.Quantity < 0 {
		return fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
	}
	return r.v.write(func(st *state) error {
		st.lines[l.ID] = *l
		return nil
	})
}

// GetByID obtiene una línea; (nil, nil) si no existe.
func (r *InventoryLineRepo) GetByID(_ context.Context, id string) (*entity.InventoryLine, error) {
	var out *entity.InventoryLine
	r.v.read(func(st *state) {
		if l, ok := st.lines[id]; ok {
			out = &l
		}
	})
	return out, nil
}

// GetForUpdate equivale a GetByID: el TxRunner ya serializa las transacciones.
func (r *InventoryLineRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryLine, error) {
	return r.GetByID(ctx, id)
}

// UpdateDetails persiste todo salvo la cantidad.
func (r *InventoryLineRepo) UpdateDetails(_ context.Context, l *entity.InventoryLine) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.lines[l.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := *l
		next.Quantity = cur.Quantity
		st.lines[l.ID] = next
		return nil
	})
}

// AddQuantity suma delta si la cantidad resultante no es negativa.
func (r *InventoryLineRepo) AddQuantity(_ context.Context, id string, delta int) (int, error) {
	var qty int
	err := r.v.write(func(st *state) error {
		l, ok := st.lines[id]
		if !ok {
			return domain.ErrNotFound
		}
		next, err := domaininv.ApplyDelta(l.Quantity, delta)
		if err != nil {
			return err
		}
		l.Quantity = next
		st.lines[id] = l
		qty = next
		return nil
	})
	return qty, err
}

// List filtra por producto y bodega, más recientes primero.
func (r *InventoryLineRepo) List(_ context.Context, f repository.InventoryLineFilter) ([]*entity.InventoryLine, error) {
	var list []*entity.InventoryLine
	r.v.read(func(st *state) {
		for _, l := range st.lines {
			if f.ProductID != "" && l.ProductID != f.ProductID {
				continue
			}
			if f.Warehouse != "" && l.Warehouse != f.Warehouse {
				continue
			}
			list = append(list, &l)
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return paginate(list, f.Skip, f.Limit), nil
}

// InventoryTransactionRepo libro de movimientos en memoria (solo inserción).
type InventoryTransactionRepo struct {
	v view
}

// NewInventoryTransactionRepository construye el repositorio de lectura del libro.
func NewInventoryTransactionRepository(s *Store) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{v: view{s: s}}
}

// Create añade un movimiento al libro.
func (r *InventoryTransactionRepo) Create(_ context.Context, t *entity.InventoryTransaction) error {
	return r.v.write(func(st *state) error {
		st.transactions = append(st.transactions, *t)
		return nil
	})
}

// List devuelve movimientos en orden created_at DESC, id DESC.
func (r *InventoryTransactionRepo) List(_ context.Context, f repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	var list []*entity.InventoryTransaction
	r.v.read(func(st *state) {
		for _, t := range st.transactions {
			if f.ProductID != "" && t.ProductID != f.ProductID {
				continue
			}
			if f.Type != "" && t.Type != f.Type {
				continue
			}
			if f.After != nil && !before(t, f.After) {
				continue
			}
			list = append(list, &t)
		}
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	skip := f.Skip
	if f.After != nil {
		skip = 0
	}
	return paginate(list, skip, f.Limit), nil
}

// before indica si t va después del cursor en orden descendente.
func before(t entity.InventoryTransaction, c *repository.TransactionCursor) bool {
	if t.CreatedAt.Equal(c.CreatedAt) {
		return t.ID < c.ID
	}
	return t.CreatedAt.Before(c.CreatedAt)
}

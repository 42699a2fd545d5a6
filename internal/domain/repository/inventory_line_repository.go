package repository

import (
	"context"

	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
)

// InventoryLineFilter filtros del listado de líneas de inventario.
type InventoryLineFilter struct {
	ProductID string
	Warehouse string
	Page
}

// InventoryLineRepository define el puerto para las líneas de inventario.
// La cantidad solo cambia vía AddQuantity, que nunca deja la línea en negativo.
type InventoryLineRepository interface {
	Create(ctx context.Context, line *entity.InventoryLine) error
	GetByID(ctx context.Context, id string) (*entity.InventoryLine, error)
	// GetForUpdate obtiene la línea y la bloquea hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryLine, error)
	// UpdateDetails persiste bodega, lote, precio y ubicación; ignora Quantity.
	UpdateDetails(ctx context.Context, line *entity.InventoryLine) error
	// AddQuantity suma delta de forma condicional (quantity + delta >= 0) y devuelve la nueva cantidad.
	// Devuelve domain.ErrNotFound si la línea no existe y *domain.InsufficientStockError si quedaría negativa.
	AddQuantity(ctx context.Context, id string, delta int) (int, error)
	List(ctx context.Context, f InventoryLineFilter) ([]*entity.InventoryLine, error)
}

package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
)

// OrderFilter filtros del listado de órdenes de una clase (purchase/sales).
type OrderFilter struct {
	Kind      string
	Status    string
	PartnerID string
	Page
}

// OrderPatch campos a modificar de una orden; nil significa no tocar la columna.
// UpdatedAt siempre se escribe.
type OrderPatch struct {
	PartnerID       *string
	PartnerName     *string
	Items           *[]entity.OrderItem
	TotalAmount     *decimal.Decimal
	Status          *string
	ExpectedDate    *time.Time
	ShippingAddress *string
	Remark          *string
	UpdatedAt       time.Time
}

// OrderRepository define el puerto de persistencia de órdenes de compra y venta.
// Create devuelve domain.ErrDuplicate si el número de orden ya existe.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, kind, id string) (*entity.Order, error)
	// Update escribe solo los campos presentes en el patch y devuelve la orden resultante.
	// domain.ErrNotFound si no existe en la clase indicada.
	Update(ctx context.Context, kind, id string, p OrderPatch) (*entity.Order, error)
	// UpdateStatusIf cambia el estado solo si el actual es from. Devuelve false si no hubo cambio.
	UpdateStatusIf(ctx context.Context, kind, id, from, to string, at time.Time) (bool, error)
	Delete(ctx context.Context, kind, id string) (bool, error)
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
}

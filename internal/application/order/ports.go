package order

import (
	"context"

	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
)

// DocumentRenderer genera la representación imprimible (PDF) de una orden.
// partner puede ser nil si la contraparte ya no existe; se usa entonces la copia del nombre en la orden.
type DocumentRenderer interface {
	RenderOrder(ctx context.Context, order *entity.Order, partner *entity.Partner) ([]byte, error)
}

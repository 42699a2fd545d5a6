package repository

import (
	"context"

	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos. Search compara nombre y código sin distinguir mayúsculas.
type ProductFilter struct {
	Type     string
	Category string
	Search   string
	Page
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetByCode devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f ProductFilter) ([]*entity.Product, error)
}

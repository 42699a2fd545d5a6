package repository

import (
	"context"

	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
)

// PartnerFilter filtros del listado de socios. Types vacío = todos los tipos.
type PartnerFilter struct {
	Types    []string
	IsActive *bool
	Search   string
	Page
}

// PartnerRepository define el puerto de persistencia para proveedores y clientes.
type PartnerRepository interface {
	Create(ctx context.Context, partner *entity.Partner) error
	GetByID(ctx context.Context, id string) (*entity.Partner, error)
	GetByCode(ctx context.Context, code string) (*entity.Partner, error)
	Update(ctx context.Context, partner *entity.Partner) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f PartnerFilter) ([]*entity.Partner, error)
}

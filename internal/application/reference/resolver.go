// Package reference valida y resuelve las referencias entre entidades (producto, contraparte)
// antes de escrituras dependientes, y obtiene nombres para las vistas desnormalizadas.
package reference

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

// ParseID valida que id sea un UUID. Un id mal formado es ErrInvalidID (400), nunca NotFound.
func ParseID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return nil
}

// Resolver resuelve productos y socios comerciales referenciados por otras entidades.
type Resolver struct {
	products repository.ProductRepository
	partners repository.PartnerRepository
}

// NewResolver construye el resolver con los repositorios de catálogo.
func NewResolver(products repository.ProductRepository, partners repository.PartnerRepository) *Resolver {
	return &Resolver{products: products, partners: partners}
}

// Product devuelve el producto o ErrInvalidID / ErrNotFound.
func (r *Resolver) Product(ctx context.Context, id string) (*entity.Product, error) {
	if err := ParseID(id); err != nil {
		return nil, err
	}
	p, err := r.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return p, nil
}

// Counterparty devuelve el socio de una orden validando su rol:
// compras exigen SUPPLIER o BOTH, ventas CUSTOMER o BOTH. Un rol incorrecto se trata como inexistente.
func (r *Resolver) Counterparty(ctx context.Context, kind, id string) (*entity.Partner, error) {
	if err := ParseID(id); err != nil {
		return nil, err
	}
	p, err := r.partners.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !hasRole(p, kind) {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrNotFound, roleName(kind), id)
	}
	return p, nil
}

// ProductName devuelve el nombre del producto o "" si no se puede resolver. Nunca falla.
func (r *Resolver) ProductName(ctx context.Context, id string) string {
	p := r.lookupProduct(ctx, id)
	if p == nil {
		return ""
	}
	return p.Name
}

// ProductLabel devuelve nombre y código del producto, vacíos si no se puede resolver.
func (r *Resolver) ProductLabel(ctx context.Context, id string) (name, code string) {
	p := r.lookupProduct(ctx, id)
	if p == nil {
		return "", ""
	}
	return p.Name, p.Code
}

// PartnerName resuelve el nombre de la contraparte sin fallar. ok=false si no existe o no cumple el rol.
func (r *Resolver) PartnerName(ctx context.Context, kind, id string) (name string, ok bool) {
	p, err := r.Counterparty(ctx, kind, id)
	if err != nil {
		return "", false
	}
	return p.Name, true
}

func (r *Resolver) lookupProduct(ctx context.Context, id string) *entity.Product {
	if id == "" || ParseID(id) != nil {
		return nil
	}
	p, err := r.products.GetByID(ctx, id)
	if err != nil {
		return nil
	}
	return p
}

func hasRole(p *entity.Partner, kind string) bool {
	if kind == entity.OrderKindSales {
		return p.IsCustomer()
	}
	return p.IsSupplier()
}

func roleName(kind string) string {
	if kind == entity.OrderKindSales {
		return "cliente"
	}
	return "proveedor"
}

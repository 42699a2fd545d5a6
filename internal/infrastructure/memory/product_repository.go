package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	v view
}

// NewProductRepository construye el repositorio sobre el store.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{v: view{s: s}}
}

// Create persiste un producto. ErrDuplicate si el código ya existe.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		for _, existing := range st.products {
			if existing.Code == p.Code {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(st *state) {
		if p, ok := st.products[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetByCode obtiene un producto por código; (nil, nil) si no existe.
func (r *ProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	var out *entity.Product
	r.v.read(func(st *state) {
		for _, p := range st.products {
			if p.Code == code {
				out = &p
				return
			}
		}
	})
	return out, nil
}

// Update reemplaza el producto si existe.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		st.products[p.ID] = *p
		return nil
	})
}

// Delete elimina el producto; false si no existía.
func (r *ProductRepo) Delete(_ context.Context, id string) (bool, error) {
	var found bool
	err := r.v.write(func(st *state) error {
		_, found = st.products[id]
		delete(st.products, id)
		return nil
	})
	return found, err
}

// List filtra y pagina, más recientes primero.
func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var list []*entity.Product
	r.v.read(func(st *state) {
		for _, p := range st.products {
			if f.Type != "" && p.Type != f.Type {
				continue
			}
			if f.Category != "" && p.Category != f.Category {
				continue
			}
			if f.Search != "" && !containsFold(p.Name, f.Search) && !containsFold(p.Code, f.Search) {
				continue
			}
			list = append(list, &p)
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

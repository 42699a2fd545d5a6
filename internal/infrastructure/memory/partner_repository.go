package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

// PartnerRepo socios comerciales en memoria.
type PartnerRepo struct {
	v view
}

// NewPartnerRepository construye el repositorio sobre el store.
func NewPartnerRepository(s *Store) *PartnerRepo {
	return &PartnerRepo{v: view{s: s}}
}

// Create persiste un socio. ErrDuplicate si el código ya existe.
func (r *PartnerRepo) Create(_ context.Context, p *entity.Partner) error {
	return r.v.write(func(st *state) error {
		for _, existing := range st.partners {
			if existing.Code == p.Code {
				return domain.ErrDuplicate
			}
		}
		st.partners[p.ID] = *p
		return nil
	})
}

// GetByID obtiene un socio por ID; (nil, nil) si no existe.
func (r *PartnerRepo) GetByID(_ context.Context, id string) (*entity.Partner, error) {
	var out *entity.Partner
	r.v.read(func(st *state) {
		if p, ok := st.partners[id]; ok {
			out = &p
		}
	})
	return out, nil
}

// GetByCode obtiene un socio por código; (nil, nil) si no existe.
func (r *PartnerRepo) GetByCode(_ context.Context, code string) (*entity.Partner, error) {
	var out *entity.Partner
	r.v.read(func(st *state) {
		for _, p := range st.partners {
			if p.Code == code {
				out = &p
				return
			}
		}
	})
	return out, nil
}

// Update reemplaza el socio si existe.
func (r *PartnerRepo) Update(_ context.Context, p *entity.Partner) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.partners[p.ID]; !ok {
			return domain.ErrNotFound
		}
		st.partners[p.ID] = *p
		return nil
	})
}

// Delete elimina el socio; false si no existía.
func (r *PartnerRepo) Delete(_ context.Context, id string) (bool, error) {
	var found bool
	err := r.v.write(func(st *state) error {
		_, found = st.partners[id]
		delete(st.partners, id)
		return nil
	})
	return found, err
}

// List filtra por tipos, estado y texto (nombre, código o contacto), más recientes primero.
func (r *PartnerRepo) List(_ context.Context, f repository.PartnerFilter) ([]*entity.Partner, error) {
	var list []*entity.Partner
	r.v.read(func(st *state) {
		for _, p := range st.partners {
			if len(f.Types) > 0 && !contains(f.Types, p.Type) {
				continue
			}
			if f.IsActive != nil && p.IsActive != *f.IsActive {
				continue
			}
			if f.Search != "" && !containsFold(p.Name, f.Search) && !containsFold(p.Code, f.Search) &&
				!containsFold(p.ContactPerson, f.Search) {
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

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

package memory

import (
	"context"

	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	v view
}

// NewUserRepository construye el repositorio sobre el store.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{v: view{s: s}}
}

// Create persiste un usuario. ErrDuplicate si el username ya existe.
func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(st *state) error {
		for _, existing := range st.users {
			if existing.Username == u.Username {
				return domain.ErrDuplicate
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(st *state) {
		if u, ok := st.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

// GetByUsername obtiene un usuario por username; (nil, nil) si no existe.
func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	r.v.read(func(st *state) {
		for _, u := range st.users {
			if u.Username == username {
				out = &u
				return
			}
		}
	})
	return out, nil
}

// Count devuelve el número de usuarios.
func (r *UserRepo) Count(_ context.Context) (int, error) {
	var n int
	r.v.read(func(st *state) { n = len(st.users) })
	return n, nil
}

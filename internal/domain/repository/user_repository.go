package repository

import (
	"context"

	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Create devuelve domain.ErrDuplicate si el username ya existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Count(ctx context.Context) (int, error)
}

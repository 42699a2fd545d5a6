package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	"github.com/jhoicas/bioinventario-api/internal/domain/repository"
	"github.com/jhoicas/bioinventario-api/pkg/jwt"
)

// AdminUsername usuario creado por BootstrapAdmin.
const AdminUsername = "admin"

// TokenType tipo de token devuelto en login.
const TokenType = "bearer"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, registro, autorización de tokens y alta del primer admin.
type AuthUseCase struct {
	userRepo          repository.UserRepository
	jwtCfg            JWTConfig
	bootstrapPassword string
	log               zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
// bootstrapPassword es la contraseña del admin inicial configurada por el operador (puede ir vacía).
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, bootstrapPassword string, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, bootstrapPassword: bootstrapPassword, log: log}
}

// Register crea un usuario: hashea password con bcrypt y persiste. ErrConflict si el username ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Username = strings.TrimSpace(in.Username)
	if n := len([]rune(in.Username)); n < 3 || n > 50 {
		return nil, fmt.Errorf("%w: el usuario debe tener entre 3 y 50 caracteres", domain.ErrInvalidInput)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleUser && role != entity.RoleAdmin {
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	existing, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el usuario %s ya existe", domain.ErrConflict, in.Username)
	}
	user, err := uc.create(ctx, in.Username, in.Password, in.FullName, role, active)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica username/password y genera el JWT.
// Usuario inexistente o password incorrecta: ErrInvalidCredentials. Usuario inactivo: ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: usuario inactivo", domain.ErrForbidden)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.TokenResponse{AccessToken: token, TokenType: TokenType}, nil
}

// Authorize valida el token y devuelve el usuario vigente.
// Token inválido, expirado o de un usuario inexistente: ErrUnauthorized. Usuario inactivo: ErrForbidden.
func (uc *AuthUseCase) Authorize(ctx context.Context, token string) (*dto.UserResponse, error) {
	username, _, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: token inválido o expirado", domain.ErrUnauthorized)
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario no encontrado", domain.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: usuario inactivo", domain.ErrForbidden)
	}
	return toUserResponse(user), nil
}

// BootstrapAdmin crea el primer administrador; solo si no existe ningún usuario (si no, ErrConflict).
// Password: la del request, si no la configurada por el operador, si no una generada que se escribe en el log una sola vez.
func (uc *AuthUseCase) BootstrapAdmin(ctx context.Context, password string) (*dto.UserResponse, error) {
	n, err := uc.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, fmt.Errorf("%w: ya existen usuarios, el administrador inicial no se puede crear", domain.ErrConflict)
	}
	generated := false
	if password == "" {
		password = uc.bootstrapPassword
	}
	if password == "" {
		password = strings.ReplaceAll(uuid.NewString(), "-", "")
		generated = true
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: la contraseña debe tener al menos 6 caracteres", domain.ErrInvalidInput)
	}
	user, err := uc.create(ctx, AdminUsername, password, "Administrador", entity.RoleAdmin, true)
	if err != nil {
		return nil, err
	}
	ev := uc.log.Warn().Str("username", user.Username)
	if generated {
		ev = ev.Str("password", password)
	}
	ev.Msg("administrador inicial creado; cambie la contraseña")
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) create(ctx context.Context, username, password, fullName, role string, active bool) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		FullName:     fullName,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("%w: el usuario %s ya existe", domain.ErrConflict, username)
		}
		return nil, err
	}
	return user, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

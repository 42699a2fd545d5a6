package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bioinventario-api/internal/application/auth"
	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/domain"
	"github.com/jhoicas/bioinventario-api/internal/domain/entity"
	"github.com/jhoicas/bioinventario-api/internal/infrastructure/memory"
	"github.com/jhoicas/bioinventario-api/pkg/jwt"
)

var testJWT = auth.JWTConfig{Secret: "secreto-de-pruebas", ExpMinutes: 60, Issuer: "bioinventario-test"}

func newAuth(bootstrapPassword string, log zerolog.Logger) *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.NewUserRepository(memory.NewStore()), testJWT, bootstrapPassword, log)
}

func TestRegisterLoginAuthorize(t *testing.T) {
	uc := newAuth("", zerolog.Nop())
	ctx := context.Background()

	u, err := uc.Register(ctx, dto.RegisterRequest{Username: "  lucia ", Password: "secreta1", FullName: "Lucía Pérez"})
	require.NoError(t, err)
	assert.Equal(t, "lucia", u.Username)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.True(t, u.IsActive)

	tok, err := uc.Login(ctx, dto.LoginRequest{Username: "lucia", Password: "secreta1"})
	require.NoError(t, err)
	assert.Equal(t, auth.TokenType, tok.TokenType)

	username, role, err := jwt.Parse(testJWT.Secret, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "lucia", username)
	assert.Equal(t, entity.RoleUser, role)

	me, err := uc.Authorize(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, me.ID)
}

func TestRegister_Errors(t *testing.T) {
	uc := newAuth("", zerolog.Nop())
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "lucia", Password: "secreta1"})
	require.NoError(t, err)

	tests := []struct {
		name string
		in   dto.RegisterRequest
		want error
	}{
		{"usuario repetido", dto.RegisterRequest{Username: "lucia", Password: "otra-clave"}, domain.ErrConflict},
		{"usuario corto", dto.RegisterRequest{Username: "lu", Password: "secreta1"}, domain.ErrInvalidInput},
		{"password corta", dto.RegisterRequest{Username: "mateo", Password: "123"}, domain.ErrInvalidInput},
		{"rol desconocido", dto.RegisterRequest{Username: "mateo", Password: "secreta1", Role: "root"}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Register(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLogin_Errors(t *testing.T) {
	uc := newAuth("", zerolog.Nop())
	ctx := context.Background()
	inactive := false
	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "lucia", Password: "secreta1"})
	require.NoError(t, err)
	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "baja", Password: "secreta1", IsActive: &inactive})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "lucia", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "secreta1"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "baja", Password: "secreta1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAuthorize_Errors(t *testing.T) {
	uc := newAuth("", zerolog.Nop())
	ctx := context.Background()

	_, err := uc.Authorize(ctx, "no-es-un-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Firmado con el mismo secreto pero el usuario no existe
	tok, err := jwt.Generate(testJWT.Secret, "fantasma", entity.RoleAdmin, testJWT.Issuer, 5)
	require.NoError(t, err)
	_, err = uc.Authorize(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	tok, err = jwt.Generate("otro-secreto", "fantasma", entity.RoleAdmin, testJWT.Issuer, 5)
	require.NoError(t, err)
	_, err = uc.Authorize(ctx, tok)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestBootstrapAdmin_PasswordPrecedence(t *testing.T) {
	ctx := context.Background()

	t.Run("password del request", func(t *testing.T) {
		uc := newAuth("configurada", zerolog.Nop())
		admin, err := uc.BootstrapAdmin(ctx, "del-request")
		require.NoError(t, err)
		assert.Equal(t, auth.AdminUsername, admin.Username)
		assert.Equal(t, entity.RoleAdmin, admin.Role)
		_, err = uc.Login(ctx, dto.LoginRequest{Username: auth.AdminUsername, Password: "del-request"})
		assert.NoError(t, err)
	})

	t.Run("password configurada", func(t *testing.T) {
		uc := newAuth("configurada", zerolog.Nop())
		_, err := uc.BootstrapAdmin(ctx, "")
		require.NoError(t, err)
		_, err = uc.Login(ctx, dto.LoginRequest{Username: auth.AdminUsername, Password: "configurada"})
		assert.NoError(t, err)
	})

	t.Run("password generada en el log", func(t *testing.T) {
		var buf bytes.Buffer
		uc := newAuth("", zerolog.New(&buf))
		_, err := uc.BootstrapAdmin(ctx, "")
		require.NoError(t, err)

		var entry struct {
			Password string `json:"password"`
		}
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
		require.NotEmpty(t, entry.Password)
		_, err = uc.Login(ctx, dto.LoginRequest{Username: auth.AdminUsername, Password: entry.Password})
		assert.NoError(t, err)
	})

	t.Run("password configurada no se escribe en el log", func(t *testing.T) {
		var buf bytes.Buffer
		uc := newAuth("configurada", zerolog.New(&buf))
		_, err := uc.BootstrapAdmin(ctx, "")
		require.NoError(t, err)
		assert.NotContains(t, buf.String(), "configurada")
	})
}

func TestBootstrapAdmin_OnlyOnEmptyStore(t *testing.T) {
	uc := newAuth("", zerolog.Nop())
	ctx := context.Background()
	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "lucia", Password: "secreta1"})
	require.NoError(t, err)

	_, err = uc.BootstrapAdmin(ctx, "del-request")
	assert.ErrorIs(t, err, domain.ErrConflict)

	uc = newAuth("", zerolog.Nop())
	_, err = uc.BootstrapAdmin(ctx, "123")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

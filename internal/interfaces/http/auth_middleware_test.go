package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/domain"
	apphttp "github.com/jhoicas/bioinventario-api/internal/interfaces/http"
)

// stubAuthorizer acepta "good" y responde según el token para el resto.
type stubAuthorizer struct{}

func (stubAuthorizer) Authorize(_ context.Context, token string) (*dto.UserResponse, error) {
	switch token {
	case "good":
		return &dto.UserResponse{ID: "u-1", Username: "ana", Role: "user", IsActive: true}, nil
	case "inactive":
		return nil, fmt.Errorf("%w: usuario inactivo", domain.ErrForbidden)
	default:
		return nil, fmt.Errorf("%w: token inválido o expirado", domain.ErrUnauthorized)
	}
}

// buildTestApp aplicación mínima con AuthMiddleware y un handler que devuelve el usuario de Locals.
func buildTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(zerolog.Nop())})
	app.Get("/protected", apphttp.AuthMiddleware(stubAuthorizer{}), func(c *fiber.Ctx) error {
		return c.JSON(apphttp.CurrentUser(c))
	})
	return app
}

func doProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_ValidTokenSetsUser(t *testing.T) {
	resp := doProtected(t, buildTestApp(), "Bearer good")
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var user dto.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, "ana", user.Username)
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"sin cabecera", "", http.StatusUnauthorized, apphttp.CodeUnauthorized},
		{"esquema distinto", "Basic abc", http.StatusUnauthorized, apphttp.CodeUnauthorized},
		{"token vacío", "Bearer   ", http.StatusUnauthorized, apphttp.CodeUnauthorized},
		{"token inválido", "Bearer nope", http.StatusUnauthorized, apphttp.CodeUnauthorized},
		{"usuario inactivo", "Bearer inactive", http.StatusForbidden, apphttp.CodeForbidden},
	}
	app := buildTestApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doProtected(t, app, tt.header)
			defer resp.Body.Close()

			assert.Equal(t, tt.status, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Detail)
		})
	}
}

func TestAuthMiddleware_SchemeIsCaseInsensitive(t *testing.T) {
	resp := doProtected(t, buildTestApp(), "bearer good")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

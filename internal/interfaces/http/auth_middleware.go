package http

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/domain"
)

// LocalUser clave en c.Locals del usuario autenticado (*dto.UserResponse).
const LocalUser = "user"

// TokenAuthorizer valida un bearer token y devuelve el usuario activo.
type TokenAuthorizer interface {
	Authorize(ctx context.Context, token string) (*dto.UserResponse, error)
}

// AuthMiddleware exige Authorization: Bearer <token> y deja el usuario en c.Locals.
func AuthMiddleware(authz TokenAuthorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fmt.Errorf("%w: Authorization header requerido", domain.ErrUnauthorized)
		}
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			return fmt.Errorf("%w: formato: Bearer <token>", domain.ErrUnauthorized)
		}
		token = strings.TrimSpace(token)
		if token == "" {
			return fmt.Errorf("%w: token vacío", domain.ErrUnauthorized)
		}
		user, err := authz.Authorize(c.UserContext(), token)
		if err != nil {
			return err
		}
		c.Locals(LocalUser, user)
		return c.Next()
	}
}

// CurrentUser devuelve el usuario autenticado o nil en rutas públicas.
func CurrentUser(c *fiber.Ctx) *dto.UserResponse {
	u, _ := c.Locals(LocalUser).(*dto.UserResponse)
	return u
}

// currentUsername nombre del usuario autenticado; vacío si no hay.
func currentUsername(c *fiber.Ctx) string {
	if u := CurrentUser(c); u != nil {
		return u.Username
	}
	return ""
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bioinventario-api/internal/application/dto"
)

// RootHandler información del servicio y salud.
type RootHandler struct {
	info dto.InfoResponse
}

// NewRootHandler construye el handler.
func NewRootHandler(info dto.InfoResponse) *RootHandler {
	return &RootHandler{info: info}
}

// Info godoc
// @Summary      Nombre y versión del servicio
// @Tags         root
// @Produce      json
// @Success      200  {object}  dto.InfoResponse
// @Router       /api [get]
func (h *RootHandler) Info(c *fiber.Ctx) error {
	return c.JSON(h.info)
}

// Health godoc
// @Summary      Salud del servicio
// @Tags         root
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /api/health [get]
func (h *RootHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "healthy"})
}

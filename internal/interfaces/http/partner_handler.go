package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/application/usecase"
)

// PartnerHandler proveedores y clientes.
type PartnerHandler struct {
	uc *usecase.PartnerUseCase
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(uc *usecase.PartnerUseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear socio comercial
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartnerRequest  true  "Datos del socio"
// @Success      201   {object}  dto.PartnerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/partners [post]
func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartnerRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener socio por ID
// @Tags         partners
// @Produce      json
// @Param        id   path  string  true  "ID del socio"
// @Success      200  {object}  dto.PartnerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/partners/{id} [get]
func (h *PartnerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar socios
// @Tags         partners
// @Produce      json
// @Param        partner_type  query  string  false  "SUPPLIER, CUSTOMER o BOTH"
// @Param        is_active     query  bool    false  "Solo activos / inactivos"
// @Param        search        query  string  false  "Busca en nombre y código"
// @Param        skip          query  int     false  "Desplazamiento"
// @Param        limit         query  int     false  "Límite"
// @Success      200  {array}   dto.PartnerResponse
// @Router       /api/partners [get]
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	return h.list(c, h.uc.List)
}

// ListSuppliers godoc
// @Summary      Listar proveedores (SUPPLIER y BOTH)
// @Tags         partners
// @Produce      json
// @Param        is_active  query  bool  false  "Por defecto true"
// @Success      200  {array}   dto.PartnerResponse
// @Router       /api/partners/suppliers [get]
func (h *PartnerHandler) ListSuppliers(c *fiber.Ctx) error {
	return h.list(c, h.uc.ListSuppliers)
}

// ListCustomers godoc
// @Summary      Listar clientes (CUSTOMER y BOTH)
// @Tags         partners
// @Produce      json
// @Param        is_active  query  bool  false  "Por defecto true"
// @Success      200  {array}   dto.PartnerResponse
// @Router       /api/partners/customers [get]
func (h *PartnerHandler) ListCustomers(c *fiber.Ctx) error {
	return h.list(c, h.uc.ListCustomers)
}

func (h *PartnerHandler) list(c *fiber.Ctx, fn func(ctx context.Context, in dto.PartnerListRequest) ([]dto.PartnerResponse, error)) error {
	var in dto.PartnerListRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	out, err := fn(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar socio
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del socio"
// @Param        body  body  dto.UpdatePartnerRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.PartnerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/partners/{id} [put]
func (h *PartnerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartnerRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar socio
// @Tags         partners
// @Security     Bearer
// @Param        id   path  string  true  "ID del socio"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/partners/{id} [delete]
func (h *PartnerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/application/order"
)

// OrderHandler órdenes de compra (/purchases) y de venta (/sales). kind fija la clase del grupo de rutas.
type OrderHandler struct {
	uc   *order.UseCase
	kind string
}

// NewOrderHandler construye el handler para una clase de orden (entity.OrderKindPurchase o entity.OrderKindSales).
func NewOrderHandler(uc *order.UseCase, kind string) *OrderHandler {
	return &OrderHandler{uc: uc, kind: kind}
}

// Create godoc
// @Summary      Crear orden
// @Description  Compras requieren supplier_id; ventas customer_id. La orden nace en DRAFT.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Contraparte e ítems"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
// @Router       /api/sales [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), h.kind, currentUsername(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener orden
// @Tags         orders
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
// @Router       /api/sales/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), h.kind, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar órdenes
// @Tags         orders
// @Produce      json
// @Param        status       query  string  false  "Estado"
// @Param        supplier_id  query  string  false  "Proveedor (compras)"
// @Param        customer_id  query  string  false  "Cliente (ventas)"
// @Param        skip         query  int     false  "Desplazamiento"
// @Param        limit        query  int     false  "Límite"
// @Success      200  {array}   dto.OrderResponse
// @Router       /api/purchases [get]
// @Router       /api/sales [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var in dto.OrderListRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), h.kind, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar orden
// @Description  Solo se aplican los campos presentes. Con items se recalcula el total.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la orden"
// @Param        body  body  dto.UpdateOrderRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [put]
// @Router       /api/sales/{id} [put]
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), h.kind, c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar orden
// @Description  Solo órdenes en estado PENDING.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/approve [post]
// @Router       /api/sales/{id}/approve [post]
func (h *OrderHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.UserContext(), h.kind, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar orden
// @Tags         orders
// @Security     Bearer
// @Param        id   path  string  true  "ID de la orden"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [delete]
// @Router       /api/sales/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), h.kind, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Documento PDF de la orden
// @Tags         orders
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/pdf [get]
// @Router       /api/sales/{id}/pdf [get]
func (h *OrderHandler) PDF(c *fiber.Ctx) error {
	doc, filename, err := h.uc.RenderPDF(c.UserContext(), h.kind, c.Params("id"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(doc)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bioinventario-api/internal/application/dto"
	"github.com/jhoicas/bioinventario-api/internal/application/inventory"
)

// HeaderNextCursor cabecera con el token de la página siguiente del libro de movimientos.
const HeaderNextCursor = "X-Next-Cursor"

// InventoryHandler líneas de inventario y movimientos de stock.
type InventoryHandler struct {
	uc *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear línea de inventario
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInventoryRequest  true  "product_id, bodega, lote, cantidad inicial"
// @Success      201   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInventoryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateLine(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener línea de inventario
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID de la línea"
// @Success      200  {object}  dto.InventoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetLine(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar líneas de inventario
// @Tags         inventory
// @Produce      json
// @Param        product_id  query  string  false  "Producto"
// @Param        warehouse   query  string  false  "Bodega"
// @Param        skip        query  int     false  "Desplazamiento"
// @Param        limit       query  int     false  "Límite"
// @Success      200  {array}   dto.InventoryResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	var in dto.InventoryListRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.ListLines(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar línea de inventario
// @Description  Un cambio de cantidad queda registrado como movimiento ADJUST.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la línea"
// @Param        body  body  dto.UpdateInventoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.InventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInventoryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateLine(c.UserContext(), c.Params("id"), currentUsername(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// StockIn godoc
// @Summary      Entrada de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "inventory_id, quantity > 0"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/in [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Receive(c.UserContext(), currentUsername(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// StockOut godoc
// @Summary      Salida de stock
// @Description  Rechaza con 400 si la cantidad supera el stock actual de la línea.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "inventory_id, quantity > 0"
// @Success      200   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/out [post]
func (h *InventoryHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockMovementRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Issue(c.UserContext(), currentUsername(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Records godoc
// @Summary      Libro de movimientos
// @Description  Más recientes primero. Con cursor pagina de forma estable; el siguiente token llega en X-Next-Cursor.
// @Tags         inventory
// @Produce      json
// @Param        product_id      query  string  false  "Producto"
// @Param        operation_type  query  string  false  "IN, OUT, ADJUST o RETURN"
// @Param        cursor          query  string  false  "Token de continuación"
// @Param        skip            query  int     false  "Desplazamiento (sin cursor)"
// @Param        limit           query  int     false  "Límite"
// @Success      200  {array}   dto.TransactionResponse
// @Header       200  {string}  X-Next-Cursor  "Token de la página siguiente"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/records [get]
func (h *InventoryHandler) Records(c *fiber.Ctx) error {
	var in dto.TransactionListRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	page, err := h.uc.ListTransactions(c.UserContext(), in)
	if err != nil {
		return err
	}
	if page.NextCursor != "" {
		c.Set(HeaderNextCursor, page.NextCursor)
	}
	return c.JSON(page.Items)
}

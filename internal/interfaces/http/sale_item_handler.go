package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/application/sales"
)

// SaleItemHandler maneja las peticiones HTTP de líneas de venta sueltas.
type SaleItemHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleItemHandler construye el handler.
func NewSaleItemHandler(uc *sales.SaleUseCase) *SaleItemHandler {
	return &SaleItemHandler{uc: uc}
}

// Create POST /ventas_items
func (h *SaleItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.CreateItem(CallerFromCtx(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// List GET /ventas_items?venta=7&limit=20&offset=0
func (h *SaleItemHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	var ventaID *int64
	if raw := c.Query("venta"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: "venta debe ser numérica"})
		}
		ventaID = &id
	}
	list, err := h.uc.ListItems(CallerFromCtx(c), ventaID, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /ventas_items/:id
func (h *SaleItemHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return notFound(c)
	}
	item, err := h.uc.GetItemByID(CallerFromCtx(c), id)
	if err != nil {
		return writeError(c, err)
	}
	if item == nil {
		return notFound(c)
	}
	return c.JSON(item)
}

// Update PUT /ventas_items/:id
func (h *SaleItemHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return notFound(c)
	}
	var in dto.UpdateSaleItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.uc.UpdateItem(CallerFromCtx(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	if item == nil {
		return notFound(c)
	}
	return c.JSON(item)
}

// Delete DELETE /ventas_items/:id
func (h *SaleItemHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return notFound(c)
	}
	if err := h.uc.DeleteItem(CallerFromCtx(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

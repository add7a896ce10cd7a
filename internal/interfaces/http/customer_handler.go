package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/application/usecase"
)

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc *usecase.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create POST /clientes
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer, err := h.uc.Create(CallerFromCtx(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List GET /clientes?limit=20&offset=0
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	list, err := h.uc.List(CallerFromCtx(c), page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// GetByCedula GET /clientes/:cedula
func (h *CustomerHandler) GetByCedula(c *fiber.Ctx) error {
	customer, err := h.uc.GetByCedula(CallerFromCtx(c), c.Params("cedula"))
	if err != nil {
		return writeError(c, err)
	}
	if customer == nil {
		return notFound(c)
	}
	return c.JSON(customer)
}

// Update PUT /clientes/:cedula
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	customer, err := h.uc.Update(CallerFromCtx(c), c.Params("cedula"), in)
	if err != nil {
		return writeError(c, err)
	}
	if customer == nil {
		return notFound(c)
	}
	return c.JSON(customer)
}

// Delete DELETE /clientes/:cedula
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(CallerFromCtx(c), c.Params("cedula")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

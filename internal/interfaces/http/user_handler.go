package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/application/usecase"
)

// UserHandler maneja las peticiones HTTP de usuarios.
type UserHandler struct {
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Create POST /usuarios (solo admin: permite fijar rol y zona).
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.Create(CallerFromCtx(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// List GET /usuarios?limit=20&offset=0
// Admin ve todos; cualquier otro recibe exactamente su propio registro.
func (h *UserHandler) List(c *fiber.Ctx) error {
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

// Perfil GET /usuarios/perfil
func (h *UserHandler) Perfil(c *fiber.Ctx) error {
	caller := CallerFromCtx(c)
	user, err := h.uc.GetByID(caller, caller.ID)
	if err != nil {
		return writeError(c, err)
	}
	if user == nil {
		return notFound(c)
	}
	return c.JSON(user)
}

// UpdatePerfil PUT /usuarios/perfil
func (h *UserHandler) UpdatePerfil(c *fiber.Ctx) error {
	var patch dto.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c)
	}
	caller := CallerFromCtx(c)
	user, err := h.uc.Update(caller, caller.ID, patch)
	if err != nil {
		return writeError(c, err)
	}
	if user == nil {
		return notFound(c)
	}
	return c.JSON(user)
}

// GetByID GET /usuarios/:id
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.uc.GetByID(CallerFromCtx(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if user == nil {
		return notFound(c)
	}
	return c.JSON(user)
}

// Update PUT /usuarios/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var patch dto.UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return badBody(c)
	}
	user, err := h.uc.Update(CallerFromCtx(c), c.Params("id"), patch)
	if err != nil {
		return writeError(c, err)
	}
	if user == nil {
		return notFound(c)
	}
	return c.JSON(user)
}

// Delete DELETE /usuarios/:id (admin, nunca a sí mismo).
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(CallerFromCtx(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

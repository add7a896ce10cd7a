package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jortega/ventas-api/internal/application/auth"
	"github.com/jortega/ventas-api/internal/application/dto"
)

// AuthHandler maneja registro, login y rotación de tokens.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register POST /auth/registro
// Autoregistro público: el rol y la zona quedan en sus valores por defecto
// aunque el cuerpo intente otra cosa.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	user, err := h.uc.Register(in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

// Refresh POST /auth/refresh
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resp, err := h.uc.Refresh(c.Context(), in.RefreshToken)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(resp)
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/domain"
	"github.com/jortega/ventas-api/internal/domain/authz"
)

// writeError traduce errores de dominio y de la política de autorización al
// cuerpo {"detail": "<mensaje>"} con el status HTTP correspondiente.
// La taxonomía: validación 400, no autenticado 401, prohibido 403, no
// encontrado 404; lo demás se reporta como 400 con el mensaje del error.
func writeError(c *fiber.Ctx, err error) error {
	var denied *authz.DeniedError
	if errors.As(err, &denied) {
		status := fiber.StatusForbidden
		if denied.Reason == authz.ReasonUnauthenticated {
			status = fiber.StatusUnauthorized
		}
		return c.Status(status).JSON(dto.ErrorResponse{Detail: denied.Reason.Detail()})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Detail: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInactiveUser),
		errors.Is(err, domain.ErrInvalidRefreshToken):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Detail: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Detail: err.Error()})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: err.Error()})
	}
}

// notFound responde 404 con el detalle estándar.
func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Detail: domain.ErrNotFound.Error()})
}

// badBody responde 400 por cuerpo JSON malformado.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Detail: "cuerpo de la petición inválido"})
}

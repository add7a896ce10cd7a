package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/domain/authz"
	"github.com/jortega/ventas-api/pkg/jwt"
)

// Local key para la identidad del token en Fiber.
const LocalIdentity = "identity"

// AuthMiddleware valida el Bearer Token JWT y deja la identidad en c.Locals.
// Sin token (o con token inválido) responde 401.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Detail: authz.ReasonUnauthenticated.Detail()})
		}
		identity, err := jwt.ParseAccess(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Detail: "token inválido o expirado"})
		}
		c.Locals(LocalIdentity, identity)
		return c.Next()
	}
}

// OptionalAuthMiddleware carga la identidad si el token viene y es válido;
// si no hay token la petición sigue como anónima. Un token presente pero
// inválido sí se rechaza con 401 (no se degrada a anónimo en silencio).
func OptionalAuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			return c.Next()
		}
		identity, err := jwt.ParseAccess(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Detail: "token inválido o expirado"})
		}
		c.Locals(LocalIdentity, identity)
		return c.Next()
	}
}

// bearerToken extrae el token del header Authorization, si viene bien formado.
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	tokenString := strings.TrimSpace(parts[1])
	if tokenString == "" {
		return "", false
	}
	return tokenString, true
}

// GetIdentity devuelve la identidad del contexto (después del middleware).
// El segundo retorno es false para peticiones anónimas.
func GetIdentity(c *fiber.Ctx) (jwt.Identity, bool) {
	v := c.Locals(LocalIdentity)
	if v == nil {
		return jwt.Identity{}, false
	}
	id, ok := v.(jwt.Identity)
	return id, ok
}

// CallerFromCtx construye el llamador para la política de autorización.
// Sin identidad en el contexto devuelve el llamador anónimo.
func CallerFromCtx(c *fiber.Ctx) authz.Caller {
	identity, ok := GetIdentity(c)
	if !ok {
		return authz.Anonymous
	}
	return authz.Caller{ID: identity.UserID, Rol: identity.Rol, Autenticado: true}
}

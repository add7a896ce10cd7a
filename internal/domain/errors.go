package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrUsernameAlreadyExists = errors.New("el username ya está registrado")
	ErrInvalidCredentials    = errors.New("credenciales inválidas")
	ErrInactiveUser          = errors.New("cuenta inactiva")
	ErrWeakPassword          = errors.New("la contraseña no cumple la política de seguridad")
	ErrInvalidPrice          = errors.New("el precio debe ser mayor que cero")
	ErrInvalidStock          = errors.New("el stock no puede ser negativo")
	ErrInvalidQuantity       = errors.New("la cantidad debe ser mayor que cero")
	ErrInvalidTotal          = errors.New("el total debe ser mayor que cero")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrInvalidRefreshToken   = errors.New("refresh token inválido o ya utilizado")
)

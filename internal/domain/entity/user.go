package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleUsuario = "usuario"
)

// Valores por defecto al registrar un usuario.
const (
	DefaultRole = RoleUsuario
	DefaultZona = "general"
)

// User representa un usuario del sistema.
// Rol gobierna el acceso a recursos protegidos; ZonaAcceso viaja en el token
// pero no se evalúa en la lógica de autorización.
type User struct {
	ID           string
	Email        string // único
	Username     string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Nombre       string
	Rol          string // admin, usuario
	ZonaAcceso   string
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

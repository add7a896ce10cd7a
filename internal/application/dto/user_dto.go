package dto

import "time"

// RegisterRequest entrada del registro público (/auth/registro).
// El rol siempre se fuerza a "usuario"; la zona por defecto es "general".
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
}

// CreateUserRequest entrada del aprovisionamiento por admin (POST /usuarios):
// a diferencia del registro, permite fijar rol y zona de acceso.
type CreateUserRequest struct {
	Email      string `json:"email"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Nombre     string `json:"nombre"`
	Rol        string `json:"rol"`
	ZonaAcceso string `json:"zona_acceso"`
}

// UserPatch actualización parcial explícita: solo los campos presentes se
// aplican. Rol y ZonaAcceso son campos protegidos (solo admin).
type UserPatch struct {
	Email      *string `json:"email"`
	Username   *string `json:"username"`
	Password   *string `json:"password"`
	Nombre     *string `json:"nombre"`
	Rol        *string `json:"rol"`
	ZonaAcceso *string `json:"zona_acceso"`
	Activo     *bool   `json:"activo"`
}

// TocaCamposProtegidos indica si el patch intenta cambiar rol o zona de acceso.
func (p UserPatch) TocaCamposProtegidos() bool {
	return p.Rol != nil || p.ZonaAcceso != nil
}

// UserResponse salida de un usuario (nunca incluye el hash de contraseña).
type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Nombre     string    `json:"nombre"`
	Rol        string    `json:"rol"`
	ZonaAcceso string    `json:"zona_acceso"`
	Activo     bool      `json:"activo"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida del login: par de tokens + usuario.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// RefreshRequest entrada para rotar el access token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenPairResponse salida del refresh: nuevo par de tokens.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

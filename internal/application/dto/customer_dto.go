package dto

import "time"

// CreateCustomerRequest entrada para crear un cliente (llave natural: cédula).
type CreateCustomerRequest struct {
	Cedula   string `json:"cedula"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Telefono string `json:"telefono"`
	Ciudad   string `json:"ciudad"`
}

// UpdateCustomerRequest actualización parcial; la cédula no se cambia.
type UpdateCustomerRequest struct {
	Nombre   *string `json:"nombre"`
	Email    *string `json:"email"`
	Telefono *string `json:"telefono"`
	Ciudad   *string `json:"ciudad"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	Cedula    string    `json:"cedula"`
	Nombre    string    `json:"nombre"`
	Email     string    `json:"email"`
	Telefono  string    `json:"telefono"`
	Ciudad    string    `json:"ciudad"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

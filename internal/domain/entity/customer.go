package entity

import "time"

// Customer representa un cliente. La cédula es la llave natural de negocio:
// las ventas lo referencian por cédula, sin FK (la referencia puede quedar colgante).
type Customer struct {
	Cedula    string // llave natural (documento de identidad)
	Nombre    string
	Email     string // único
	Telefono  string
	Ciudad    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

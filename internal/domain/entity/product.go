package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Invariantes de escritura: Precio > 0 (dos decimales), Stock >= 0.
// El stock no se descuenta al crear ventas en este diseño.
type Product struct {
	ID          int64
	Nombre      string
	Descripcion string
	Precio      decimal.Decimal
	Stock       int
	Imagen      string // URL opcional
	CategoriaID *int64 // nula si no tiene categoría o si la categoría fue eliminada
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

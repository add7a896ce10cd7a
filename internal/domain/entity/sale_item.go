package entity

import "github.com/shopspring/decimal"

// SaleItem representa una línea de una venta. ProductoID es una referencia
// denormalizada sin FK; PrecioUnitario es el precio al momento de la venta,
// independiente del precio actual del producto.
type SaleItem struct {
	ID             int64
	VentaID        int64
	ProductoID     int64
	Cantidad       int
	PrecioUnitario decimal.Decimal
}

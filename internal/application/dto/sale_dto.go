package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemInput línea de venta dentro de la creación de una venta.
type SaleItemInput struct {
	ProductoID     int64           `json:"producto_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// CreateSaleRequest entrada para crear una venta. El total viene del llamador
// y no se recalcula contra los items (decisión registrada en DESIGN.md).
// La cédula del cliente es opcional y no se verifica su existencia.
type CreateSaleRequest struct {
	ClienteCedula string          `json:"cliente"`
	Total         decimal.Decimal `json:"total"`
	Items         []SaleItemInput `json:"items"`
}

// UpdateSaleRequest actualización parcial de la cabecera de una venta.
type UpdateSaleRequest struct {
	ClienteCedula *string          `json:"cliente"`
	Total         *decimal.Decimal `json:"total"`
}

// SaleItemResponse línea de venta con el producto resuelto en lectura:
// los campos producto_* son null si el producto ya no existe.
type SaleItemResponse struct {
	ID             int64            `json:"id"`
	VentaID        int64            `json:"venta_id"`
	ProductoID     int64            `json:"producto_id"`
	Cantidad       int              `json:"cantidad"`
	PrecioUnitario decimal.Decimal  `json:"precio_unitario"`
	ProductoNombre *string          `json:"producto_nombre"`
	ProductoPrecio *decimal.Decimal `json:"producto_precio"`
	ProductoImagen *string          `json:"producto_imagen"`
}

// SaleResponse salida de una venta con sus items.
type SaleResponse struct {
	ID            int64              `json:"id"`
	ClienteCedula string             `json:"cliente,omitempty"`
	Total         decimal.Decimal    `json:"total"`
	CreatedAt     time.Time          `json:"created_at"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}

// CreateSaleItemRequest entrada para crear una línea suelta (/ventas_items).
type CreateSaleItemRequest struct {
	VentaID        int64           `json:"venta_id"`
	ProductoID     int64           `json:"producto_id"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
}

// UpdateSaleItemRequest actualización parcial de una línea.
type UpdateSaleItemRequest struct {
	Cantidad       *int             `json:"cantidad"`
	PrecioUnitario *decimal.Decimal `json:"precio_unitario"`
}

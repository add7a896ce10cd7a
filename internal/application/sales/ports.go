package sales

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jortega/ventas-api/internal/domain/entity"
	"github.com/jortega/ventas-api/internal/domain/repository"
)

// SaleTxRunner ejecuta un callback con el repo de ventas atado a una
// transacción: cabecera + items se escriben (o se borran) como una unidad.
type SaleTxRunner interface {
	RunVenta(ctx context.Context, fn func(saleRepo repository.SaleRepository) error) error
}

// ReceiptLine línea ya resuelta para el recibo PDF (descripción del producto
// al momento de generar, o un marcador si el producto ya no existe).
type ReceiptLine struct {
	Descripcion    string
	Cantidad       int
	PrecioUnitario decimal.Decimal
	Subtotal       decimal.Decimal
}

// ReceiptGenerator genera la representación PDF de una venta.
// customer puede ser nil (venta sin cliente o referencia colgante).
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, customer *entity.Customer, lines []ReceiptLine) ([]byte, error)
}

package sales

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jortega/ventas-api/internal/domain"
	"github.com/jortega/ventas-api/internal/domain/authz"
	"github.com/jortega/ventas-api/internal/domain/repository"
)

// ReceiptUseCase genera la representación gráfica (PDF) de una venta.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	generator    ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando sus dependencias.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		generator:    generator,
	}
}

// DownloadReceiptPDF recupera la venta, resuelve cliente y productos (a
// marcadores si las referencias están colgantes) y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la venta no existe.
func (uc *ReceiptUseCase) DownloadReceiptPDF(ctx context.Context, caller authz.Caller, ventaID int64) (pdfBytes []byte, filename string, err error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceSale, Action: authz.ActionRead})
	if err := decision.Err(); err != nil {
		return nil, "", err
	}

	sale, err := uc.saleRepo.GetByID(ventaID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}

	// Cliente opcional: nil si la venta no tiene cédula o el cliente ya no existe.
	customer, err := uc.customerRepo.GetByCedula(sale.ClienteCedula)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener cliente: %w", err)
	}

	items, err := uc.saleRepo.ItemsBySale(sale.ID)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: obtener items: %w", err)
	}

	lines := make([]ReceiptLine, 0, len(items))
	for _, it := range items {
		product, err := uc.productRepo.GetByID(it.ProductoID)
		if err != nil {
			return nil, "", fmt.Errorf("recibo: resolver producto %d: %w", it.ProductoID, err)
		}
		descripcion := fmt.Sprintf("Producto %d", it.ProductoID) // marcador si la referencia cuelga
		if product != nil {
			descripcion = product.Nombre
		}
		lines = append(lines, ReceiptLine{
			Descripcion:    descripcion,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.PrecioUnitario.Mul(decimal.NewFromInt(int64(it.Cantidad))).Round(2),
		})
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, sale, customer, lines)
	if err != nil {
		return nil, "", fmt.Errorf("recibo: generar PDF: %w", err)
	}

	filename = fmt.Sprintf("venta_%d.pdf", sale.ID)
	return pdfBytes, filename, nil
}

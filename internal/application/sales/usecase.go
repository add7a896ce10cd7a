// Package sales orquesta la creación, listado y eliminación de ventas y sus
// items. Escritura tolerante: las referencias a cliente y producto no se
// verifican al escribir (resisten eliminaciones fuera de orden) y se
// resuelven de forma perezosa al leer, a nulo si el registro ya no existe.
package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/domain"
	"github.com/jortega/ventas-api/internal/domain/authz"
	"github.com/jortega/ventas-api/internal/domain/entity"
	"github.com/jortega/ventas-api/internal/domain/repository"
)

// SaleUseCase gestor de transacciones de venta.
type SaleUseCase struct {
	txRunner    SaleTxRunner
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner SaleTxRunner, saleRepo repository.SaleRepository, productRepo repository.ProductRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, saleRepo: saleRepo, productRepo: productRepo}
}

// Create crea una venta con sus items en una sola transacción.
// Cada item exige cantidad > 0; el precio unitario se guarda tal cual como
// instantánea (no se relee del producto). El total viene del llamador y no
// se recalcula contra los items (decisión registrada en DESIGN.md).
func (uc *SaleUseCase) Create(ctx context.Context, caller authz.Caller, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceSale, Action: authz.ActionCreate})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if !in.Total.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidTotal
	}
	for _, item := range in.Items {
		if item.Cantidad <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	sale := &entity.Sale{
		ClienteCedula: in.ClienteCedula,
		Total:         in.Total.Round(2),
		CreatedAt:     time.Now(),
	}
	items := make([]*entity.SaleItem, 0, len(in.Items))

	err := uc.txRunner.RunVenta(ctx, func(saleRepo repository.SaleRepository) error {
		if err := saleRepo.Create(sale); err != nil {
			return err
		}
		for _, it := range in.Items {
			item := &entity.SaleItem{
				VentaID:        sale.ID,
				ProductoID:     it.ProductoID,
				Cantidad:       it.Cantidad,
				PrecioUnitario: it.PrecioUnitario.Round(2),
			}
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.toSaleResponse(sale, items)
}

// GetByID obtiene una venta con sus items enriquecidos.
func (uc *SaleUseCase) GetByID(caller authz.Caller, id int64) (*dto.SaleResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceSale, Action: authz.ActionRead})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	items, err := uc.saleRepo.ItemsBySale(sale.ID)
	if err != nil {
		return nil, err
	}
	return uc.toSaleResponse(sale, items)
}

// List lista ventas, más recientes primero. Filtros opcionales: cédula del
// cliente y rango de fechas de creación con límites inclusivos.
func (uc *SaleUseCase) List(caller authz.Caller, f repository.SaleFilter) ([]*dto.SaleResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceSale, Action: authz.ActionList})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	ventas, err := uc.saleRepo.List(f)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.SaleResponse, 0, len(ventas))
	for _, v := range ventas {
		resp, err := uc.toSaleResponse(v, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// Update actualiza la cabecera de una venta (cédula del cliente y/o total).
func (uc *SaleUseCase) Update(caller authz.Caller, id int64, in dto.UpdateSaleRequest) (*dto.SaleResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceSale, Action: authz.ActionUpdate})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	if in.Total != nil {
		if !in.Total.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidTotal
		}
		sale.Total = in.Total.Round(2)
	}
	if in.ClienteCedula != nil {
		sale.ClienteCedula = *in.ClienteCedula
	}
	if err := uc.saleRepo.Update(sale); err != nil {
		return nil, err
	}
	items, err := uc.saleRepo.ItemsBySale(sale.ID)
	if err != nil {
		return nil, err
	}
	return uc.toSaleResponse(sale, items)
}

// Delete elimina una venta (solo admin) junto con sus items, en una sola
// transacción.
func (uc *SaleUseCase) Delete(ctx context.Context, caller authz.Caller, id int64) error {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceSale, Action: authz.ActionDelete})
	if err := decision.Err(); err != nil {
		return err
	}
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunVenta(ctx, func(saleRepo repository.SaleRepository) error {
		if err := saleRepo.DeleteItemsBySale(id); err != nil {
			return err
		}
		return saleRepo.Delete(id)
	})
}

// CreateItem crea una línea suelta sobre una venta existente (o colgante:
// la venta tampoco se verifica, igual que cliente y producto).
func (uc *SaleUseCase) CreateItem(caller authz.Caller, in dto.CreateSaleItemRequest) (*dto.SaleItemResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceSaleItem, Action: authz.ActionCreate})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if in.Cantidad <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	item := &entity.SaleItem{
		VentaID:        in.VentaID,
		ProductoID:     in.ProductoID,
		Cantidad:       in.Cantidad,
		PrecioUnitario: in.PrecioUnitario.Round(2),
	}
	if err := uc.saleRepo.CreateItem(item); err != nil {
		return nil, err
	}
	resp, err := uc.EnrichItem(item)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetItemByID obtiene una línea enriquecida.
func (uc *SaleUseCase) GetItemByID(caller authz.Caller, id int64) (*dto.SaleItemResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceSaleItem, Action: authz.ActionRead})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	item, err := uc.saleRepo.GetItemByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	resp, err := uc.EnrichItem(item)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListItems lista líneas; si ventaID no es nil, solo las de esa venta.
func (uc *SaleUseCase) ListItems(caller authz.Caller, ventaID *int64, limit, offset int) ([]dto.SaleItemResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceSaleItem, Action: authz.ActionList})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	var items []*entity.SaleItem
	var err error
	if ventaID != nil {
		items, err = uc.saleRepo.ItemsBySale(*ventaID)
	} else {
		items, err = uc.saleRepo.ListItems(limit, offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleItemResponse, 0, len(items))
	for _, it := range items {
		enriched, err := uc.EnrichItem(it)
		if err != nil {
			return nil, err
		}
		out = append(out, enriched)
	}
	return out, nil
}

// UpdateItem actualiza cantidad y/o precio unitario de una línea.
func (uc *SaleUseCase) UpdateItem(caller authz.Caller, id int64, in dto.UpdateSaleItemRequest) (*dto.SaleItemResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceSaleItem, Action: authz.ActionUpdate})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	item, err := uc.saleRepo.GetItemByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Cantidad != nil {
		if *in.Cantidad <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		item.Cantidad = *in.Cantidad
	}
	if in.PrecioUnitario != nil {
		item.PrecioUnitario = in.PrecioUnitario.Round(2)
	}
	if err := uc.saleRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	resp, err := uc.EnrichItem(item)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteItem elimina una línea.
func (uc *SaleUseCase) DeleteItem(caller authz.Caller, id int64) error {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceSaleItem, Action: authz.ActionDelete})
	if err := decision.Err(); err != nil {
		return err
	}
	item, err := uc.saleRepo.GetItemByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.saleRepo.DeleteItem(id)
}

// EnrichItem resuelve los campos de producto en lectura: nombre, precio
// actual e imagen, cada uno nulo si el producto ya no existe. Solo la
// referencia colgante produce nulos; un fallo del repositorio se propaga,
// no se disfraza de producto eliminado.
func (uc *SaleUseCase) EnrichItem(item *entity.SaleItem) (dto.SaleItemResponse, error) {
	resp := dto.SaleItemResponse{
		ID:             item.ID,
		VentaID:        item.VentaID,
		ProductoID:     item.ProductoID,
		Cantidad:       item.Cantidad,
		PrecioUnitario: item.PrecioUnitario,
	}
	product, err := uc.productRepo.GetByID(item.ProductoID)
	if err != nil {
		return dto.SaleItemResponse{}, fmt.Errorf("resolver producto %d: %w", item.ProductoID, err)
	}
	if product == nil {
		return resp, nil
	}
	resp.ProductoNombre = &product.Nombre
	precio := product.Precio
	resp.ProductoPrecio = &precio
	if product.Imagen != "" {
		imagen := product.Imagen
		resp.ProductoImagen = &imagen
	}
	return resp, nil
}

func (uc *SaleUseCase) toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) (*dto.SaleResponse, error) {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		ClienteCedula: sale.ClienteCedula,
		Total:         sale.Total,
		CreatedAt:     sale.CreatedAt,
	}
	for _, it := range items {
		enriched, err := uc.EnrichItem(it)
		if err != nil {
			return nil, err
		}
		resp.Items = append(resp.Items, enriched)
	}
	return resp, nil
}

package sales_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/application/sales"
	"github.com/jortega/ventas-api/internal/domain"
	"github.com/jortega/ventas-api/internal/domain/authz"
	"github.com/jortega/ventas-api/internal/domain/entity"
	"github.com/jortega/ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeSaleRepo struct {
	ventas    map[int64]*entity.Sale
	items     map[int64]*entity.SaleItem
	nextVenta int64
	nextItem  int64
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{
		ventas: map[int64]*entity.Sale{},
		items:  map[int64]*entity.SaleItem{},
	}
}

func (r *fakeSaleRepo) Create(s *entity.Sale) error {
	r.nextVenta++
	s.ID = r.nextVenta
	r.ventas[s.ID] = s
	return nil
}

func (r *fakeSaleRepo) GetByID(id int64) (*entity.Sale, error) {
	return r.ventas[id], nil
}

func (r *fakeSaleRepo) List(f repository.SaleFilter) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.ventas {
		if f.ClienteCedula != "" && s.ClienteCedula != f.ClienteCedula {
			continue
		}
		if f.FechaInicio != nil && s.CreatedAt.Before(*f.FechaInicio) {
			continue
		}
		if f.FechaFin != nil && s.CreatedAt.After(*f.FechaFin) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *fakeSaleRepo) Update(s *entity.Sale) error {
	r.ventas[s.ID] = s
	return nil
}

func (r *fakeSaleRepo) Delete(id int64) error {
	delete(r.ventas, id)
	return nil
}

func (r *fakeSaleRepo) CreateItem(it *entity.SaleItem) error {
	r.nextItem++
	it.ID = r.nextItem
	r.items[it.ID] = it
	return nil
}

func (r *fakeSaleRepo) GetItemByID(id int64) (*entity.SaleItem, error) {
	return r.items[id], nil
}

func (r *fakeSaleRepo) ItemsBySale(ventaID int64) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.items {
		if it.VentaID == ventaID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSaleRepo) ListItems(limit, offset int) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for _, it := range r.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeSaleRepo) UpdateItem(it *entity.SaleItem) error {
	r.items[it.ID] = it
	return nil
}

func (r *fakeSaleRepo) DeleteItem(id int64) error {
	delete(r.items, id)
	return nil
}

func (r *fakeSaleRepo) DeleteItemsBySale(ventaID int64) error {
	for id, it := range r.items {
		if it.VentaID == ventaID {
			delete(r.items, id)
		}
	}
	return nil
}

type fakeSaleTxRunner struct {
	repo repository.SaleRepository
}

func (r *fakeSaleTxRunner) RunVenta(_ context.Context, fn func(saleRepo repository.SaleRepository) error) error {
	return fn(r.repo)
}

type fakeProductRepo struct {
	products map[int64]*entity.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[int64]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.nextID++
	p.ID = r.nextID
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(id int64) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) List(categoriaID *int64, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(id int64) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) ClearCategory(categoriaID int64) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────

func newSaleUC() (*sales.SaleUseCase, *fakeSaleRepo, *fakeProductRepo) {
	saleRepo := newFakeSaleRepo()
	productRepo := newFakeProductRepo()
	uc := sales.NewSaleUseCase(&fakeSaleTxRunner{repo: saleRepo}, saleRepo, productRepo)
	return uc, saleRepo, productRepo
}

func adminCaller() authz.Caller {
	return authz.Caller{ID: "admin", Rol: entity.RoleAdmin, Autenticado: true}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSaleCreate_CantidadInvalida(t *testing.T) {
	uc, _, _ := newSaleUC()

	_, err := uc.Create(context.Background(), authz.Anonymous, dto.CreateSaleRequest{
		Total: dec("10"),
		Items: []dto.SaleItemInput{{ProductoID: 1, Cantidad: 0, PrecioUnitario: dec("10")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestSaleCreate_TotalInvalido(t *testing.T) {
	uc, _, _ := newSaleUC()

	for _, total := range []string{"0", "-1"} {
		_, err := uc.Create(context.Background(), authz.Anonymous, dto.CreateSaleRequest{
			Total: dec(total),
			Items: []dto.SaleItemInput{{ProductoID: 1, Cantidad: 1, PrecioUnitario: dec("10")}},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidTotal, "total %s", total)
	}
}

func TestSaleCreate_AnonimoEnModoRelajado(t *testing.T) {
	uc, _, _ := newSaleUC()

	sale, err := uc.Create(context.Background(), authz.Anonymous, dto.CreateSaleRequest{
		ClienteCedula: "123",
		Total:         dec("10"),
		Items:         []dto.SaleItemInput{{ProductoID: 1, Cantidad: 1, PrecioUnitario: dec("10")}},
	})
	require.NoError(t, err)
	assert.NotZero(t, sale.ID)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, sale.ID, sale.Items[0].VentaID)
}

func TestSaleCreate_TotalNoSeRecalcula(t *testing.T) {
	uc, _, _ := newSaleUC()

	// El total viene del llamador aunque no cuadre con los items.
	sale, err := uc.Create(context.Background(), authz.Anonymous, dto.CreateSaleRequest{
		Total: dec("999"),
		Items: []dto.SaleItemInput{{ProductoID: 1, Cantidad: 1, PrecioUnitario: dec("10")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "999.00", sale.Total.StringFixed(2))
}

func TestSaleList_MasRecientesPrimero(t *testing.T) {
	uc, saleRepo, _ := newSaleUC()

	ahora := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, saleRepo.Create(&entity.Sale{
			Total:     dec("10"),
			CreatedAt: ahora.Add(time.Duration(i) * time.Minute),
		}))
	}

	list, err := uc.List(authz.Anonymous, repository.SaleFilter{Limit: 20})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))
	assert.True(t, list[1].CreatedAt.After(list[2].CreatedAt))
}

func TestSaleList_FiltraPorCliente(t *testing.T) {
	uc, saleRepo, _ := newSaleUC()

	require.NoError(t, saleRepo.Create(&entity.Sale{ClienteCedula: "111", Total: dec("10"), CreatedAt: time.Now()}))
	require.NoError(t, saleRepo.Create(&entity.Sale{ClienteCedula: "222", Total: dec("20"), CreatedAt: time.Now()}))

	list, err := uc.List(authz.Anonymous, repository.SaleFilter{ClienteCedula: "111", Limit: 20})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "111", list[0].ClienteCedula)
}

func TestSaleDelete_SoloAdminYEliminaItems(t *testing.T) {
	uc, saleRepo, _ := newSaleUC()

	sale, err := uc.Create(context.Background(), authz.Anonymous, dto.CreateSaleRequest{
		Total: dec("10"),
		Items: []dto.SaleItemInput{{ProductoID: 1, Cantidad: 1, PrecioUnitario: dec("10")}},
	})
	require.NoError(t, err)

	// Anónimo no puede borrar.
	err = uc.Delete(context.Background(), authz.Anonymous, sale.ID)
	var denied *authz.DeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, authz.ReasonUnauthenticated, denied.Reason)

	// Admin sí, y los items se van con la venta.
	require.NoError(t, uc.Delete(context.Background(), adminCaller(), sale.ID))
	assert.Empty(t, saleRepo.ventas)
	assert.Empty(t, saleRepo.items)
}

func TestSaleDelete_VentaInexistente(t *testing.T) {
	uc, _, _ := newSaleUC()

	err := uc.Delete(context.Background(), adminCaller(), 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnrichItem_ProductoResuelto(t *testing.T) {
	uc, _, productRepo := newSaleUC()

	require.NoError(t, productRepo.Create(&entity.Product{
		Nombre: "Café", Precio: dec("12.50"), Imagen: "cafe.png",
	}))

	resp, err := uc.EnrichItem(&entity.SaleItem{ProductoID: 1, Cantidad: 2, PrecioUnitario: dec("10")})
	require.NoError(t, err)
	require.NotNil(t, resp.ProductoNombre)
	assert.Equal(t, "Café", *resp.ProductoNombre)
	require.NotNil(t, resp.ProductoPrecio)
	assert.Equal(t, "12.50", resp.ProductoPrecio.StringFixed(2))
	require.NotNil(t, resp.ProductoImagen)
	assert.Equal(t, "cafe.png", *resp.ProductoImagen)
}

func TestEnrichItem_ReferenciaColganteResuelveANulo(t *testing.T) {
	uc, _, _ := newSaleUC()

	// El producto 42 no existe: los campos resueltos quedan nulos, sin error.
	resp, err := uc.EnrichItem(&entity.SaleItem{ProductoID: 42, Cantidad: 1, PrecioUnitario: dec("10")})
	require.NoError(t, err)
	assert.Nil(t, resp.ProductoNombre)
	assert.Nil(t, resp.ProductoPrecio)
	assert.Nil(t, resp.ProductoImagen)
	assert.Equal(t, int64(42), resp.ProductoID)
}

// failingProductRepo simula una caída de la base de datos en las lecturas
// de producto: distinta de una referencia colgante, que no es un error.
type failingProductRepo struct {
	fakeProductRepo
}

func (r *failingProductRepo) GetByID(id int64) (*entity.Product, error) {
	return nil, errors.New("conexión rechazada")
}

func TestEnrichItem_ErrorDeRepoSePropaga(t *testing.T) {
	saleRepo := newFakeSaleRepo()
	productRepo := &failingProductRepo{fakeProductRepo: *newFakeProductRepo()}
	uc := sales.NewSaleUseCase(&fakeSaleTxRunner{repo: saleRepo}, saleRepo, productRepo)

	// Un fallo del repo no se disfraza de producto eliminado: se propaga.
	_, err := uc.EnrichItem(&entity.SaleItem{ProductoID: 7, Cantidad: 1, PrecioUnitario: dec("10")})
	require.Error(t, err)

	// Y también a través de las lecturas que enriquecen.
	require.NoError(t, saleRepo.CreateItem(&entity.SaleItem{VentaID: 1, ProductoID: 7, Cantidad: 1, PrecioUnitario: dec("10")}))
	_, err = uc.GetItemByID(authz.Anonymous, 1)
	assert.Error(t, err)
}

func TestSaleItemUpdate_ValidaCantidad(t *testing.T) {
	uc, _, _ := newSaleUC()

	item, err := uc.CreateItem(authz.Anonymous, dto.CreateSaleItemRequest{
		VentaID: 1, ProductoID: 1, Cantidad: 2, PrecioUnitario: dec("5"),
	})
	require.NoError(t, err)

	mala := 0
	_, err = uc.UpdateItem(authz.Anonymous, item.ID, dto.UpdateSaleItemRequest{Cantidad: &mala})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	buena := 3
	updated, err := uc.UpdateItem(authz.Anonymous, item.ID, dto.UpdateSaleItemRequest{Cantidad: &buena})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Cantidad)
}

func TestSaleUpdate_CabeceraParcial(t *testing.T) {
	uc, saleRepo, _ := newSaleUC()

	require.NoError(t, saleRepo.Create(&entity.Sale{ClienteCedula: "111", Total: dec("10"), CreatedAt: time.Now()}))

	nuevoTotal := dec("25.5")
	sale, err := uc.Update(authz.Anonymous, 1, dto.UpdateSaleRequest{Total: &nuevoTotal})
	require.NoError(t, err)
	assert.Equal(t, "25.50", sale.Total.StringFixed(2))
	assert.Equal(t, "111", sale.ClienteCedula)

	malTotal := dec("0")
	_, err = uc.Update(authz.Anonymous, 1, dto.UpdateSaleRequest{Total: &malTotal})
	assert.ErrorIs(t, err, domain.ErrInvalidTotal)
}

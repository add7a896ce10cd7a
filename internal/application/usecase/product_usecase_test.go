package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/application/usecase"
	"github.com/jortega/ventas-api/internal/domain"
	"github.com/jortega/ventas-api/internal/domain/authz"
)

func TestProductCreate_PrecioInvalido(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	for _, precio := range []string{"0", "-5"} {
		_, err := uc.Create(adminCaller("admin"), dto.CreateProductRequest{
			Nombre: "Café", Precio: decimal.RequireFromString(precio),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPrice, "precio %s", precio)
	}

	// El mínimo representable con dos decimales sí pasa.
	p, err := uc.Create(adminCaller("admin"), dto.CreateProductRequest{
		Nombre: "Café", Precio: decimal.RequireFromString("0.01"),
	})
	require.NoError(t, err)
	assert.Equal(t, "0.01", p.Precio.StringFixed(2))
}

func TestProductCreate_StockNegativo(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	_, err := uc.Create(adminCaller("admin"), dto.CreateProductRequest{
		Nombre: "Café", Precio: decimal.RequireFromString("10"), Stock: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)
}

func TestProductCreate_SoloAdmin(t *testing.T) {
	uc := usecase.NewProductUseCase(newFakeProductRepo())

	_, err := uc.Create(userCaller("u1"), dto.CreateProductRequest{
		Nombre: "Café", Precio: decimal.RequireFromString("10"),
	})
	var denied *authz.DeniedError
	assert.ErrorAs(t, err, &denied)

	// La lectura en cambio es abierta, incluso anónima.
	_, err = uc.List(authz.Anonymous, nil, 20, 0)
	assert.NoError(t, err)
}

func TestProductUpdate_ValidaCamposPresentes(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	p, err := uc.Create(adminCaller("admin"), dto.CreateProductRequest{
		Nombre: "Café", Precio: decimal.RequireFromString("10"), Stock: 5,
	})
	require.NoError(t, err)

	malPrecio := decimal.Zero
	_, err = uc.Update(adminCaller("admin"), p.ID, dto.UpdateProductRequest{Precio: &malPrecio})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	malStock := -3
	_, err = uc.Update(adminCaller("admin"), p.ID, dto.UpdateProductRequest{Stock: &malStock})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)
}

func TestProductList_FiltraPorCategoria(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	cat := int64(7)
	_, err := uc.Create(adminCaller("admin"), dto.CreateProductRequest{
		Nombre: "Café", Precio: decimal.RequireFromString("10"), CategoriaID: &cat,
	})
	require.NoError(t, err)
	_, err = uc.Create(adminCaller("admin"), dto.CreateProductRequest{
		Nombre: "Té", Precio: decimal.RequireFromString("8"),
	})
	require.NoError(t, err)

	list, err := uc.List(authz.Anonymous, &cat, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Café", list[0].Nombre)
}

func TestCategoryDelete_AnulaReferenciaDeProductos(t *testing.T) {
	catRepo := newFakeCategoryRepo()
	prodRepo := newFakeProductRepo()
	txRunner := &fakeCatalogTxRunner{catRepo: catRepo, prodRepo: prodRepo}
	catUC := usecase.NewCategoryUseCase(catRepo, txRunner)
	prodUC := usecase.NewProductUseCase(prodRepo)

	cat, err := catUC.Create(adminCaller("admin"), dto.CreateCategoryRequest{Nombre: "Bebidas"})
	require.NoError(t, err)
	p, err := prodUC.Create(adminCaller("admin"), dto.CreateProductRequest{
		Nombre: "Café", Precio: decimal.RequireFromString("10"), CategoriaID: &cat.ID,
	})
	require.NoError(t, err)

	require.NoError(t, catUC.Delete(context.Background(), adminCaller("admin"), cat.ID))

	// El producto sobrevive con la referencia anulada, no se elimina en cascada.
	got, err := prodUC.GetByID(authz.Anonymous, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.CategoriaID)
}

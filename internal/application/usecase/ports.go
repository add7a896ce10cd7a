package usecase

import (
	"context"

	"github.com/jortega/ventas-api/internal/domain/repository"
)

// CatalogTxRunner ejecuta un callback con repos de catálogo atados a una
// misma transacción. Lo usa la eliminación de categorías: anular la
// referencia en productos y borrar la categoría deben ser atómicos.
type CatalogTxRunner interface {
	RunCatalogo(ctx context.Context, fn func(
		catRepo repository.CategoryRepository,
		prodRepo repository.ProductRepository,
	) error) error
}

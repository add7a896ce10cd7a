package repository

import "github.com/jortega/ventas-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// Create asigna el ID generado en product.ID.
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	// List filtra por categoría si categoriaID no es nil.
	List(categoriaID *int64, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id int64) error
	// ClearCategory anula la referencia de categoría de todos los productos
	// que la tengan (al eliminar la categoría: se anula, no se cascada).
	ClearCategory(categoriaID int64) error
}

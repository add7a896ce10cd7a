package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jortega/ventas-api/internal/domain/entity"
	"github.com/jortega/ventas-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, nombre, descripcion, precio, stock, imagen, categoria_id, created_at, updated_at`

// Create persiste un nuevo producto y asigna el ID generado. La referencia de
// categoría se guarda tal cual, sin verificar existencia.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO productos (nombre, descripcion, precio, stock, imagen, categoria_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := r.q.QueryRow(context.Background(), query,
		product.Nombre, product.Descripcion, product.Precio, product.Stock, product.Imagen,
		product.CategoriaID, product.CreatedAt, product.UpdatedAt,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Nombre, &p.Descripcion, &p.Precio, &p.Stock, &p.Imagen, &p.CategoriaID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// List lista productos con paginación; si categoriaID no es nil solo los de
// esa categoría. Ordenados por nombre.
func (r *ProductRepo) List(categoriaID *int64, limit, offset int) ([]*entity.Product, error) {
	var rows pgx.Rows
	var err error
	if categoriaID != nil {
		query := `SELECT ` + productColumns + ` FROM productos WHERE categoria_id = $1 ORDER BY nombre LIMIT $2 OFFSET $3`
		rows, err = r.q.Query(context.Background(), query, *categoriaID, limit, offset)
	} else {
		query := `SELECT ` + productColumns + ` FROM productos ORDER BY nombre LIMIT $1 OFFSET $2`
		rows, err = r.q.Query(context.Background(), query, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Nombre, &p.Descripcion, &p.Precio, &p.Stock, &p.Imagen,
			&p.CategoriaID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza un producto.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE productos SET nombre = $2, descripcion = $3, precio = $4, stock = $5, imagen = $6,
			categoria_id = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Nombre, product.Descripcion, product.Precio, product.Stock,
		product.Imagen, product.CategoriaID, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID. Las líneas de venta que lo referencian
// no se tocan: la referencia queda colgante y se resuelve a nulo al leer.
func (r *ProductRepo) Delete(id int64) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete producto: %w", err)
	}
	return nil
}

// ClearCategory anula la referencia de categoría de todos los productos que
// la tengan. Se usa dentro de la transacción de borrado de la categoría.
func (r *ProductRepo) ClearCategory(categoriaID int64) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET categoria_id = NULL WHERE categoria_id = $1`, categoriaID)
	if err != nil {
		return fmt.Errorf("clear categoria de productos: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jortega/ventas-api/internal/domain"
	"github.com/jortega/ventas-api/internal/domain/entity"
	"github.com/jortega/ventas-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
// La cédula es la llave primaria, no hay id generado.
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO clientes (cedula, nombre, email, telefono, ciudad, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		customer.Cedula, customer.Nombre, customer.Email, customer.Telefono, customer.Ciudad,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByCedula obtiene un cliente por cédula.
func (r *CustomerRepo) GetByCedula(cedula string) (*entity.Customer, error) {
	query := `
		SELECT cedula, nombre, email, telefono, ciudad, created_at, updated_at
		FROM clientes WHERE cedula = $1`
	var c entity.Customer
	err := r.q.QueryRow(context.Background(), query, cedula).Scan(
		&c.Cedula, &c.Nombre, &c.Email, &c.Telefono, &c.Ciudad, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// List lista clientes con paginación, ordenados por nombre.
func (r *CustomerRepo) List(limit, offset int) ([]*entity.Customer, error) {
	query := `
		SELECT cedula, nombre, email, telefono, ciudad, created_at, updated_at
		FROM clientes ORDER BY nombre LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.Cedula, &c.Nombre, &c.Email, &c.Telefono, &c.Ciudad, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente (la cédula no cambia).
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE clientes SET nombre = $2, email = $3, telefono = $4, ciudad = $5, updated_at = $6
		WHERE cedula = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.Cedula, customer.Nombre, customer.Email, customer.Telefono, customer.Ciudad,
		customer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// Delete elimina un cliente por cédula. Las ventas que lo referencian no se
// tocan: la cédula queda colgante y se resuelve a nulo al leer.
func (r *CustomerRepo) Delete(cedula string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clientes WHERE cedula = $1`, cedula)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	return nil
}

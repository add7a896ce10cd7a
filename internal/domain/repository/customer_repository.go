package repository

import "github.com/jortega/ventas-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// La cédula es la llave de consulta (llave natural, no id generado).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByCedula(cedula string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(cedula string) error
}

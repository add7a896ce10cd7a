package usecase

import (
	"time"

	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/domain"
	"github.com/jortega/ventas-api/internal/domain/authz"
	"github.com/jortega/ventas-api/internal/domain/entity"
	"github.com/jortega/ventas-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes, buscados por cédula
// (llave natural). Cualquier autenticado puede mutar; la eliminación no
// verifica ventas asociadas: la referencia queda colgante por diseño.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente.
func (uc *CustomerUseCase) Create(caller authz.Caller, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceCustomer, Action: authz.ActionCreate})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if in.Cedula == "" || in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetByCedula(in.Cedula); existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		Cedula:    in.Cedula,
		Nombre:    in.Nombre,
		Email:     in.Email,
		Telefono:  in.Telefono,
		Ciudad:    in.Ciudad,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByCedula obtiene un cliente por cédula.
func (uc *CustomerUseCase) GetByCedula(caller authz.Caller, cedula string) (*dto.CustomerResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceCustomer, Action: authz.ActionRead})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	customer, err := uc.repo.GetByCedula(cedula)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con paginación.
func (uc *CustomerUseCase) List(caller authz.Caller, limit, offset int) ([]*dto.CustomerResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceCustomer, Action: authz.ActionList})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	customers, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, toCustomerResponse(c))
	}
	return out, nil
}

// Update actualiza un cliente (la cédula no cambia).
func (uc *CustomerUseCase) Update(caller authz.Caller, cedula string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceCustomer, Action: authz.ActionUpdate})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	customer, err := uc.repo.GetByCedula(cedula)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		customer.Nombre = *in.Nombre
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Telefono != nil {
		customer.Telefono = *in.Telefono
	}
	if in.Ciudad != nil {
		customer.Ciudad = *in.Ciudad
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina un cliente. Sin verificación de ventas asociadas: las
// ventas que lo referencian quedan con la cédula colgante.
func (uc *CustomerUseCase) Delete(caller authz.Caller, cedula string) error {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceCustomer, Action: authz.ActionDelete})
	if err := decision.Err(); err != nil {
		return err
	}
	customer, err := uc.repo.GetByCedula(cedula)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(cedula)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		Cedula:    c.Cedula,
		Nombre:    c.Nombre,
		Email:     c.Email,
		Telefono:  c.Telefono,
		Ciudad:    c.Ciudad,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

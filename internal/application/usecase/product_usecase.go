package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/domain"
	"github.com/jortega/ventas-api/internal/domain/authz"
	"github.com/jortega/ventas-api/internal/domain/entity"
	"github.com/jortega/ventas-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Invariantes de escritura:
// precio > 0 (dos decimales), stock >= 0. El stock no se descuenta al vender.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto (solo admin).
func (uc *ProductUseCase) Create(caller authz.Caller, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceProduct, Action: authz.ActionCreate})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Precio.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidPrice
	}
	if in.Stock < 0 {
		return nil, domain.ErrInvalidStock
	}
	now := time.Now()
	product := &entity.Product{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Precio:      in.Precio.Round(2),
		Stock:       in.Stock,
		Imagen:      in.Imagen,
		CategoriaID: in.CategoriaID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(caller authz.Caller, id int64) (*dto.ProductResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceProduct, Action: authz.ActionRead})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos, opcionalmente filtrados por categoría.
func (uc *ProductUseCase) List(caller authz.Caller, categoriaID *int64, limit, offset int) ([]*dto.ProductResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceProduct, Action: authz.ActionList})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	products, err := uc.repo.List(categoriaID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update actualiza un producto (solo admin); los invariantes de precio y
// stock se verifican sobre los campos presentes del patch.
func (uc *ProductUseCase) Update(caller authz.Caller, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceProduct, Action: authz.ActionUpdate})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Precio != nil {
		if !in.Precio.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidPrice
		}
		product.Precio = in.Precio.Round(2)
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, domain.ErrInvalidStock
		}
		product.Stock = *in.Stock
	}
	if in.Nombre != nil {
		product.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		product.Descripcion = *in.Descripcion
	}
	if in.Imagen != nil {
		product.Imagen = *in.Imagen
	}
	if in.CategoriaID != nil {
		product.CategoriaID = in.CategoriaID
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto (solo admin). Las ventas que lo referencian
// conservan su línea; la referencia queda colgante y se resuelve a nulo.
func (uc *ProductUseCase) Delete(caller authz.Caller, id int64) error {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceProduct, Action: authz.ActionDelete})
	if err := decision.Err(); err != nil {
		return err
	}
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		Precio:      p.Precio,
		Stock:       p.Stock,
		Imagen:      p.Imagen,
		CategoriaID: p.CategoriaID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

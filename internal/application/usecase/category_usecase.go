package usecase

import (
	"context"

	"github.com/jortega/ventas-api/internal/application/dto"
	"github.com/jortega/ventas-api/internal/domain"
	"github.com/jortega/ventas-api/internal/domain/authz"
	"github.com/jortega/ventas-api/internal/domain/entity"
	"github.com/jortega/ventas-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías. La mutación es solo
// admin; la lectura es abierta en el modo relajado actual.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	txRunner CatalogTxRunner
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, txRunner CatalogTxRunner) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, txRunner: txRunner}
}

// Create crea una categoría (solo admin).
func (uc *CategoryUseCase) Create(caller authz.Caller, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceCategory, Action: authz.ActionCreate})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	category := &entity.Category{Nombre: in.Nombre, Descripcion: in.Descripcion}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetByID obtiene una categoría.
func (uc *CategoryUseCase) GetByID(caller authz.Caller, id int64) (*dto.CategoryResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceCategory, Action: authz.ActionRead})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category), nil
}

// List lista categorías con paginación.
func (uc *CategoryUseCase) List(caller authz.Caller, limit, offset int) ([]*dto.CategoryResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceCategory, Action: authz.ActionList})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	categories, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// Update actualiza una categoría (solo admin).
func (uc *CategoryUseCase) Update(caller authz.Caller, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceCategory, Action: authz.ActionUpdate})
	if err := decision.Err(); err != nil {
		return nil, err
	}
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if in.Nombre != nil {
		category.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		category.Descripcion = *in.Descripcion
	}
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete elimina una categoría (solo admin). En la misma transacción se
// anula la referencia de los productos que la usaban: la referencia se
// pone en nulo, no hay borrado en cascada de productos.
func (uc *CategoryUseCase) Delete(ctx context.Context, caller authz.Caller, id int64) error {
	decision := authz.Decide(caller, authz.Request{Resource: authz.ResourceCategory, Action: authz.ActionDelete})
	if err := decision.Err(); err != nil {
		return err
	}
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunCatalogo(ctx, func(
		catRepo repository.CategoryRepository,
		prodRepo repository.ProductRepository,
	) error {
		if err := prodRepo.ClearCategory(id); err != nil {
			return err
		}
		return catRepo.Delete(id)
	})
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Nombre: c.Nombre, Descripcion: c.Descripcion}
}

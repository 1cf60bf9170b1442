package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/foodcart-api/internal/application/dto"
	"github.com/jhoicas/foodcart-api/internal/domain"
	"github.com/jhoicas/foodcart-api/internal/domain/catalog"
	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
)

// CategoryUseCase casos de uso para categorías del menú.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El nombre se normaliza igual que los ítems; duplicado -> ErrDuplicate.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := catalog.NormalizeCategoryName(in.CategoryName)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// List devuelve todas las categorías (lista vacía si no hay).
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Delete elimina una categoría; ErrNotFound si no existe, ErrConflict si todavía tiene ítems.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(deleted), nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		CategoryID:   c.ID,
		CategoryName: c.Name,
		CreatedAt:    c.CreatedAt,
	}
}

package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodcart-api/internal/application/dto"
	"github.com/jhoicas/foodcart-api/internal/domain"
	"github.com/jhoicas/foodcart-api/internal/domain/catalog"
	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
)

// ItemUseCase casos de uso del catálogo de ítems. El stock solo baja vía checkout.
type ItemUseCase struct {
	repo         repository.ItemRepository
	categoryRepo repository.CategoryRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, categoryRepo repository.CategoryRepository) *ItemUseCase {
	return &ItemUseCase{repo: repo, categoryRepo: categoryRepo}
}

// CreateOrRestock normaliza nombre y precio y delega en el repositorio el upsert atómico
// por (name, price, category). ErrNotFound si la categoría no existe.
func (uc *ItemUseCase) CreateOrRestock(ctx context.Context, in dto.CreateItemRequest) (*dto.CreateItemResult, error) {
	name := catalog.NormalizeItemName(in.ItemName)
	price := catalog.NormalizePrice(in.Price)
	if name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if price.LessThan(decimal.Zero) || in.StockQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(in.CategoryID); err != nil {
		return nil, domain.ErrNotFound
	}
	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()
	item := &entity.Item{
		ID:            uuid.New().String(),
		CategoryID:    in.CategoryID,
		Name:          name,
		Price:         price,
		StockQuantity: in.StockQuantity,
		Description:   in.Description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	created, err := uc.repo.CreateOrRestock(ctx, item)
	if err != nil {
		return nil, err
	}
	return &dto.CreateItemResult{Item: *toItemResponse(item), Created: created}, nil
}

// GetByID obtiene un ítem; ErrNotFound si no existe.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return toItemResponse(item), nil
}

// List devuelve todos los ítems del catálogo.
func (uc *ItemUseCase) List(ctx context.Context) ([]dto.ItemResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toItemResponses(list), nil
}

// ListByCategory devuelve los ítems de una categoría; ErrNotFound si no hay ninguno.
func (uc *ItemUseCase) ListByCategory(ctx context.Context, categoryID string) ([]dto.ItemResponse, error) {
	if _, err := uuid.Parse(categoryID); err != nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	return toItemResponses(list), nil
}

// Delete elimina un ítem y devuelve su último estado; ErrNotFound si no existe.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) (*dto.ItemResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(deleted), nil
}

func toItemResponses(list []*entity.Item) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(list))
	for _, it := range list {
		out = append(out, *toItemResponse(it))
	}
	return out
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ItemID:        it.ID,
		CategoryID:    it.CategoryID,
		ItemName:      it.Name,
		Price:         it.Price,
		StockQuantity: it.StockQuantity,
		Description:   it.Description,
		CreatedAt:     it.CreatedAt,
		UpdatedAt:     it.UpdatedAt,
	}
}

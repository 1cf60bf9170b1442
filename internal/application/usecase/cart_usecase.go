package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodcart-api/internal/application/dto"
	"github.com/jhoicas/foodcart-api/internal/domain"
	"github.com/jhoicas/foodcart-api/internal/domain/checkout"
	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
)

// CartUseCase gestiona el carrito del usuario autenticado.
type CartUseCase struct {
	repo     repository.CartRepository
	itemRepo repository.ItemRepository
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(repo repository.CartRepository, itemRepo repository.ItemRepository) *CartUseCase {
	return &CartUseCase{repo: repo, itemRepo: itemRepo}
}

// AddItem agrega una unidad del ítem: crea la línea con cantidad 1 o incrementa la existente.
// ErrNotFound si el ítem no existe en el catálogo.
func (uc *CartUseCase) AddItem(ctx context.Context, userID string, in dto.AddToCartRequest) (*dto.AddToCartResult, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uuid.Parse(in.ItemID); err != nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	entry, created, err := uc.repo.AddOne(ctx, userID, in.ItemID)
	if err != nil {
		return nil, err
	}
	return &dto.AddToCartResult{Entry: toCartEntryResponse(entry), Created: created}, nil
}

// RemoveOne quita una unidad de la línea; si era la última, elimina la línea.
// ErrNotFound si la línea no existe o pertenece a otro usuario.
func (uc *CartUseCase) RemoveOne(ctx context.Context, userID, cartItemID string) (*dto.RemoveFromCartResult, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if _, err := uuid.Parse(cartItemID); err != nil {
		return nil, domain.ErrNotFound
	}
	entry, err := uc.repo.DecrementOne(ctx, userID, cartItemID)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		return &dto.RemoveFromCartResult{Entry: toCartEntryResponse(entry)}, nil
	}
	// Cantidad 1 (o inexistente): se elimina la línea.
	entry, err = uc.repo.Delete(ctx, userID, cartItemID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	entry.Quantity = 0
	return &dto.RemoveFromCartResult{Entry: toCartEntryResponse(entry), Deleted: true}, nil
}

// ListItems devuelve las líneas unidas con el ítem; ErrNotFound si el carrito está vacío.
func (uc *CartUseCase) ListItems(ctx context.Context, userID string) ([]dto.CartLineResponse, error) {
	summary, err := uc.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	if summary.ItemCount == 0 {
		return nil, domain.ErrNotFound
	}
	return summary.Items, nil
}

// Summary devuelve el carrito con el total a precios actuales (puede estar vacío).
func (uc *CartUseCase) Summary(ctx context.Context, userID string) (*dto.CartSummaryResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	lines, err := uc.repo.ListLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.CartSummaryResponse{
		Items:       make([]dto.CartLineResponse, 0, len(lines)),
		TotalAmount: decimal.Zero,
	}
	for _, l := range lines {
		out.Items = append(out.Items, toCartLineResponse(l))
		out.ItemCount += l.Quantity
	}
	out.TotalAmount = checkout.Total(lines)
	return out, nil
}

func toCartEntryResponse(e *entity.CartEntry) dto.CartEntryResponse {
	return dto.CartEntryResponse{
		CartItemID: e.ID,
		UserID:     e.UserID,
		ItemID:     e.ItemID,
		Quantity:   e.Quantity,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toCartLineResponse(l entity.CartLine) dto.CartLineResponse {
	return dto.CartLineResponse{
		CartItemID:  l.CartEntryID,
		ItemID:      l.ItemID,
		ItemName:    l.ItemName,
		Price:       l.Price,
		Quantity:    l.Quantity,
		Description: l.Description,
		Subtotal:    l.Subtotal(),
	}
}

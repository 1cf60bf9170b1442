package repository

import (
	"context"

	"github.com/jhoicas/foodcart-api/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras y sus líneas.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	CreateItem(ctx context.Context, item *entity.PurchaseItem) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	// ListByUser devuelve las compras del usuario, la más reciente primero.
	ListByUser(ctx context.Context, userID string) ([]*entity.Purchase, error)
	ListItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error)
}

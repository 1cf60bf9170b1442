package repository

import (
	"context"

	"github.com/jhoicas/foodcart-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
type ItemRepository interface {
	// CreateOrRestock inserta el ítem o, si ya existe la terna (name, price, category_id),
	// suma item.StockQuantity al stock existente. item queda con el estado persistido.
	// created indica si se insertó una fila nueva.
	CreateOrRestock(ctx context.Context, item *entity.Item) (created bool, err error)
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context) ([]*entity.Item, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*entity.Item, error)
	// Delete devuelve el ítem eliminado o domain.ErrNotFound.
	Delete(ctx context.Context, id string) (*entity.Item, error)
	// DecrementStock resta quantity al stock; devuelve domain.ErrInsufficientStock si quedaría negativo.
	DecrementStock(ctx context.Context, id string, quantity int) error
}

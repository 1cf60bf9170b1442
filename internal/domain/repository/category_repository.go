package repository

import (
	"context"

	"github.com/jhoicas/foodcart-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	// Delete devuelve domain.ErrNotFound si no existe y domain.ErrConflict si aún tiene ítems.
	Delete(ctx context.Context, id string) (*entity.Category, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/foodcart-api/internal/domain"
	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación del puerto ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, category_id, name, price, stock_quantity, description, created_at, updated_at`

func scanItem(row pgx.Row, it *entity.Item) error {
	return row.Scan(&it.ID, &it.CategoryID, &it.Name, &it.Price, &it.StockQuantity, &it.Description, &it.CreatedAt, &it.UpdatedAt)
}

// CreateOrRestock inserta o suma stock en una sola sentencia sobre el índice único
// (name, price, category_id). xmax = 0 solo en filas recién insertadas.
func (r *ItemRepo) CreateOrRestock(ctx context.Context, item *entity.Item) (bool, error) {
	query := `
		INSERT INTO items (id, category_id, name, price, stock_quantity, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT ON CONSTRAINT items_name_price_category_key
		DO UPDATE SET stock_quantity = items.stock_quantity + EXCLUDED.stock_quantity,
		              updated_at = now()
		RETURNING ` + itemColumns + `, (xmax = 0) AS inserted`
	var inserted bool
	err := r.q.QueryRow(ctx, query,
		item.ID, item.CategoryID, item.Name, item.Price, item.StockQuantity, item.Description,
		item.CreatedAt, item.UpdatedAt,
	).Scan(
		&item.ID, &item.CategoryID, &item.Name, &item.Price, &item.StockQuantity, &item.Description,
		&item.CreatedAt, &item.UpdatedAt, &inserted,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrNotFound
		}
		if isCheckViolation(err) {
			return false, domain.ErrInvalidInput
		}
		return false, fmt.Errorf("upsert item: %w", err)
	}
	return inserted, nil
}

// GetByID obtiene un ítem por ID; (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	var it entity.Item
	err := scanItem(r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id), &it)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// List devuelve todos los ítems ordenados por nombre.
func (r *ItemRepo) List(ctx context.Context) ([]*entity.Item, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM items ORDER BY name, id`)
}

// ListByCategory devuelve los ítems de una categoría ordenados por nombre.
func (r *ItemRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Item, error) {
	return r.list(ctx, `SELECT `+itemColumns+` FROM items WHERE category_id = $1 ORDER BY name, id`, categoryID)
}

func (r *ItemRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Item, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := scanItem(rows, &it); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Delete elimina el ítem. Las líneas de carrito caen en cascada y purchase_items.item_id queda NULL.
func (r *ItemRepo) Delete(ctx context.Context, id string) (*entity.Item, error) {
	var it entity.Item
	err := scanItem(r.q.QueryRow(ctx, `DELETE FROM items WHERE id = $1 RETURNING `+itemColumns, id), &it)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete item: %w", err)
	}
	return &it, nil
}

// DecrementStock resta quantity solo si alcanza; 0 filas afectadas -> ErrInsufficientStock.
func (r *ItemRepo) DecrementStock(ctx context.Context, id string, quantity int) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE items
		SET stock_quantity = stock_quantity - $2, updated_at = now()
		WHERE id = $1 AND stock_quantity >= $2`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

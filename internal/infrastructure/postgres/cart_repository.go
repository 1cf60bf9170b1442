package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/foodcart-api/internal/domain"
	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
)

var _ repository.CartRepository = (*CartRepo)(nil)

// CartRepo implementación del puerto CartRepository sobre PostgreSQL (usable con pool o tx).
type CartRepo struct {
	q Querier
}

// NewCartRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCartRepository(q Querier) *CartRepo {
	return &CartRepo{q: q}
}

const cartColumns = `id, user_id, item_id, quantity, created_at, updated_at`

func scanCartEntry(row pgx.Row, e *entity.CartEntry) error {
	return row.Scan(&e.ID, &e.UserID, &e.ItemID, &e.Quantity, &e.CreatedAt, &e.UpdatedAt)
}

// AddOne inserta la línea o incrementa la cantidad en una sola sentencia (UNIQUE user_id, item_id).
func (r *CartRepo) AddOne(ctx context.Context, userID, itemID string) (*entity.CartEntry, bool, error) {
	query := `
		INSERT INTO cart_entries (id, user_id, item_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, 1, now(), now())
		ON CONFLICT ON CONSTRAINT cart_entries_user_item_key
		DO UPDATE SET quantity = cart_entries.quantity + 1, updated_at = now()
		RETURNING ` + cartColumns + `, (xmax = 0) AS inserted`
	var (
		e        entity.CartEntry
		inserted bool
	)
	err := r.q.QueryRow(ctx, query, uuid.New().String(), userID, itemID).Scan(
		&e.ID, &e.UserID, &e.ItemID, &e.Quantity, &e.CreatedAt, &e.UpdatedAt, &inserted,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("add cart entry: %w", err)
	}
	return &e, inserted, nil
}

// DecrementOne resta una unidad solo si quantity > 1; nil si no aplicó.
func (r *CartRepo) DecrementOne(ctx context.Context, userID, entryID string) (*entity.CartEntry, error) {
	var e entity.CartEntry
	err := scanCartEntry(r.q.QueryRow(ctx, `
		UPDATE cart_entries
		SET quantity = quantity - 1, updated_at = now()
		WHERE id = $1 AND user_id = $2 AND quantity > 1
		RETURNING `+cartColumns, entryID, userID), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("decrement cart entry: %w", err)
	}
	return &e, nil
}

// Delete elimina la línea del usuario; nil si no existe.
func (r *CartRepo) Delete(ctx context.Context, userID, entryID string) (*entity.CartEntry, error) {
	var e entity.CartEntry
	err := scanCartEntry(r.q.QueryRow(ctx,
		`DELETE FROM cart_entries WHERE id = $1 AND user_id = $2 RETURNING `+cartColumns,
		entryID, userID), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete cart entry: %w", err)
	}
	return &e, nil
}

const cartLinesQuery = `
	SELECT c.id, i.id, i.name, i.price, c.quantity, i.stock_quantity, i.description
	FROM cart_entries c
	JOIN items i ON i.id = c.item_id
	WHERE c.user_id = $1`

// ListLines devuelve las líneas del usuario unidas con el ítem, en orden de alta.
func (r *CartRepo) ListLines(ctx context.Context, userID string) ([]entity.CartLine, error) {
	return r.lines(ctx, cartLinesQuery+` ORDER BY c.created_at, c.id`, userID)
}

// ListLinesForUpdate bloquea las filas de items y de cart_entries en orden de item_id para que dos
// checkouts concurrentes tomen los locks en el mismo orden. Un AddOne concurrente sobre una línea
// leída queda esperando hasta el commit.
func (r *CartRepo) ListLinesForUpdate(ctx context.Context, userID string) ([]entity.CartLine, error) {
	return r.lines(ctx, cartLinesQuery+` ORDER BY i.id FOR UPDATE OF c, i`, userID)
}

func (r *CartRepo) lines(ctx context.Context, query, userID string) ([]entity.CartLine, error) {
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}
	defer rows.Close()
	var out []entity.CartLine
	for rows.Next() {
		var l entity.CartLine
		if err := rows.Scan(&l.CartEntryID, &l.ItemID, &l.ItemName, &l.Price, &l.Quantity, &l.StockQuantity, &l.Description); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ClearEntries elimina solo las líneas indicadas del usuario. Las líneas agregadas después de la
// lectura del checkout se conservan.
func (r *CartRepo) ClearEntries(ctx context.Context, userID string, entryIDs []string) (int64, error) {
	if len(entryIDs) == 0 {
		return 0, nil
	}
	tag, err := r.q.Exec(ctx, `DELETE FROM cart_entries WHERE user_id = $1 AND id = ANY($2)`, userID, entryIDs)
	if err != nil {
		return 0, fmt.Errorf("clear cart: %w", err)
	}
	return tag.RowsAffected(), nil
}

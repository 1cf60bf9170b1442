package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/foodcart-api/internal/domain/entity"
	"github.com/jhoicas/foodcart-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo implementación del puerto PurchaseRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, user_id, total_amount, payment_method, purchased_at`

func scanPurchase(row pgx.Row, p *entity.Purchase) error {
	return row.Scan(&p.ID, &p.UserID, &p.TotalAmount, &p.PaymentMethod, &p.PurchasedAt)
}

// Create persiste la cabecera de la compra.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchases (id, user_id, total_amount, payment_method, purchased_at)
		VALUES ($1, $2, $3, $4, $5)`,
		p.ID, p.UserID, p.TotalAmount, p.PaymentMethod, p.PurchasedAt,
	)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de compra con el nombre y precio congelados.
func (r *PurchaseRepo) CreateItem(ctx context.Context, pi *entity.PurchaseItem) error {
	var itemID *string
	if pi.ItemID != "" {
		itemID = &pi.ItemID
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchase_items (id, purchase_id, item_id, item_name, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		pi.ID, pi.PurchaseID, itemID, pi.ItemName, pi.Quantity, pi.Price,
	)
	if err != nil {
		return fmt.Errorf("insert purchase item: %w", err)
	}
	return nil
}

// GetByID obtiene una compra; (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	var p entity.Purchase
	err := scanPurchase(r.q.QueryRow(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// ListByUser devuelve las compras del usuario, la más reciente primero.
func (r *PurchaseRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE user_id = $1 ORDER BY purchased_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		var p entity.Purchase
		if err := scanPurchase(rows, &p); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListItems devuelve las líneas de una compra.
func (r *PurchaseRepo) ListItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_id, item_id, item_name, quantity, price
		FROM purchase_items WHERE purchase_id = $1
		ORDER BY item_name, id`, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list purchase items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseItem
	for rows.Next() {
		var (
			pi     entity.PurchaseItem
			itemID *string
		)
		if err := rows.Scan(&pi.ID, &pi.PurchaseID, &itemID, &pi.ItemName, &pi.Quantity, &pi.Price); err != nil {
			return nil, fmt.Errorf("scan purchase item: %w", err)
		}
		if itemID != nil {
			pi.ItemID = *itemID
		}
		list = append(list, &pi)
	}
	return list, rows.Err()
}

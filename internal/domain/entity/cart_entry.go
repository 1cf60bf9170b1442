package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartEntry es una línea del carrito: única por (UserID, ItemID), Quantity >= 1.
type CartEntry struct {
	ID        string
	UserID    string
	ItemID    string
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartLine es una línea del carrito unida con los datos actuales del ítem.
type CartLine struct {
	CartEntryID   string
	ItemID        string
	ItemName      string
	Price         decimal.Decimal
	Quantity      int
	StockQuantity int
	Description   string
}

// Subtotal precio actual por cantidad.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

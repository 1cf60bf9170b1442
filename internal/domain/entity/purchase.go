package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago ofrecidos por la tienda.
const (
	PaymentCreditCard = "credit-card"
	PaymentPayPal     = "paypal"
)

// Purchase es la cabecera de una compra. Solo la crea el checkout y no se modifica después.
type Purchase struct {
	ID            string
	UserID        string
	TotalAmount   decimal.Decimal
	PaymentMethod string
	PurchasedAt   time.Time
}

// PurchaseItem es una línea de compra. Price y ItemName son una foto del ítem al momento
// de la compra; cambios posteriores en el catálogo no los afectan.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ItemID     string // vacío si el ítem fue eliminado del catálogo
	ItemName   string
	Quantity   int
	Price      decimal.Decimal
}

// Subtotal precio congelado por cantidad.
func (pi PurchaseItem) Subtotal() decimal.Decimal {
	return pi.Price.Mul(decimal.NewFromInt(int64(pi.Quantity)))
}

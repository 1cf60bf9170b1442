package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutRequest entrada del checkout.
type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// CheckoutResponse resultado de una compra exitosa.
type CheckoutResponse struct {
	PurchaseID  string          `json:"purchaseID"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// PurchaseItemResponse línea de compra con precio congelado.
type PurchaseItemResponse struct {
	PurchaseItemID string          `json:"purchaseItemID"`
	ItemID         string          `json:"itemID,omitempty"`
	ItemName       string          `json:"itemName"`
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse compra con sus líneas anidadas.
type PurchaseResponse struct {
	PurchaseID    string                 `json:"purchaseID"`
	TotalAmount   decimal.Decimal        `json:"totalAmount"`
	PaymentMethod string                 `json:"paymentMethod"`
	PurchaseDate  time.Time              `json:"purchaseDate"`
	Items         []PurchaseItemResponse `json:"items"`
}

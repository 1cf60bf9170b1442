package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddToCartRequest entrada para agregar una unidad de un ítem al carrito.
type AddToCartRequest struct {
	ItemID string `json:"itemID" validate:"required,uuid"`
}

// CartEntryResponse línea del carrito tal como está persistida.
type CartEntryResponse struct {
	CartItemID string    `json:"cartItemID"`
	UserID     string    `json:"userID"`
	ItemID     string    `json:"itemID"`
	Quantity   int       `json:"quantity"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// AddToCartResult resultado de agregar: Created=false indica incremento de una línea existente.
type AddToCartResult struct {
	Entry   CartEntryResponse
	Created bool
}

// RemoveFromCartResult resultado de quitar una unidad.
type RemoveFromCartResult struct {
	Entry   CartEntryResponse
	Deleted bool // true si la línea se eliminó por llegar a cero
}

// CartLineResponse línea del carrito unida con el ítem.
type CartLineResponse struct {
	CartItemID  string          `json:"cartItemID"`
	ItemID      string          `json:"itemID"`
	ItemName    string          `json:"itemName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Description string          `json:"description"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CartSummaryResponse carrito completo con total calculado a precios actuales.
type CartSummaryResponse struct {
	Items       []CartLineResponse `json:"items"`
	ItemCount   int                `json:"itemCount"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	CategoryName string `json:"categoryName" validate:"required,max=100"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	CategoryID   string    `json:"categoryID"`
	CategoryName string    `json:"categoryName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateItemRequest entrada de alta o reposición de un ítem.
// Name y Price se normalizan antes de buscar la terna (name, price, category).
type CreateItemRequest struct {
	ItemName      string          `json:"itemName" validate:"required,max=200"`
	CategoryID    string          `json:"categoryID" validate:"required,uuid"`
	Price         decimal.Decimal `json:"price" validate:"required"`
	StockQuantity int             `json:"stockQuantity" validate:"min=0"`
	Description   string          `json:"description"`
}

// ItemResponse salida de un ítem del catálogo.
type ItemResponse struct {
	ItemID        string          `json:"itemID"`
	CategoryID    string          `json:"categoryID"`
	ItemName      string          `json:"itemName"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	Description   string          `json:"description"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// CreateItemResult resultado de CreateOrRestock: Created=false indica reposición.
type CreateItemResult struct {
	Item    ItemResponse
	Created bool
}

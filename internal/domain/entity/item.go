package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un producto del menú con su inventario disponible.
// (Name, Price, CategoryID) es la llave de reposición: un alta con la misma terna suma stock.
type Item struct {
	ID            string
	CategoryID    string
	Name          string          // normalizado: sin espacios extremos y en minúsculas
	Price         decimal.Decimal // dos decimales
	StockQuantity int             // nunca negativo
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

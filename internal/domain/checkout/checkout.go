// Package checkout contiene las reglas puras del cierre de compra: validación de stock
// y cálculo del total en punto fijo.
package checkout

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/foodcart-api/internal/domain"
	"github.com/jhoicas/foodcart-api/internal/domain/entity"
)

// ValidateStock verifica que cada línea tenga stock suficiente.
// Devuelve *domain.InsufficientStockError con la primera línea que no alcanza.
func ValidateStock(lines []entity.CartLine) error {
	if len(lines) == 0 {
		return domain.ErrEmptyCart
	}
	for _, l := range lines {
		if l.Quantity > l.StockQuantity {
			return &domain.InsufficientStockError{
				ItemID:    l.ItemID,
				ItemName:  l.ItemName,
				Requested: l.Quantity,
				Available: l.StockQuantity,
			}
		}
	}
	return nil
}

// Total suma precio * cantidad de todas las líneas.
func Total(lines []entity.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Package catalog reúne las reglas puras del catálogo (servicio de dominio).
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// PriceScale decimales con que se guardan los precios.
const PriceScale = 2

// NormalizeItemName quita espacios extremos y aplica case folding ("  Fries " -> "fries").
func NormalizeItemName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// NormalizePrice redondea a dos decimales (half away from zero).
func NormalizePrice(price decimal.Decimal) decimal.Decimal {
	return price.Round(PriceScale)
}

// NormalizeCategoryName aplica la misma regla que a los ítems.
func NormalizeCategoryName(name string) string {
	return NormalizeItemName(name)
}

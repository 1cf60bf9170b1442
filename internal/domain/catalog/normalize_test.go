package catalog_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/foodcart-api/internal/domain/catalog"
)

func TestNormalizeItemName(t *testing.T) {
	cases := map[string]string{
		"  Fries ":      "fries",
		"Cheese BURGER": "cheese burger",
		"fries":         "fries",
		"\tIced Tea\n":  "iced tea",
		"":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, catalog.NormalizeItemName(in), "input %q", in)
	}
}

func TestNormalizePrice_RedondeaADosDecimales(t *testing.T) {
	assert.True(t, decimal.RequireFromString("7.99").Equal(catalog.NormalizePrice(decimal.RequireFromString("7.989"))))
	assert.True(t, decimal.RequireFromString("8.00").Equal(catalog.NormalizePrice(decimal.RequireFromString("7.995"))))
	assert.True(t, decimal.RequireFromString("3").Equal(catalog.NormalizePrice(decimal.NewFromInt(3))))
}

package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/foodcart-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "$0.00",
		"3.5":        "$3.50",
		"1234.5":     "$1,234.50",
		"1000000.25": "$1,000,000.25",
		"-42":        "-$42.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateReceiptPDF(t *testing.T) {
	p := &entity.Purchase{
		ID:            "5b1f7c2e-0000-4000-8000-000000000001",
		UserID:        "u1",
		TotalAmount:   decimal.RequireFromString("20.25"),
		PaymentMethod: entity.PaymentCreditCard,
		PurchasedAt:   time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	items := []*entity.PurchaseItem{
		{ID: "a", PurchaseID: p.ID, ItemName: "burger", Quantity: 2, Price: decimal.RequireFromString("8.50")},
		{ID: "b", PurchaseID: p.ID, ItemName: "fries", Quantity: 1, Price: decimal.RequireFromString("3.25")},
	}
	out, err := NewReceiptGenerator("").GenerateReceiptPDF(context.Background(), p, items, &entity.User{Username: "ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

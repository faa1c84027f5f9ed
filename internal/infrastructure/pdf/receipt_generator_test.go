package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0,00"},
		{"999.9", "999,90"},
		{"1234.5", "1.234,50"},
		{"25000", "25.000,00"},
		{"1000000.125", "1.000.000,13"},
		{"-1500", "-1.500,00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, formatMoney(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestGenerateOrderReceipt(t *testing.T) {
	order := &entity.Order{
		ID:                   12,
		CustomerID:           3,
		CustomerName:         "Ada",
		CustomerEmail:        "ada@example.com",
		CustomerLocationName: "Nigeria",
		Status:               entity.OrderStatusPending,
		TotalAmount:          decimal.RequireFromString("59.97"),
		CreatedAt:            time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC),
		Items: []entity.OrderItem{
			{ProductID: 1, ProductName: "Headphones", ProductLineName: "Electronics", Quantity: 3, UnitPrice: decimal.RequireFromString("19.99")},
		},
	}

	b, err := NewMarotoReceiptGenerator("Back Office").GenerateOrderReceipt(context.Background(), order)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerateOrderReceipt_Nil(t *testing.T) {
	_, err := NewMarotoReceiptGenerator("x").GenerateOrderReceipt(context.Background(), nil)
	assert.Error(t, err)
}

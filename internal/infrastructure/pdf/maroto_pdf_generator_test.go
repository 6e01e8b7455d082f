package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/orders"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "19,00", formatMoney(decimal.NewFromInt(19)))
	assert.Equal(t, "25.000,00", formatMoney(decimal.NewFromInt(25000)))
	assert.Equal(t, "1.234.567,50", formatMoney(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-1.000,25", formatMoney(decimal.RequireFromString("-1000.25")))
}

func TestGenerateDeliveryNote(t *testing.T) {
	shipped := time.Now()
	order := &entity.Order{
		ID:        "ord-1",
		OwnerID:   "acc-1",
		Kind:      entity.OrderKindSale,
		Status:    entity.OrderStatusShipped,
		Total:     decimal.NewFromInt(19),
		ShippedAt: &shipped,
		CreatedAt: shipped,
	}
	lines := []orders.DeliveryNoteLine{
		{ProductName: "A", Quantity: 2, UnitPrice: decimal.NewFromInt(5), Subtotal: decimal.NewFromInt(10)},
		{ProductName: "B", Quantity: 1, UnitPrice: decimal.NewFromInt(9), Subtotal: decimal.NewFromInt(9)},
	}

	doc, err := NewMarotoPDFGenerator().GenerateDeliveryNote(context.Background(), order, lines)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

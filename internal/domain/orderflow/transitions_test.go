package orderflow_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/orderflow"
)

var allStatuses = []string{
	entity.OrderStatusPending,
	entity.OrderStatusAwaitingPayment,
	entity.OrderStatusShipped,
	entity.OrderStatusCompleted,
	entity.OrderStatusCanceled,
}

func TestCanTransition_GrafoVenta(t *testing.T) {
	allowed := map[[2]string]bool{
		{entity.OrderStatusPending, entity.OrderStatusAwaitingPayment}:  true,
		{entity.OrderStatusPending, entity.OrderStatusCanceled}:         true,
		{entity.OrderStatusAwaitingPayment, entity.OrderStatusShipped}:  true,
		{entity.OrderStatusAwaitingPayment, entity.OrderStatusCanceled}: true,
		{entity.OrderStatusShipped, entity.OrderStatusCompleted}:        true,
	}
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			err := orderflow.CanTransition(entity.OrderKindSale, from, to)
			if allowed[[2]string{from, to}] {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	}
}

func TestCanTransition_GrafoReposicion(t *testing.T) {
	allowed := map[[2]string]bool{
		{entity.OrderStatusPending, entity.OrderStatusCompleted}: true,
		{entity.OrderStatusPending, entity.OrderStatusCanceled}:  true,
	}
	for _, from := range allStatuses {
		for _, to := range allStatuses {
			err := orderflow.CanTransition(entity.OrderKindRestock, from, to)
			if allowed[[2]string{from, to}] {
				assert.NoError(t, err, "%s -> %s", from, to)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidTransition, "%s -> %s", from, to)
			}
		}
	}
}

func TestCanTransition_EnvioSinPago(t *testing.T) {
	err := orderflow.CanTransition(entity.OrderKindSale, entity.OrderStatusPending, entity.OrderStatusShipped)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCanTransition_EstadoDesconocido(t *testing.T) {
	err := orderflow.CanTransition(entity.OrderKindSale, entity.OrderStatusPending, "lost")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestStockPolicy(t *testing.T) {
	def := orderflow.DefaultStockPolicy()
	assert.Equal(t, entity.MovementIn, def.CompletionMovement(entity.OrderKindSale))
	assert.Equal(t, entity.MovementIn, def.CompletionMovement(entity.OrderKindRestock))

	out, err := orderflow.NewStockPolicy(entity.MovementOut)
	require.NoError(t, err)
	assert.Equal(t, entity.MovementOut, out.CompletionMovement(entity.OrderKindSale))
	assert.Equal(t, entity.MovementIn, out.CompletionMovement(entity.OrderKindRestock),
		"la reposición siempre ingresa stock")

	_, err = orderflow.NewStockPolicy("sideways")
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestMergeLines(t *testing.T) {
	_, err := orderflow.MergeLines(nil)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	_, err = orderflow.MergeLines([]orderflow.LineRequest{{ProductID: "a", Quantity: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	// la suma de líneas repetidas no puede desbordar
	_, err = orderflow.MergeLines([]orderflow.LineRequest{
		{ProductID: "a", Quantity: math.MaxInt64},
		{ProductID: "a", Quantity: 2},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)

	merged, err := orderflow.MergeLines([]orderflow.LineRequest{
		{ProductID: "a", Quantity: 2},
		{ProductID: "b", Quantity: 1},
		{ProductID: "a", Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, merged, 2)
	assert.Equal(t, orderflow.LineRequest{ProductID: "a", Quantity: 5}, merged[0])
	assert.Equal(t, orderflow.LineRequest{ProductID: "b", Quantity: 1}, merged[1])
}

func TestTotal_PrecioCongelado(t *testing.T) {
	a := &entity.Product{ID: "a", Price: decimal.NewFromInt(5)}
	b := &entity.Product{ID: "b", Price: decimal.NewFromInt(9)}
	lines := []*entity.OrderLine{
		orderflow.PriceLine("o1", orderflow.LineRequest{ProductID: "a", Quantity: 2}, a),
		orderflow.PriceLine("o1", orderflow.LineRequest{ProductID: "b", Quantity: 1}, b),
	}
	assert.True(t, orderflow.Total(lines).Equal(decimal.NewFromInt(19)))

	a.Price = decimal.NewFromInt(50)
	assert.True(t, orderflow.Total(lines).Equal(decimal.NewFromInt(19)),
		"el cambio de precio posterior no altera las líneas ya creadas")
}

package orderflow

import (
	"fmt"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// Grafo de transiciones permitidas por tipo de orden.
var transitions = map[string]map[string][]string{
	entity.OrderKindSale: {
		entity.OrderStatusPending:         {entity.OrderStatusAwaitingPayment, entity.OrderStatusCanceled},
		entity.OrderStatusAwaitingPayment: {entity.OrderStatusShipped, entity.OrderStatusCanceled},
		entity.OrderStatusShipped:         {entity.OrderStatusCompleted},
	},
	entity.OrderKindRestock: {
		entity.OrderStatusPending: {entity.OrderStatusCompleted, entity.OrderStatusCanceled},
	},
}

// CanTransition valida el paso de from a to para el tipo de orden indicado.
// Devuelve ErrInvalidTransition (envuelto con el detalle) si el paso no está permitido.
func CanTransition(kind, from, to string) error {
	if !entity.ValidOrderStatus(to) {
		return fmt.Errorf("%w: estado %q", domain.ErrInvalidRequest, to)
	}
	graph, ok := transitions[kind]
	if !ok {
		return fmt.Errorf("%w: tipo de orden %q", domain.ErrInvalidTransition, kind)
	}
	for _, next := range graph[from] {
		if next == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s (%s)", domain.ErrInvalidTransition, from, to, kind)
}

package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento de orden publicados tras el commit.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// OrderEvent notificación de un cambio ya confirmado en una orden.
type OrderEvent struct {
	Type       string          `json:"type"`
	OrderID    string          `json:"order_id"`
	OwnerID    string          `json:"owner_id"`
	Kind       string          `json:"kind"`
	FromStatus string          `json:"from_status,omitempty"`
	ToStatus   string          `json:"to_status,omitempty"`
	Total      decimal.Decimal `json:"total"`
	ActorID    string          `json:"actor_id"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// EventPublisher puerto de salida hacia el colaborador de notificaciones.
// Un fallo de publicación nunca revierte la operación ya confirmada.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
}

// NopPublisher descarta los eventos (publicación deshabilitada).
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, OrderEvent) error { return nil }

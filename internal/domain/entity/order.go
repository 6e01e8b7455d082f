package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden.
const (
	OrderKindSale    = "sale"    // venta: pasa por pago y envío
	OrderKindRestock = "restock" // reposición: sin pago ni envío
)

// Estados de una orden.
const (
	OrderStatusPending         = "pending"
	OrderStatusAwaitingPayment = "awaiting_payment"
	OrderStatusShipped         = "shipped"
	OrderStatusCompleted       = "completed"
	OrderStatusCanceled        = "canceled"
)

// Order cabecera de una orden. Total se calcula a partir de las líneas al crearla.
type Order struct {
	ID        string
	OwnerID   string
	Kind      string
	Status    string
	Total     decimal.Decimal
	ShippedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	Lines     []*OrderLine
}

// OrderLine línea de una orden con el precio congelado al momento de crearla.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// ValidOrderKind indica si el tipo de orden es reconocido.
func ValidOrderKind(kind string) bool {
	return kind == OrderKindSale || kind == OrderKindRestock
}

// ValidOrderStatus indica si el estado es reconocido.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusAwaitingPayment, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCanceled:
		return true
	}
	return false
}

// AgeReference fecha desde la que se mide la antigüedad de un envío.
func (o *Order) AgeReference() time.Time {
	if o.ShippedAt != nil {
		return *o.ShippedAt
	}
	return o.CreatedAt
}

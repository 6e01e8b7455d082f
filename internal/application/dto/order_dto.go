package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea solicitada (el precio se toma del catálogo).
type OrderLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders. Kind vacío = sale.
type CreateOrderRequest struct {
	Kind  string             `json:"kind"`
	Lines []OrderLineRequest `json:"lines"`
}

// TransitionOrderRequest body para PATCH /api/orders/:id/status.
type TransitionOrderRequest struct {
	Status string `json:"status"`
}

// OrderLineResponse línea con precio congelado.
type OrderLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de una orden.
type OrderResponse struct {
	ID        string              `json:"id"`
	OwnerID   string              `json:"owner_id"`
	Kind      string              `json:"kind"`
	Status    string              `json:"status"`
	Total     decimal.Decimal     `json:"total"`
	ShippedAt *time.Time          `json:"shipped_at,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Lines     []OrderLineResponse `json:"lines,omitempty"`
}

// OrderListResponse lista paginada de órdenes.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Kind      string `json:"kind"` // in | out
	Quantity  int64  `json:"quantity"`
}

// MovementResponse resultado de registrar un movimiento.
type MovementResponse struct {
	MovementID  string `json:"movement_id"`
	NewQuantity int64  `json:"new_quantity"`
}

// MovementDTO entrada del libro de movimientos.
type MovementDTO struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	AccountID string    `json:"account_id"`
	Kind      string    `json:"kind"`
	Quantity  int64     `json:"quantity"`
	Reference string    `json:"reference,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementListResponse historial paginado de un producto.
type MovementListResponse struct {
	Items []MovementDTO `json:"items"`
	Page  PageResponse  `json:"page"`
}

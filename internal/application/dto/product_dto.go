package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. La existencia inicia en 0.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	MinStock *int64          `json:"min_stock,omitempty"`
}

// UpdatePriceRequest body para PATCH /api/products/:id/price.
type UpdatePriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Cantidad  int64           `json:"cantidad"`
	MinStock  int64           `json:"min_stock"`
	LowStock  bool            `json:"low_stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

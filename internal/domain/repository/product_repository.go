package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// AdjustQuantity aplica delta de forma atómica y condicional: nunca deja la existencia negativa.
	// Devuelve la nueva existencia, domain.ErrInsufficientStock o domain.ErrNotFound.
	AdjustQuantity(ctx context.Context, id string, delta int64) (int64, error)
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error
	// ListBelowMinStock lista productos bajo su umbral; ownerID vacío = todos.
	ListBelowMinStock(ctx context.Context, ownerID string) ([]*entity.Product, error)
}

package repository

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// MovementRepository puerto del libro de movimientos. Solo agrega: no hay update ni delete.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.Movement, error)
}

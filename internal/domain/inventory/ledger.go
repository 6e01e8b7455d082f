package inventory

import (
	"fmt"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// Delta convierte un movimiento (tipo, cantidad) en la variación con signo de la existencia.
func Delta(kind string, quantity int64) (int64, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: la cantidad debe ser positiva", domain.ErrInvalidRequest)
	}
	switch kind {
	case entity.MovementIn:
		return quantity, nil
	case entity.MovementOut:
		return -quantity, nil
	}
	return 0, fmt.Errorf("%w: tipo de movimiento %q", domain.ErrInvalidRequest, kind)
}

// Apply calcula la nueva existencia. Una salida mayor a la existencia devuelve ErrInsufficientStock.
func Apply(current, delta int64) (int64, error) {
	next := current + delta
	if next < 0 {
		return current, domain.ErrInsufficientStock
	}
	return next, nil
}

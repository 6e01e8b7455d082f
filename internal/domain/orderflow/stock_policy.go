package orderflow

import (
	"fmt"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// StockPolicy define el sentido del movimiento que genera la finalización de cada tipo de orden.
// La reposición siempre ingresa mercancía; para ventas el sentido es configurable.
type StockPolicy struct {
	SaleCompletion string // in | out
}

// DefaultStockPolicy conserva el comportamiento histórico: toda finalización ingresa stock.
func DefaultStockPolicy() StockPolicy {
	return StockPolicy{SaleCompletion: entity.MovementIn}
}

// NewStockPolicy construye la política validando el sentido configurado para ventas.
func NewStockPolicy(saleCompletion string) (StockPolicy, error) {
	if saleCompletion == "" {
		return DefaultStockPolicy(), nil
	}
	if !entity.ValidMovementKind(saleCompletion) {
		return StockPolicy{}, fmt.Errorf("%w: efecto de finalización %q", domain.ErrInvalidRequest, saleCompletion)
	}
	return StockPolicy{SaleCompletion: saleCompletion}, nil
}

// CompletionMovement devuelve el tipo de movimiento a registrar por línea al finalizar la orden.
func (p StockPolicy) CompletionMovement(orderKind string) string {
	if orderKind == entity.OrderKindSale && p.SaleCompletion != "" {
		return p.SaleCompletion
	}
	return entity.MovementIn
}

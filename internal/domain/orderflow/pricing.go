package orderflow

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// LineRequest línea solicitada por el cliente (sin precio: se toma del catálogo).
type LineRequest struct {
	ProductID string
	Quantity  int64
}

// MergeLines valida las líneas y agrupa las repetidas por producto conservando el orden de llegada.
func MergeLines(lines []LineRequest) ([]LineRequest, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: la orden no tiene líneas", domain.ErrInvalidRequest)
	}
	index := make(map[string]int, len(lines))
	merged := make([]LineRequest, 0, len(lines))
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			return nil, fmt.Errorf("%w: línea inválida", domain.ErrInvalidRequest)
		}
		if i, ok := index[l.ProductID]; ok {
			if l.Quantity > math.MaxInt64-merged[i].Quantity {
				return nil, fmt.Errorf("%w: cantidad fuera de rango para %s", domain.ErrInvalidRequest, l.ProductID)
			}
			merged[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(merged)
		merged = append(merged, l)
	}
	return merged, nil
}

// PriceLine congela el precio vigente del producto en una línea y calcula su subtotal.
func PriceLine(orderID string, req LineRequest, product *entity.Product) *entity.OrderLine {
	return &entity.OrderLine{
		OrderID:   orderID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: product.Price,
		Subtotal:  product.Price.Mul(decimal.NewFromInt(req.Quantity)),
	}
}

// Total suma los subtotales de las líneas.
func Total(lines []*entity.OrderLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

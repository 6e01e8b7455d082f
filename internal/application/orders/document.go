package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// DeliveryNoteLine línea del comprobante con el nombre del producto resuelto.
type DeliveryNoteLine struct {
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// DeliveryNoteGenerator genera el comprobante imprimible de una orden.
type DeliveryNoteGenerator interface {
	GenerateDeliveryNote(ctx context.Context, order *entity.Order, lines []DeliveryNoteLine) ([]byte, error)
}

// DocumentUseCase arma el comprobante de una orden visible para quien invoca.
type DocumentUseCase struct {
	orders      *OrderUseCase
	productRepo repository.ProductRepository
	generator   DeliveryNoteGenerator
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(orders *OrderUseCase, productRepo repository.ProductRepository, generator DeliveryNoteGenerator) *DocumentUseCase {
	return &DocumentUseCase{orders: orders, productRepo: productRepo, generator: generator}
}

// DeliveryNote devuelve el PDF del comprobante. Los precios son los congelados en la orden.
func (uc *DocumentUseCase) DeliveryNote(ctx context.Context, caller entity.Caller, orderID string) ([]byte, error) {
	order, err := uc.orders.GetOrder(ctx, caller, orderID)
	if err != nil {
		return nil, err
	}
	lines := make([]DeliveryNoteLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		name := l.ProductID
		product, err := uc.productRepo.GetByID(ctx, l.ProductID)
		if err != nil {
			return nil, err
		}
		if product != nil {
			name = product.Name
		}
		lines = append(lines, DeliveryNoteLine{
			ProductName: name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return uc.generator.GenerateDeliveryNote(ctx, order, lines)
}

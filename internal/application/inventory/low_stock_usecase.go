package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// LowStockUseCase alerta de lectura: productos cuya existencia está por debajo de su mínimo.
type LowStockUseCase struct {
	productRepo repository.ProductRepository
}

// NewLowStockUseCase construye el caso de uso.
func NewLowStockUseCase(productRepo repository.ProductRepository) *LowStockUseCase {
	return &LowStockUseCase{productRepo: productRepo}
}

// List devuelve los productos bajo el umbral ordenados por mayor déficit primero.
// Un admin ve todo el catálogo; el resto solo sus productos.
func (uc *LowStockUseCase) List(ctx context.Context, caller entity.Caller) ([]*entity.Product, error) {
	ownerID := caller.AccountID
	if caller.IsAdmin() {
		ownerID = ""
	}
	products, err := uc.productRepo.ListBelowMinStock(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].MinStock-products[i].Cantidad > products[j].MinStock-products[j].Cantidad
	})
	return products, nil
}

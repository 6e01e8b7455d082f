package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. Fuera de una transacción cada llamada toma el lock del Store.
type ProductRepo struct {
	s    *Store
	inTx bool
}

// NewProductRepository construye el repositorio fuera de transacción.
func NewProductRepository(s *Store) *ProductRepo {
	return &ProductRepo{s: s}
}

func (r *ProductRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	defer r.lock()()
	if _, ok := r.s.products[product.ID]; ok {
		return domain.ErrInvalidRequest
	}
	r.s.products[product.ID] = copyProduct(product)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	defer r.lock()()
	if p, ok := r.s.products[id]; ok {
		return copyProduct(p), nil
	}
	return nil, nil
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) AdjustQuantity(_ context.Context, id string, delta int64) (int64, error) {
	defer r.lock()()
	p, ok := r.s.products[id]
	if !ok {
		return 0, domain.ErrNotFound
	}
	if p.Cantidad+delta < 0 {
		return p.Cantidad, domain.ErrInsufficientStock
	}
	p.Cantidad += delta
	return p.Cantidad, nil
}

func (r *ProductRepo) UpdatePrice(_ context.Context, id string, price decimal.Decimal) error {
	defer r.lock()()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Price = price
	return nil
}

func (r *ProductRepo) ListBelowMinStock(_ context.Context, ownerID string) ([]*entity.Product, error) {
	defer r.lock()()
	var list []*entity.Product
	for _, p := range r.s.products {
		if ownerID != "" && p.OwnerID != ownerID {
			continue
		}
		if p.LowStock() {
			list = append(list, copyProduct(p))
		}
	}
	return list, nil
}

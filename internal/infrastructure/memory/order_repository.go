package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes y líneas en memoria.
type OrderRepo struct {
	s    *Store
	inTx bool
}

// NewOrderRepository construye el repositorio fuera de transacción.
func NewOrderRepository(s *Store) *OrderRepo {
	return &OrderRepo{s: s}
}

func (r *OrderRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	defer r.lock()()
	if _, ok := r.s.orders[order.ID]; ok {
		return domain.ErrInvalidRequest
	}
	r.s.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *OrderRepo) CreateLine(_ context.Context, line *entity.OrderLine) error {
	defer r.lock()()
	if _, ok := r.s.orders[line.OrderID]; !ok {
		return domain.ErrNotFound
	}
	l := *line
	r.s.lines[line.OrderID] = append(r.s.lines[line.OrderID], &l)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	defer r.lock()()
	if o, ok := r.s.orders[id]; ok {
		return copyOrder(o), nil
	}
	return nil, nil
}

func (r *OrderRepo) GetLines(_ context.Context, orderID string) ([]*entity.OrderLine, error) {
	defer r.lock()()
	out := make([]*entity.OrderLine, 0, len(r.s.lines[orderID]))
	for _, l := range r.s.lines[orderID] {
		c := *l
		out = append(out, &c)
	}
	return out, nil
}

func (r *OrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	defer r.lock()()
	var list []*entity.Order
	for _, o := range r.s.orders {
		if filter.OwnerID != "" && o.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		list = append(list, copyOrder(o))
	}
	sortOrdersByCreatedDesc(list)
	return page(list, filter.Limit, filter.Offset), nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id, from, to string, at time.Time) (bool, error) {
	defer r.lock()()
	o, ok := r.s.orders[id]
	if !ok || o.Status != from {
		return false, nil
	}
	o.Status = to
	o.UpdatedAt = at
	if to == entity.OrderStatusShipped {
		t := at
		o.ShippedAt = &t
	}
	return true, nil
}

func (r *OrderRepo) DeletePending(_ context.Context, id string) (bool, error) {
	defer r.lock()()
	o, ok := r.s.orders[id]
	if !ok || o.Status != entity.OrderStatusPending {
		return false, nil
	}
	delete(r.s.orders, id)
	delete(r.s.lines, id)
	return true, nil
}

func (r *OrderRepo) ListShippedBefore(_ context.Context, cutoff time.Time, limit int) ([]*entity.Order, error) {
	defer r.lock()()
	var list []*entity.Order
	for _, o := range r.s.orders {
		if o.Status == entity.OrderStatusShipped && o.AgeReference().Before(cutoff) {
			list = append(list, copyOrder(o))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].AgeReference().Before(list[j].AgeReference())
	})
	return page(list, limit, 0), nil
}

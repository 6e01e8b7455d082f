package memory

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo libro de movimientos en memoria (solo agrega).
type MovementRepo struct {
	s    *Store
	inTx bool
}

// NewMovementRepository construye el repositorio fuera de transacción.
func NewMovementRepository(s *Store) *MovementRepo {
	return &MovementRepo{s: s}
}

func (r *MovementRepo) lock() func() {
	if r.inTx {
		return func() {}
	}
	r.s.mu.Lock()
	return r.s.mu.Unlock
}

func (r *MovementRepo) Create(_ context.Context, movement *entity.Movement) error {
	defer r.lock()()
	if err := r.s.failMovement; err != nil {
		r.s.failMovement = nil
		return err
	}
	m := *movement
	r.s.movements = append(r.s.movements, &m)
	return nil
}

func (r *MovementRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.Movement, error) {
	defer r.lock()()
	var list []*entity.Movement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if m := r.s.movements[i]; m.ProductID == productID {
			c := *m
			list = append(list, &c)
		}
	}
	return page(list, limit, offset), nil
}

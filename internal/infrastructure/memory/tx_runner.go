package memory

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta fn con acceso exclusivo al Store; revierte todo si fn falla o ctx se cancela.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el almacén.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// Run ejecuta fn como una unidad atómica.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	orderRepo repository.OrderRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	err := fn(
		&ProductRepo{s: r.s, inTx: true},
		&MovementRepo{s: r.s, inTx: true},
		&OrderRepo{s: r.s, inTx: true},
	)
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

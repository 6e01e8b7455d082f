package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// OrderFilter filtros para listar órdenes. OwnerID o Status vacíos no filtran.
type OrderFilter struct {
	OwnerID string
	Status  string
	Limit   int
	Offset  int
}

// OrderRepository define el puerto de persistencia para órdenes y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateLine(ctx context.Context, line *entity.OrderLine) error
	// GetByID devuelve la cabecera sin líneas; (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	// UpdateStatus cambia el estado solo si el actual es from (compare-and-set).
	// Devuelve false si otra operación cambió el estado antes.
	UpdateStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error)
	// DeletePending elimina la orden y sus líneas solo si sigue en pending.
	DeletePending(ctx context.Context, id string) (bool, error)
	// ListShippedBefore órdenes en shipped cuya fecha de envío (o creación) es anterior a cutoff.
	ListShippedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*entity.Order, error)
}

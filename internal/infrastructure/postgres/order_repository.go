package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, owner_id, kind, status, total, shipped_at, created_at, updated_at`

// OrderRepo órdenes y líneas sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera de la orden.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		o.ID, o.OwnerID, o.Kind, o.Status, o.Total, o.ShippedAt, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de la orden.
func (r *OrderRepo) CreateLine(ctx context.Context, l *entity.OrderLine) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_lines (id, order_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.OrderID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una orden.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	if !validID(id) {
		return nil, nil
	}
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// GetLines obtiene las líneas de una orden.
func (r *OrderRepo) GetLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal
		FROM order_lines WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// List lista órdenes por dueño y/o estado con paginación.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1 = 1`
	var args []any
	pos := 1
	if f.OwnerID != "" {
		query += fmt.Sprintf(" AND owner_id = $%d", pos)
		args = append(args, f.OwnerID)
		pos++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, f.Status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)
	return r.list(ctx, query, args...)
}

// UpdateStatus compare-and-set del estado; rows affected = 0 indica que otro proceso ganó.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, from, to string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders
		SET status = $3,
		    updated_at = $4,
		    shipped_at = CASE WHEN $3 = 'shipped' THEN $4 ELSE shipped_at END
		WHERE id = $1 AND status = $2`, id, from, to, at)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// DeletePending elimina la orden (y por cascada sus líneas) si sigue en pending.
func (r *OrderRepo) DeletePending(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ListShippedBefore órdenes enviadas antes de cutoff, más antiguas primero.
func (r *OrderRepo) ListShippedBefore(ctx context.Context, cutoff time.Time, limit int) ([]*entity.Order, error) {
	return r.list(ctx, `
		SELECT `+orderColumns+` FROM orders
		WHERE status = 'shipped' AND COALESCE(shipped_at, created_at) < $1
		ORDER BY COALESCE(shipped_at, created_at)
		LIMIT $2`, cutoff, limit)
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(&o.ID, &o.OwnerID, &o.Kind, &o.Status, &o.Total, &o.ShippedAt, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

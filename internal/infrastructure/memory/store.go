// Package memory implementa los puertos de persistencia en memoria.
// Un único mutex serializa las transacciones, equivalente al bloqueo de fila de PostgreSQL
// para los escenarios de concurrencia; Run restaura una copia del estado si fn falla.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// Store estado compartido de los repositorios en memoria.
type Store struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.Movement
	orders    map[string]*entity.Order
	lines     map[string][]*entity.OrderLine

	failMovement error
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products: map[string]*entity.Product{},
		orders:   map[string]*entity.Order{},
		lines:    map[string][]*entity.OrderLine{},
	}
}

type snapshot struct {
	products  map[string]*entity.Product
	movements []*entity.Movement
	orders    map[string]*entity.Order
	lines     map[string][]*entity.OrderLine
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		products:  make(map[string]*entity.Product, len(s.products)),
		movements: append([]*entity.Movement(nil), s.movements...),
		orders:    make(map[string]*entity.Order, len(s.orders)),
		lines:     make(map[string][]*entity.OrderLine, len(s.lines)),
	}
	for id, p := range s.products {
		snap.products[id] = copyProduct(p)
	}
	for id, o := range s.orders {
		snap.orders[id] = copyOrder(o)
	}
	for id, ls := range s.lines {
		snap.lines[id] = append([]*entity.OrderLine(nil), ls...)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.products = snap.products
	s.movements = snap.movements
	s.orders = snap.orders
	s.lines = snap.lines
}

// SeedProduct inserta un producto con su existencia inicial sin pasar por el libro (solo pruebas).
func (s *Store) SeedProduct(p *entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = copyProduct(p)
}

// Product devuelve una copia del producto o nil.
func (s *Store) Product(id string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[id]; ok {
		return copyProduct(p)
	}
	return nil
}

// Movements devuelve una copia del libro completo en orden de inserción.
func (s *Store) Movements() []entity.Movement {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Movement, 0, len(s.movements))
	for _, m := range s.movements {
		out = append(out, *m)
	}
	return out
}

// SetShippedAt fija la fecha de envío de una orden (solo pruebas).
func (s *Store) SetShippedAt(orderID string, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o, ok := s.orders[orderID]; ok {
		o.ShippedAt = &at
	}
}

// FailNextMovement hace que la próxima inserción en el libro falle con err.
func (s *Store) FailNextMovement(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failMovement = err
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func copyOrder(o *entity.Order) *entity.Order {
	c := *o
	if o.ShippedAt != nil {
		t := *o.ShippedAt
		c.ShippedAt = &t
	}
	c.Lines = nil
	return &c
}

func sortOrdersByCreatedDesc(list []*entity.Order) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

// page aplica LIMIT/OFFSET como PostgreSQL: limit 0 no devuelve filas.
func page[T any](list []T, limit, offset int) []T {
	if limit <= 0 || offset >= len(list) {
		return []T{}
	}
	if offset < 0 {
		offset = 0
	}
	list = list[offset:]
	if limit < len(list) {
		list = list[:limit]
	}
	return list
}

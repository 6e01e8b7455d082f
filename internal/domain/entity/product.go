package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStock umbral por defecto para la alerta de stock bajo.
const DefaultMinStock = 5

// Product representa un producto del catálogo con su existencia actual.
// Cantidad solo cambia a través del libro de movimientos.
type Product struct {
	ID        string
	OwnerID   string // cuenta que creó el producto
	Name      string
	Price     decimal.Decimal // precio de venta vigente
	Cantidad  int64           // existencia actual, nunca negativa
	MinStock  int64           // solo se usa como alerta de lectura
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LowStock indica si la existencia está por debajo del umbral mínimo.
func (p *Product) LowStock() bool {
	return p.Cantidad < p.MinStock
}

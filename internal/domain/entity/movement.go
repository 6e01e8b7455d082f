package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementIn  = "in"  // entrada
	MovementOut = "out" // salida
)

// Movement registro inmutable del libro de inventario (entrada o salida).
type Movement struct {
	ID        string
	ProductID string
	AccountID string // cuenta a la que se atribuye el movimiento
	Kind      string // in, out
	Quantity  int64  // siempre positivo; el signo lo da Kind
	Reference string // ID de la orden cuando proviene de una finalización
	CreatedAt time.Time
}

// ValidMovementKind indica si el tipo de movimiento es reconocido.
func ValidMovementKind(kind string) bool {
	return kind == MovementIn || kind == MovementOut
}

// SignedQuantity devuelve la variación que el movimiento produce en la existencia.
func (m *Movement) SignedQuantity() int64 {
	if m.Kind == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}

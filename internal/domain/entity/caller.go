package entity

// Roles reconocidos en el token del proveedor de identidad.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// SystemAccountID identifica las acciones desatendidas (barrido de órdenes).
const SystemAccountID = "system"

// Caller identidad autenticada de quien invoca una operación del núcleo.
type Caller struct {
	AccountID string
	Role      string
}

// SystemCaller identidad elevada usada por procesos internos programados.
func SystemCaller() Caller {
	return Caller{AccountID: SystemAccountID, Role: RoleAdmin}
}

// IsAdmin indica si la identidad tiene privilegios elevados.
func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

// CanActOn indica si la identidad puede operar sobre un recurso del dueño indicado.
func (c Caller) CanActOn(ownerID string) bool {
	return c.IsAdmin() || (c.AccountID != "" && c.AccountID == ownerID)
}

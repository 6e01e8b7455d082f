package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/infrastructure/memory"
)

const (
	ownerID = "acc-owner"
	otherID = "acc-other"
)

var (
	owner = entity.Caller{AccountID: ownerID, Role: entity.RoleCustomer}
	other = entity.Caller{AccountID: otherID, Role: entity.RoleCustomer}
	admin = entity.Caller{AccountID: "acc-admin", Role: entity.RoleAdmin}
)

func newFixture(t *testing.T, products ...*entity.Product) (*memory.Store, *inventory.RegisterMovementUseCase) {
	t.Helper()
	store := memory.NewStore()
	for _, p := range products {
		store.SeedProduct(p)
	}
	uc := inventory.NewRegisterMovementUseCase(
		memory.NewTxRunner(store),
		memory.NewProductRepository(store),
		memory.NewMovementRepository(store),
	)
	return store, uc
}

func product(id string, qty int64) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID:        id,
		OwnerID:   ownerID,
		Name:      "Producto " + id,
		Price:     decimal.NewFromInt(5),
		Cantidad:  qty,
		MinStock:  entity.DefaultMinStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Salida de toda la existencia y luego una salida más: la segunda falla y la cantidad queda en 0.
func TestRegisterMovement_SalidaHastaCero(t *testing.T) {
	store, uc := newFixture(t, product("p1", 10))
	ctx := context.Background()

	res, err := uc.RegisterMovement(ctx, owner, inventory.MovementCommand{ProductID: "p1", Kind: entity.MovementOut, Quantity: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.NewQuantity)

	_, err = uc.RegisterMovement(ctx, owner, inventory.MovementCommand{ProductID: "p1", Kind: entity.MovementOut, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.EqualValues(t, 0, store.Product("p1").Cantidad)
	assert.Len(t, store.Movements(), 1)
}

func TestRegisterMovement_EntradaAtribuyeCuenta(t *testing.T) {
	store, uc := newFixture(t, product("p1", 0))

	res, err := uc.RegisterMovement(context.Background(), owner, inventory.MovementCommand{ProductID: "p1", Kind: entity.MovementIn, Quantity: 4})
	require.NoError(t, err)
	assert.EqualValues(t, 4, res.NewQuantity)

	movs := store.Movements()
	require.Len(t, movs, 1)
	assert.Equal(t, ownerID, movs[0].AccountID)
	assert.Equal(t, entity.MovementIn, movs[0].Kind)
	assert.EqualValues(t, 4, movs[0].Quantity)
	assert.NotEmpty(t, movs[0].ID)
}

// Dos salidas concurrentes de 6 sobre 10: exactamente una falla y la cantidad nunca es negativa.
func TestRegisterMovement_SalidasConcurrentes(t *testing.T) {
	for i := 0; i < 20; i++ {
		store, uc := newFixture(t, product("p1", 10))

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for g := 0; g < 2; g++ {
			wg.Add(1)
			go func(g int) {
				defer wg.Done()
				_, errs[g] = uc.RegisterMovement(context.Background(), owner, inventory.MovementCommand{ProductID: "p1", Kind: entity.MovementOut, Quantity: 6})
			}(g)
		}
		wg.Wait()

		failed := 0
		for _, err := range errs {
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrInsufficientStock)
				failed++
			}
		}
		assert.Equal(t, 1, failed)
		assert.EqualValues(t, 4, store.Product("p1").Cantidad)
		assert.Len(t, store.Movements(), 1)
	}
}

// Si falla la inserción en el libro, el ajuste de existencia se revierte.
func TestRegisterMovement_FalloEnLibroRevierte(t *testing.T) {
	store, uc := newFixture(t, product("p1", 10))
	boom := errors.New("disco lleno")
	store.FailNextMovement(boom)

	_, err := uc.RegisterMovement(context.Background(), owner, inventory.MovementCommand{ProductID: "p1", Kind: entity.MovementOut, Quantity: 3})
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 10, store.Product("p1").Cantidad)
	assert.Empty(t, store.Movements())
}

func TestRegisterMovement_ContextoCancelado(t *testing.T) {
	store, uc := newFixture(t, product("p1", 10))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := uc.RegisterMovement(ctx, owner, inventory.MovementCommand{ProductID: "p1", Kind: entity.MovementIn, Quantity: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.EqualValues(t, 10, store.Product("p1").Cantidad)
}

func TestRegisterMovement_Errores(t *testing.T) {
	tests := []struct {
		name   string
		caller entity.Caller
		cmd    inventory.MovementCommand
		want   error
	}{
		{"cantidad cero", owner, inventory.MovementCommand{ProductID: "p1", Kind: entity.MovementIn, Quantity: 0}, domain.ErrInvalidRequest},
		{"cantidad negativa", owner, inventory.MovementCommand{ProductID: "p1", Kind: entity.MovementOut, Quantity: -2}, domain.ErrInvalidRequest},
		{"tipo desconocido", owner, inventory.MovementCommand{ProductID: "p1", Kind: "transfer", Quantity: 1}, domain.ErrInvalidRequest},
		{"sin producto", owner, inventory.MovementCommand{Kind: entity.MovementIn, Quantity: 1}, domain.ErrInvalidRequest},
		{"producto inexistente", owner, inventory.MovementCommand{ProductID: "nope", Kind: entity.MovementIn, Quantity: 1}, domain.ErrNotFound},
		{"otra cuenta", other, inventory.MovementCommand{ProductID: "p1", Kind: entity.MovementIn, Quantity: 1}, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, uc := newFixture(t, product("p1", 10))
			_, err := uc.RegisterMovement(context.Background(), tt.caller, tt.cmd)
			assert.ErrorIs(t, err, tt.want)
			assert.EqualValues(t, 10, store.Product("p1").Cantidad)
			assert.Empty(t, store.Movements())
		})
	}
}

func TestRegisterMovement_AdminSobreProductoAjeno(t *testing.T) {
	store, uc := newFixture(t, product("p1", 10))

	res, err := uc.RegisterMovement(context.Background(), admin, inventory.MovementCommand{ProductID: "p1", Kind: entity.MovementOut, Quantity: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 8, res.NewQuantity)
	assert.Equal(t, "acc-admin", store.Movements()[0].AccountID)
}

func TestRegisterMovementFromRequest(t *testing.T) {
	_, uc := newFixture(t, product("p1", 1))

	out, err := uc.RegisterMovementFromRequest(context.Background(), owner, dto.RegisterMovementRequest{ProductID: "p1", Kind: "in", Quantity: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, out.NewQuantity)
	assert.NotEmpty(t, out.MovementID)
}

func TestListMovements(t *testing.T) {
	_, uc := newFixture(t, product("p1", 0))
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		_, err := uc.RegisterMovement(ctx, owner, inventory.MovementCommand{ProductID: "p1", Kind: entity.MovementIn, Quantity: int64(i)})
		require.NoError(t, err)
	}

	list, err := uc.ListMovements(ctx, owner, "p1", 2, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = uc.ListMovements(ctx, other, "p1", 10, 0)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ListMovements(ctx, owner, "nope", 10, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLowStock(t *testing.T) {
	store := memory.NewStore()
	a := product("a", 1) // déficit 4
	b := product("b", 4) // déficit 1
	c := product("c", 9)
	d := product("d", 0)
	d.OwnerID = otherID
	for _, p := range []*entity.Product{a, b, c, d} {
		store.SeedProduct(p)
	}
	uc := inventory.NewLowStockUseCase(memory.NewProductRepository(store))
	ctx := context.Background()

	mine, err := uc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "a", mine[0].ID)
	assert.Equal(t, "b", mine[1].ID)

	all, err := uc.List(ctx, admin)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "d", all[0].ID)
}

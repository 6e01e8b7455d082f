package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/inventory"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// RegisterMovementUseCase único punto que modifica la existencia de un producto.
// Cada cambio de cantidad va acompañado de su fila en el libro, en la misma transacción.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
	}
}

// MovementCommand datos de un movimiento a registrar.
// AccountID es la cuenta a la que se atribuye; vacío = la cuenta de quien invoca.
type MovementCommand struct {
	ProductID string
	Kind      string
	Quantity  int64
	AccountID string
	Reference string
}

// MovementResult movimiento creado y existencia resultante.
type MovementResult struct {
	Movement    *entity.Movement
	NewQuantity int64
}

// RegisterMovement valida, abre una transacción y registra el movimiento con su ajuste de existencia.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, caller entity.Caller, cmd MovementCommand) (*MovementResult, error) {
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}
	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		_ repository.OrderRepository,
	) error {
		var err error
		result, err = uc.RegisterInTx(ctx, productRepo, movRepo, caller, cmd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RegisterInTx ejecuta el movimiento con los repositorios de una transacción ya abierta por el caller.
// Bloquea la fila del producto (SELECT FOR UPDATE) y aplica el delta con una actualización condicional.
func (uc *RegisterMovementUseCase) RegisterInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	caller entity.Caller,
	cmd MovementCommand,
) (*MovementResult, error) {
	delta, err := inventory.Delta(cmd.Kind, cmd.Quantity)
	if err != nil {
		return nil, err
	}
	product, err := productRepo.GetForUpdate(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !caller.CanActOn(product.OwnerID) {
		return nil, domain.ErrForbidden
	}
	if _, err := inventory.Apply(product.Cantidad, delta); err != nil {
		return nil, err
	}
	newQty, err := productRepo.AdjustQuantity(ctx, product.ID, delta)
	if err != nil {
		return nil, err
	}

	accountID := cmd.AccountID
	if accountID == "" {
		accountID = caller.AccountID
	}
	mov := &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		AccountID: accountID,
		Kind:      cmd.Kind,
		Quantity:  cmd.Quantity,
		Reference: cmd.Reference,
		CreatedAt: time.Now(),
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return &MovementResult{Movement: mov, NewQuantity: newQty}, nil
}

// ListMovements historial del libro para un producto, más reciente primero.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, caller entity.Caller, productID string, limit, offset int) ([]*entity.Movement, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !caller.CanActOn(product.OwnerID) {
		return nil, domain.ErrForbidden
	}
	return uc.movRepo.ListByProduct(ctx, productID, limit, offset)
}

func validateCommand(cmd MovementCommand) error {
	if cmd.ProductID == "" {
		return fmt.Errorf("%w: product_id requerido", domain.ErrInvalidRequest)
	}
	_, err := inventory.Delta(cmd.Kind, cmd.Quantity)
	return err
}

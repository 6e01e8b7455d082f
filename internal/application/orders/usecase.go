package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/inventory"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/orderflow"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// OrderUseCase crea órdenes y aplica la máquina de estados con sus efectos en el libro de inventario.
type OrderUseCase struct {
	txRunner  inventory.TxRunner
	orderRepo repository.OrderRepository
	movements *inventory.RegisterMovementUseCase
	policy    orderflow.StockPolicy
	publisher EventPublisher
	log       zerolog.Logger
}

// NewOrderUseCase construye el caso de uso. publisher nil = sin publicación de eventos.
func NewOrderUseCase(
	txRunner inventory.TxRunner,
	orderRepo repository.OrderRepository,
	movements *inventory.RegisterMovementUseCase,
	policy orderflow.StockPolicy,
	publisher EventPublisher,
	log zerolog.Logger,
) *OrderUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &OrderUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		movements: movements,
		policy:    policy,
		publisher: publisher,
		log:       log,
	}
}

// CreateOrder congela el precio vigente de cada producto, calcula subtotales y total,
// y guarda cabecera y líneas en una sola transacción. No toca el inventario.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, caller entity.Caller, in dto.CreateOrderRequest) (*entity.Order, error) {
	kind := in.Kind
	if kind == "" {
		kind = entity.OrderKindSale
	}
	if !entity.ValidOrderKind(kind) {
		return nil, fmt.Errorf("%w: tipo de orden %q", domain.ErrInvalidRequest, kind)
	}
	reqs := make([]orderflow.LineRequest, 0, len(in.Lines))
	for _, l := range in.Lines {
		reqs = append(reqs, orderflow.LineRequest{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	merged, err := orderflow.MergeLines(reqs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		OwnerID:   caller.AccountID,
		Kind:      kind,
		Status:    entity.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		_ repository.MovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		lines := make([]*entity.OrderLine, 0, len(merged))
		for _, req := range merged {
			product, err := productRepo.GetByID(ctx, req.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, req.ProductID)
			}
			line := orderflow.PriceLine(order.ID, req, product)
			line.ID = uuid.New().String()
			lines = append(lines, line)
		}
		order.Lines = lines
		order.Total = orderflow.Total(lines)

		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		for _, line := range lines {
			if err := orderRepo.CreateLine(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, caller, order, EventOrderCreated, "", order.Status)
	return order, nil
}

// GetOrder devuelve la orden con sus líneas si quien invoca es el dueño o admin.
func (uc *OrderUseCase) GetOrder(ctx context.Context, caller entity.Caller, id string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !caller.CanActOn(order.OwnerID) {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.orderRepo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return order, nil
}

// ListOrders lista las órdenes propias (todas si es admin), opcionalmente filtradas por estado.
func (uc *OrderUseCase) ListOrders(ctx context.Context, caller entity.Caller, status string, limit, offset int) ([]*entity.Order, error) {
	if status != "" && !entity.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidRequest, status)
	}
	filter := repository.OrderFilter{Status: status, Limit: limit, Offset: offset}
	if !caller.IsAdmin() {
		filter.OwnerID = caller.AccountID
	}
	return uc.orderRepo.List(ctx, filter)
}

// Transition lleva la orden al estado indicado si el grafo lo permite.
// Al entrar en completed registra un movimiento por línea en la misma transacción;
// el cambio de estado es compare-and-set, así que una segunda finalización no duplica movimientos.
func (uc *OrderUseCase) Transition(ctx context.Context, caller entity.Caller, orderID, to string) (*entity.Order, error) {
	var (
		order *entity.Order
		from  string
	)
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		var err error
		order, err = orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !caller.CanActOn(order.OwnerID) {
			return domain.ErrForbidden
		}
		from = order.Status
		if err := orderflow.CanTransition(order.Kind, from, to); err != nil {
			return err
		}

		now := time.Now()
		ok, err := orderRepo.UpdateStatus(ctx, order.ID, from, to, now)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: la orden cambió de estado concurrentemente", domain.ErrInvalidTransition)
		}
		order.Status = to
		order.UpdatedAt = now
		if to == entity.OrderStatusShipped {
			order.ShippedAt = &now
		}

		lines, err := orderRepo.GetLines(ctx, order.ID)
		if err != nil {
			return err
		}
		order.Lines = lines
		if to != entity.OrderStatusCompleted {
			return nil
		}
		kind := uc.policy.CompletionMovement(order.Kind)
		for _, line := range lines {
			_, err := uc.movements.RegisterInTx(ctx, productRepo, movRepo, entity.SystemCaller(), inventory.MovementCommand{
				ProductID: line.ProductID,
				Kind:      kind,
				Quantity:  line.Quantity,
				AccountID: order.OwnerID,
				Reference: order.ID,
			})
			if err != nil {
				return fmt.Errorf("finalizar línea %s: %w", line.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, caller, order, EventOrderStatusChanged, from, to)
	return order, nil
}

// DeleteOrder elimina físicamente una orden, solo mientras está en pending.
func (uc *OrderUseCase) DeleteOrder(ctx context.Context, caller entity.Caller, orderID string) error {
	var order *entity.Order
	err := uc.txRunner.Run(ctx, func(
		_ repository.ProductRepository,
		_ repository.MovementRepository,
		orderRepo repository.OrderRepository,
	) error {
		var err error
		order, err = orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !caller.CanActOn(order.OwnerID) {
			return domain.ErrForbidden
		}
		if order.Status != entity.OrderStatusPending {
			return fmt.Errorf("%w: la orden está en %s", domain.ErrInvalidState, order.Status)
		}
		deleted, err := orderRepo.DeletePending(ctx, orderID)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("%w: la orden ya no está en pending", domain.ErrInvalidState)
		}
		return nil
	})
	if err != nil {
		return err
	}
	uc.publish(ctx, caller, order, EventOrderDeleted, order.Status, "")
	return nil
}

func (uc *OrderUseCase) publish(ctx context.Context, caller entity.Caller, order *entity.Order, eventType, from, to string) {
	event := OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		OwnerID:    order.OwnerID,
		Kind:       order.Kind,
		FromStatus: from,
		ToStatus:   to,
		Total:      order.Total,
		ActorID:    caller.AccountID,
		OccurredAt: time.Now(),
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.log.Warn().Err(err).
			Str("order_id", order.ID).
			Str("event", eventType).
			Msg("no se pudo publicar el evento de orden")
	}
}

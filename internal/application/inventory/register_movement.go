package inventory

import (
	"context"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, caller entity.Caller, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	res, err := uc.RegisterMovement(ctx, caller, MovementCommand{
		ProductID: in.ProductID,
		Kind:      in.Kind,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return nil, err
	}
	return &dto.MovementResponse{MovementID: res.Movement.ID, NewQuantity: res.NewQuantity}, nil
}

// ToMovementDTO convierte una entrada del libro a su representación de salida.
func ToMovementDTO(m *entity.Movement) dto.MovementDTO {
	return dto.MovementDTO{
		ID:        m.ID,
		ProductID: m.ProductID,
		AccountID: m.AccountID,
		Kind:      m.Kind,
		Quantity:  m.Quantity,
		Reference: m.Reference,
		CreatedAt: m.CreatedAt,
	}
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/domain"
	"github.com/jhoicas/bodega-api/internal/domain/entity"
	"github.com/jhoicas/bodega-api/internal/domain/repository"
)

// ProductUseCase glue mínimo del catálogo. La existencia solo cambia vía movimientos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto a nombre de quien invoca. Cantidad inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, caller entity.Caller, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: nombre y precio no negativo requeridos", domain.ErrInvalidRequest)
	}
	minStock := int64(entity.DefaultMinStock)
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, fmt.Errorf("%w: min_stock negativo", domain.ErrInvalidRequest)
		}
		minStock = *in.MinStock
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		OwnerID:   caller.AccountID,
		Name:      name,
		Price:     in.Price,
		Cantidad:  0,
		MinStock:  minStock,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto visible para quien invoca.
func (uc *ProductUseCase) GetByID(ctx context.Context, caller entity.Caller, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !caller.CanActOn(product.OwnerID) {
		return nil, domain.ErrForbidden
	}
	return ToProductResponse(product), nil
}

// UpdatePrice cambia el precio vigente. Las líneas de órdenes ya creadas conservan su precio.
func (uc *ProductUseCase) UpdatePrice(ctx context.Context, caller entity.Caller, id string, price decimal.Decimal) (*dto.ProductResponse, error) {
	if price.LessThan(decimal.Zero) {
		return nil, fmt.Errorf("%w: precio negativo", domain.ErrInvalidRequest)
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !caller.CanActOn(product.OwnerID) {
		return nil, domain.ErrForbidden
	}
	if err := uc.repo.UpdatePrice(ctx, id, price); err != nil {
		return nil, err
	}
	product.Price = price
	product.UpdatedAt = time.Now()
	return ToProductResponse(product), nil
}

// ToProductResponse convierte la entidad a su salida, con la bandera de stock bajo.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Price:     p.Price,
		Cantidad:  p.Cantidad,
		MinStock:  p.MinStock,
		LowStock:  p.LowStock(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

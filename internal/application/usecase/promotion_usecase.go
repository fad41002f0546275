package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/domain"
	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/promo"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

// PromotionUseCase casos de uso CRUD para promociones y aplicación de descuentos.
type PromotionUseCase struct {
	repo repository.PromotionRepository
}

// NewPromotionUseCase construye el caso de uso.
func NewPromotionUseCase(repo repository.PromotionRepository) *PromotionUseCase {
	return &PromotionUseCase{repo: repo}
}

// Create crea una promoción para la sucursal activa.
func (uc *PromotionUseCase) Create(ctx context.Context, branchID string, in dto.CreatePromotionRequest) (*dto.PromotionResponse, error) {
	if in.Name == "" || in.ValidFrom.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !in.DiscountPct.GreaterThan(decimal.Zero) || in.DiscountPct.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}
	if !in.ValidUntil.IsZero() && in.ValidUntil.Before(in.ValidFrom) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	promotion := &entity.Promotion{
		ID:          uuid.New().String(),
		BranchID:    branchID,
		Name:        in.Name,
		DiscountPct: in.DiscountPct,
		ValidFrom:   in.ValidFrom,
		ValidUntil:  in.ValidUntil,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, promotion); err != nil {
		return nil, err
	}
	return toPromotionResponse(promotion), nil
}

// GetByID obtiene una promoción de la sucursal activa.
func (uc *PromotionUseCase) GetByID(ctx context.Context, id, branchID string) (*dto.PromotionResponse, error) {
	promotion, err := uc.getOwned(ctx, id, branchID)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, nil
	}
	return toPromotionResponse(promotion), nil
}

// List lista promociones de la sucursal con paginación.
func (uc *PromotionUseCase) List(ctx context.Context, branchID string, limit, offset int) (*dto.PromotionListResponse, error) {
	list, err := uc.repo.ListByBranch(ctx, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PromotionResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPromotionResponse(p))
	}
	return &dto.PromotionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza una promoción de la sucursal activa.
func (uc *PromotionUseCase) Update(ctx context.Context, id, branchID string, in dto.UpdatePromotionRequest) (*dto.PromotionResponse, error) {
	promotion, err := uc.getOwned(ctx, id, branchID)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, nil
	}
	if in.Name != nil {
		promotion.Name = *in.Name
	}
	if in.DiscountPct != nil {
		if !in.DiscountPct.GreaterThan(decimal.Zero) || in.DiscountPct.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.ErrInvalidInput
		}
		promotion.DiscountPct = *in.DiscountPct
	}
	if in.ValidFrom != nil {
		promotion.ValidFrom = *in.ValidFrom
	}
	if in.ValidUntil != nil {
		promotion.ValidUntil = *in.ValidUntil
	}
	if in.Active != nil {
		promotion.Active = *in.Active
	}
	promotion.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, promotion); err != nil {
		return nil, err
	}
	return toPromotionResponse(promotion), nil
}

// Delete elimina una promoción de la sucursal activa.
func (uc *PromotionUseCase) Delete(ctx context.Context, id, branchID string) error {
	promotion, err := uc.getOwned(ctx, id, branchID)
	if err != nil {
		return err
	}
	if promotion == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// Apply calcula el descuento de la promoción sobre un total. Falla con
// ErrPromotionInactive si la promoción no está vigente.
func (uc *PromotionUseCase) Apply(ctx context.Context, id, branchID string, in dto.ApplyPromotionRequest) (*dto.ApplyPromotionResponse, error) {
	if !in.Total.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	promotion, err := uc.getOwned(ctx, id, branchID)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, domain.ErrNotFound
	}
	if !promotion.ValidAt(time.Now()) {
		return nil, domain.ErrPromotionInactive
	}

	discount := promo.Discount(in.Total, promotion.DiscountPct)
	return &dto.ApplyPromotionResponse{
		PromotionID: promotion.ID,
		Total:       in.Total,
		Discount:    discount,
		FinalTotal:  in.Total.Sub(discount),
	}, nil
}

// getOwned devuelve la promoción si pertenece a la sucursal (o es global).
func (uc *PromotionUseCase) getOwned(ctx context.Context, id, branchID string) (*entity.Promotion, error) {
	promotion, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, nil
	}
	if promotion.BranchID != "" && promotion.BranchID != branchID {
		return nil, domain.ErrBranchMismatch
	}
	return promotion, nil
}

func toPromotionResponse(p *entity.Promotion) *dto.PromotionResponse {
	if p == nil {
		return nil
	}
	return &dto.PromotionResponse{
		ID:          p.ID,
		BranchID:    p.BranchID,
		Name:        p.Name,
		DiscountPct: p.DiscountPct,
		ValidFrom:   p.ValidFrom,
		ValidUntil:  p.ValidUntil,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

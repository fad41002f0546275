package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/domain"
	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de
// existencias y auditoría. Garantiza que el ajuste y su rastro se confirman juntos.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		auditRepo repository.AuditRepository,
	) error) error
}

// AdjustStockUseCase repone o descuenta existencias de forma transaccional
// con bloqueo de fila, manteniendo el invariante de cantidad no negativa.
type AdjustStockUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
	stockRepo    repository.StockRepository
}

// NewAdjustStockUseCase construye el caso de uso de ajustes.
func NewAdjustStockUseCase(txRunner TxRunner, materialRepo repository.MaterialRepository, stockRepo repository.StockRepository) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, materialRepo: materialRepo, stockRepo: stockRepo}
}

// Adjust aplica un delta (positivo repone, negativo descuenta) a la existencia
// del material en la sucursal. Un delta que dejaría la cantidad negativa falla
// con ErrInsufficientStock y no escribe nada.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, branchID, userID string, in dto.AdjustStockRequest) (*dto.StockResponse, error) {
	if branchID == "" || in.MaterialID == "" || in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}

	material, err := uc.materialRepo.GetByID(ctx, in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var result *entity.Stock

	err = uc.txRunner.RunStock(ctx, func(
		stockRepo repository.StockRepository,
		auditRepo repository.AuditRepository,
	) error {
		stock, err := stockRepo.GetForUpdate(ctx, branchID, in.MaterialID)
		if err != nil {
			return err
		}
		if stock == nil {
			// Primera reposición del material en la sucursal.
			stock = &entity.Stock{BranchID: branchID, MaterialID: in.MaterialID, Quantity: decimal.Zero}
		}

		newQty := stock.Quantity.Add(in.Delta)
		if newQty.IsNegative() {
			return domain.ErrInsufficientStock
		}
		stock.Quantity = newQty
		if in.Minimum != nil {
			if in.Minimum.IsNegative() {
				return domain.ErrInvalidInput
			}
			stock.Minimum = *in.Minimum
		}
		stock.UpdatedAt = now
		if err := stockRepo.Upsert(ctx, stock); err != nil {
			return err
		}

		audit := &entity.AuditEntry{
			ID:          uuid.New().String(),
			Entity:      "existencia",
			EntityID:    in.MaterialID,
			Action:      entity.AuditActionAdjusted,
			Description: fmt.Sprintf("ajuste de %s (%s)", in.Delta.String(), in.Reason),
			BranchID:    branchID,
			UserID:      userID,
			CreatedAt:   now,
		}
		if err := auditRepo.Create(ctx, audit); err != nil {
			return err
		}

		result = stock
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toStockResponse(result), nil
}

// List lista existencias de la sucursal.
func (uc *AdjustStockUseCase) List(ctx context.Context, branchID string, limit, offset int) (*dto.StockListResponse, error) {
	list, err := uc.stockRepo.ListByBranch(ctx, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return &dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListBelowMinimum lista existencias en o bajo su umbral de reposición.
func (uc *AdjustStockUseCase) ListBelowMinimum(ctx context.Context, branchID string) ([]dto.StockResponse, error) {
	list, err := uc.stockRepo.ListBelowMinimum(ctx, branchID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return items, nil
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		BranchID:     s.BranchID,
		MaterialID:   s.MaterialID,
		Quantity:     s.Quantity,
		Minimum:      s.Minimum,
		BelowMinimum: s.BelowMinimum(),
		UpdatedAt:    s.UpdatedAt,
	}
}

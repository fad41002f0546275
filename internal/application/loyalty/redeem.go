package loyalty

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

// TxRunner ejecuta una función dentro de una transacción con los repos del
// ledger de puntos y auditoría. El saldo se verifica con bloqueo para que dos
// canjes concurrentes no dejen al cliente en negativo.
type TxRunner interface {
	RunLoyalty(ctx context.Context, fn func(
		pointsRepo repository.PointsRepository,
		auditRepo repository.AuditRepository,
	) error) error
}

// RedeemUseCase canjea puntos de un cliente de forma transaccional.
type RedeemUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	pointsRepo   repository.PointsRepository
}

// NewRedeemUseCase construye el caso de uso de canje.
func NewRedeemUseCase(txRunner TxRunner, customerRepo repository.CustomerRepository, pointsRepo repository.PointsRepository) *RedeemUseCase {
	return &RedeemUseCase{txRunner: txRunner, customerRepo: customerRepo, pointsRepo: pointsRepo}
}

// Redeem descuenta puntos del cliente. Falla con ErrInsufficientPoints si el
// saldo bloqueado es menor al canje; el movimiento y su auditoría se escriben
// en la misma transacción.
func (uc *RedeemUseCase) Redeem(ctx context.Context, customerID, branchID, userID string, in dto.RedeemPointsRequest) (*dto.RedeemPointsResponse, error) {
	if customerID == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.BranchID != branchID {
		return nil, domain.ErrBranchMismatch
	}

	now := time.Now()
	var newBalance decimal.Decimal

	err = uc.txRunner.RunLoyalty(ctx, func(
		pointsRepo repository.PointsRepository,
		auditRepo repository.AuditRepository,
	) error {
		balance, err := pointsRepo.BalanceForUpdate(ctx, customerID)
		if err != nil {
			return err
		}
		if balance.LessThan(in.Amount) {
			return domain.ErrInsufficientPoints
		}

		entry := &entity.PointsEntry{
			ID:         uuid.New().String(),
			CustomerID: customerID,
			BranchID:   branchID,
			Type:       entity.PointsRedeem,
			Amount:     in.Amount,
			Reference:  in.Reason,
			CreatedAt:  now,
		}
		if err := pointsRepo.Create(ctx, entry); err != nil {
			return err
		}

		newBalance = balance.Sub(in.Amount)
		audit := &entity.AuditEntry{
			ID:          uuid.New().String(),
			Entity:      "puntos",
			EntityID:    customerID,
			Action:      entity.AuditActionRedeemed,
			Description: fmt.Sprintf("canje de %s puntos", in.Amount.StringFixed(2)),
			BranchID:    branchID,
			UserID:      userID,
			CreatedAt:   now,
		}
		return auditRepo.Create(ctx, audit)
	})
	if err != nil {
		return nil, err
	}

	return &dto.RedeemPointsResponse{
		CustomerID: customerID,
		Redeemed:   in.Amount,
		Balance:    newBalance,
	}, nil
}

// Statement devuelve saldo + historial de puntos del cliente.
func (uc *RedeemUseCase) Statement(ctx context.Context, customerID, branchID string, limit, offset int) (*dto.PointsStatementResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.BranchID != branchID {
		return nil, domain.ErrBranchMismatch
	}

	balance, err := uc.pointsRepo.Balance(ctx, customerID)
	if err != nil {
		return nil, err
	}
	entries, err := uc.pointsRepo.ListByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PointsEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.PointsEntryResponse{
			ID:        e.ID,
			BranchID:  e.BranchID,
			Type:      e.Type,
			Amount:    e.Amount,
			Reference: e.Reference,
			CreatedAt: e.CreatedAt,
		})
	}
	return &dto.PointsStatementResponse{
		CustomerID: customerID,
		Balance:    balance,
		Entries:    items,
		Page:       dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

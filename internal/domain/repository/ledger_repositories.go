package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
)

// PointsRepository define el puerto del ledger de puntos (append-only).
type PointsRepository interface {
	Create(ctx context.Context, entry *entity.PointsEntry) error
	ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.PointsEntry, error)
	// Balance suma los movimientos del cliente (earn positivo, redeem negativo).
	Balance(ctx context.Context, customerID string) (decimal.Decimal, error)
	// BalanceForUpdate calcula el saldo bloqueando los movimientos del cliente
	// (FOR UPDATE) para serializar canjes concurrentes.
	BalanceForUpdate(ctx context.Context, customerID string) (decimal.Decimal, error)
}

// CommissionRepository define el puerto del ledger de comisiones (append-only).
type CommissionRepository interface {
	Create(ctx context.Context, entry *entity.CommissionEntry) error
	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time, limit, offset int) ([]*entity.CommissionEntry, error)
	TotalByEmployee(ctx context.Context, employeeID string, from, to *time.Time) (decimal.Decimal, error)
}

// AuditRepository define el puerto del log de auditoría (append-only).
type AuditRepository interface {
	Create(ctx context.Context, entry *entity.AuditEntry) error
	List(ctx context.Context, branchID, entityName string, limit, offset int) ([]*entity.AuditEntry, error)
}

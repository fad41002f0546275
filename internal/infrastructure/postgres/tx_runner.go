package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ksalazar-dev/salon-api/internal/application/appointment"
	"github.com/ksalazar-dev/salon-api/internal/application/inventory"
	"github.com/ksalazar-dev/salon-api/internal/application/loyalty"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

// Ensure TxRunner implements the transactional ports of the application layer.
var _ appointment.TxRunner = (*TxRunner)(nil)
var _ loyalty.TxRunner = (*TxRunner)(nil)
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción con los repos del cierre de cita y hace Commit o Rollback.
// Un error de fn revierte todo: existencias, puntos, comisión, auditoría y estado.
func (r *TxRunner) Run(ctx context.Context, fn func(
	apptRepo repository.AppointmentRepository,
	stockRepo repository.StockRepository,
	pointsRepo repository.PointsRepository,
	commissionRepo repository.CommissionRepository,
	auditRepo repository.AuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	apptRepo := NewAppointmentRepository(tx)
	stockRepo := NewStockRepository(tx)
	pointsRepo := NewPointsRepository(tx)
	commissionRepo := NewCommissionRepository(tx)
	auditRepo := NewAuditRepository(tx)

	if err := fn(apptRepo, stockRepo, pointsRepo, commissionRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLoyalty inicia una transacción con los repos del canje de puntos.
func (r *TxRunner) RunLoyalty(ctx context.Context, fn func(
	pointsRepo repository.PointsRepository,
	auditRepo repository.AuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pointsRepo := NewPointsRepository(tx)
	auditRepo := NewAuditRepository(tx)

	if err := fn(pointsRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunStock inicia una transacción con los repos del ajuste de existencias.
func (r *TxRunner) RunStock(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	auditRepo repository.AuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewStockRepository(tx)
	auditRepo := NewAuditRepository(tx)

	if err := fn(stockRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

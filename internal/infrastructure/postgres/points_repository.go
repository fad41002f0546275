package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

var _ repository.PointsRepository = (*PointsRepo)(nil)

// PointsRepo implementación del ledger de puntos sobre PostgreSQL (usable con pool o tx).
type PointsRepo struct {
	q Querier
}

// NewPointsRepository construye el adaptador del ledger de puntos. Pasar pool o tx (Querier).
func NewPointsRepository(q Querier) *PointsRepo {
	return &PointsRepo{q: q}
}

// Create inserta un movimiento de puntos (append-only, nunca se actualiza).
func (r *PointsRepo) Create(ctx context.Context, entry *entity.PointsEntry) error {
	query := `
		INSERT INTO points_entries (id, customer_id, branch_id, type, amount, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.CustomerID, entry.BranchID, entry.Type, entry.Amount, entry.Reference, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert points entry: %w", err)
	}
	return nil
}

// ListByCustomer lista los movimientos del cliente, más recientes primero.
func (r *PointsRepo) ListByCustomer(ctx context.Context, customerID string, limit, offset int) ([]*entity.PointsEntry, error) {
	query := `
		SELECT id, customer_id, branch_id, type, amount, reference, created_at
		FROM points_entries WHERE customer_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list points entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.PointsEntry
	for rows.Next() {
		var e entity.PointsEntry
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.BranchID, &e.Type, &e.Amount, &e.Reference, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan points entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Balance suma los movimientos del cliente (earn positivo, redeem negativo).
func (r *PointsRepo) Balance(ctx context.Context, customerID string) (decimal.Decimal, error) {
	return r.balance(ctx, customerID, false)
}

// BalanceForUpdate calcula el saldo bloqueando los movimientos del cliente
// (FOR UPDATE) para serializar canjes concurrentes.
func (r *PointsRepo) BalanceForUpdate(ctx context.Context, customerID string) (decimal.Decimal, error) {
	return r.balance(ctx, customerID, true)
}

func (r *PointsRepo) balance(ctx context.Context, customerID string, lock bool) (decimal.Decimal, error) {
	// El agregado no admite FOR UPDATE directo; en la variante con bloqueo la
	// suma se hace sobre las filas ya bloqueadas en la subconsulta.
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'redeem' THEN -amount ELSE amount END), 0)
		FROM points_entries WHERE customer_id = $1`
	if lock {
		query = `
			SELECT COALESCE(SUM(CASE WHEN type = 'redeem' THEN -amount ELSE amount END), 0)
			FROM (
				SELECT type, amount FROM points_entries
				WHERE customer_id = $1 FOR UPDATE
			) locked`
	}
	var balance decimal.Decimal
	err := r.q.QueryRow(ctx, query, customerID).Scan(&balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("points balance: %w", err)
	}
	return balance, nil
}

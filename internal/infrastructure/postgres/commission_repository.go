package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

var _ repository.CommissionRepository = (*CommissionRepo)(nil)

// CommissionRepo implementación del ledger de comisiones sobre PostgreSQL (usable con pool o tx).
type CommissionRepo struct {
	q Querier
}

// NewCommissionRepository construye el adaptador del ledger de comisiones. Pasar pool o tx (Querier).
func NewCommissionRepository(q Querier) *CommissionRepo {
	return &CommissionRepo{q: q}
}

// Create inserta un registro de comisión (append-only).
func (r *CommissionRepo) Create(ctx context.Context, entry *entity.CommissionEntry) error {
	query := `
		INSERT INTO commission_entries (id, employee_id, branch_id, appointment_id, amount, pct, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.EmployeeID, entry.BranchID, entry.AppointmentID, entry.Amount, entry.Pct, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert commission entry: %w", err)
	}
	return nil
}

// ListByEmployee lista comisiones de un empleado, opcionalmente acotadas por fechas.
func (r *CommissionRepo) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time, limit, offset int) ([]*entity.CommissionEntry, error) {
	query := `
		SELECT id, employee_id, branch_id, appointment_id, amount, pct, created_at
		FROM commission_entries WHERE employee_id = $1`
	args := []any{employeeID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list commission entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.CommissionEntry
	for rows.Next() {
		var e entity.CommissionEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.BranchID, &e.AppointmentID, &e.Amount, &e.Pct, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan commission entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// TotalByEmployee suma las comisiones de un empleado en el rango dado.
func (r *CommissionRepo) TotalByEmployee(ctx context.Context, employeeID string, from, to *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM commission_entries WHERE employee_id = $1`
	args := []any{employeeID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND created_at < $%d", len(args))
	}
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, query, args...).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total commissions: %w", err)
	}
	return total, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

var _ repository.AppointmentRepository = (*AppointmentRepo)(nil)

// AppointmentRepo implementación de AppointmentRepository sobre PostgreSQL (usable con pool o tx).
type AppointmentRepo struct {
	q Querier
}

// NewAppointmentRepository construye el adaptador de citas. Pasar pool o tx (Querier).
func NewAppointmentRepository(q Querier) *AppointmentRepo {
	return &AppointmentRepo{q: q}
}

const appointmentColumns = `
	id, branch_id, customer_id, employee_id, service_ids, scheduled_at,
	total, deposit, state, cancel_reason, created_at, updated_at`

// Create persiste una cita nueva. service_ids se guarda como text[].
func (r *AppointmentRepo) Create(ctx context.Context, a *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, branch_id, customer_id, employee_id, service_ids,
			scheduled_at, total, deposit, state, cancel_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.BranchID, a.CustomerID, a.EmployeeID, a.ServiceIDs,
		a.ScheduledAt, a.Total, a.Deposit, a.State, a.CancelReason, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// GetByID obtiene una cita por ID. Devuelve nil si no existe.
func (r *AppointmentRepo) GetByID(ctx context.Context, id string) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get appointment")
}

// GetForUpdate obtiene la cita bloqueando la fila (SELECT FOR UPDATE) para
// serializar cierres concurrentes. Devuelve nil si no existe.
func (r *AppointmentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get appointment for update")
}

// ListByBranch lista citas de una sucursal con filtro opcional por rango de agenda.
func (r *AppointmentRepo) ListByBranch(ctx context.Context, branchID string, from, to *time.Time, limit, offset int) ([]*entity.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE branch_id = $1`
	args := []any{branchID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND scheduled_at >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND scheduled_at < $%d", len(args))
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY scheduled_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Appointment
	for rows.Next() {
		var a entity.Appointment
		if err := rows.Scan(
			&a.ID, &a.BranchID, &a.CustomerID, &a.EmployeeID, &a.ServiceIDs, &a.ScheduledAt,
			&a.Total, &a.Deposit, &a.State, &a.CancelReason, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Update actualiza los campos mutables de la cita.
func (r *AppointmentRepo) Update(ctx context.Context, a *entity.Appointment) error {
	query := `
		UPDATE appointments
		SET employee_id = $2, service_ids = $3, scheduled_at = $4, total = $5,
			deposit = $6, state = $7, cancel_reason = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.EmployeeID, a.ServiceIDs, a.ScheduledAt, a.Total,
		a.Deposit, a.State, a.CancelReason, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}
	return nil
}

// UpdateState cambia solo el estado de la cita.
func (r *AppointmentRepo) UpdateState(ctx context.Context, id, state string) error {
	query := `UPDATE appointments SET state = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(ctx, query, id, state)
	if err != nil {
		return fmt.Errorf("update appointment state: %w", err)
	}
	return nil
}

func (r *AppointmentRepo) scanOne(row pgx.Row, op string) (*entity.Appointment, error) {
	var a entity.Appointment
	err := row.Scan(
		&a.ID, &a.BranchID, &a.CustomerID, &a.EmployeeID, &a.ServiceIDs, &a.ScheduledAt,
		&a.Total, &a.Deposit, &a.State, &a.CancelReason, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &a, nil
}

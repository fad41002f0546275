package repository

import (
	"context"
	"time"

	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
)

// AppointmentRepository define el puerto de persistencia para citas.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	GetByID(ctx context.Context, id string) (*entity.Appointment, error)
	// GetForUpdate bloquea la fila de la cita (SELECT FOR UPDATE) para
	// serializar cierres concurrentes sobre la misma cita.
	GetForUpdate(ctx context.Context, id string) (*entity.Appointment, error)
	ListByBranch(ctx context.Context, branchID string, from, to *time.Time, limit, offset int) ([]*entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	UpdateState(ctx context.Context, id, state string) error
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cita. Cerrada y cancelada son terminales.
const (
	AppointmentPending   = "pendiente"
	AppointmentConfirmed = "confirmada"
	AppointmentClosed    = "cerrada"
	AppointmentCancelled = "cancelada"
)

// Appointment representa una cita de servicios en una sucursal.
type Appointment struct {
	ID           string
	BranchID     string
	CustomerID   string
	EmployeeID   string // vacío si aún no hay empleado asignado
	ServiceIDs   []string
	ScheduledAt  time.Time
	Total        decimal.Decimal
	Deposit      decimal.Decimal // anticipo
	State        string
	CancelReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsTerminal indica si la cita alcanzó un estado final (cerrada o cancelada).
func (a *Appointment) IsTerminal() bool {
	return a.State == AppointmentClosed || a.State == AppointmentCancelled
}

// CanClose indica si la cita puede transicionar a cerrada.
// Las citas confirmadas también se cierran: la confirmación solo asigna empleado.
func (a *Appointment) CanClose() bool {
	return a.State == AppointmentPending || a.State == AppointmentConfirmed
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionEntry es un registro append-only de comisión ganada por un
// empleado al cerrar una cita.
type CommissionEntry struct {
	ID            string
	EmployeeID    string
	BranchID      string
	AppointmentID string
	Amount        decimal.Decimal
	Pct           decimal.Decimal // porcentaje aplicado al momento del cierre
	CreatedAt     time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee representa un empleado que atiende citas. CommissionPct es el
// porcentaje (0-100) del total de la cita que gana como comisión al cerrarla.
type Employee struct {
	ID            string
	BranchID      string
	Name          string
	Email         string
	Phone         string
	CommissionPct decimal.Decimal
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la existencia de un material en una sucursal.
// Invariante: Quantity nunca puede quedar negativa; un descuento que la
// dejaría bajo cero aborta la transacción completa.
type Stock struct {
	BranchID   string
	MaterialID string
	Quantity   decimal.Decimal
	Minimum    decimal.Decimal // umbral de alerta de reposición
	UpdatedAt  time.Time
}

// BelowMinimum indica si la existencia está en o bajo el umbral de reposición.
func (s *Stock) BelowMinimum() bool {
	return s.Quantity.LessThanOrEqual(s.Minimum)
}

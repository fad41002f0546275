package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Promotion representa una promoción de descuento porcentual con ventana
// de vigencia, opcionalmente ligada a una sucursal (BranchID vacío = todas).
type Promotion struct {
	ID          string
	BranchID    string
	Name        string
	DiscountPct decimal.Decimal // 0-100
	ValidFrom   time.Time
	ValidUntil  time.Time
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidAt indica si la promoción aplica en el instante dado.
func (p *Promotion) ValidAt(t time.Time) bool {
	if !p.Active {
		return false
	}
	if t.Before(p.ValidFrom) {
		return false
	}
	if !p.ValidUntil.IsZero() && t.After(p.ValidUntil) {
		return false
	}
	return true
}

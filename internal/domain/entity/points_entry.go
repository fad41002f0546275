package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de puntos.
const (
	PointsEarn   = "earn"
	PointsRedeem = "redeem"
)

// PointsEntry es un movimiento del ledger de puntos de fidelización.
// Append-only: el saldo de un cliente es la suma de sus movimientos
// (earn positivo, redeem negativo).
type PointsEntry struct {
	ID         string
	CustomerID string
	BranchID   string
	Type       string
	Amount     decimal.Decimal // siempre positivo; el tipo define el signo
	Reference  string          // ID de la cita o canje que originó el movimiento
	CreatedAt  time.Time
}

// Signed devuelve el monto con signo según el tipo de movimiento.
func (p *PointsEntry) Signed() decimal.Decimal {
	if p.Type == PointsRedeem {
		return p.Amount.Neg()
	}
	return p.Amount
}

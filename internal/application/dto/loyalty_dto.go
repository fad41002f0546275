package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PointsEntryResponse movimiento del ledger de puntos.
type PointsEntryResponse struct {
	ID        string          `json:"id"`
	BranchID  string          `json:"branch_id"`
	Type      string          `json:"type"` // earn | redeem
	Amount    decimal.Decimal `json:"amount"`
	Reference string          `json:"reference,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// PointsStatementResponse saldo + historial de puntos de un cliente.
type PointsStatementResponse struct {
	CustomerID string                `json:"customer_id"`
	Balance    decimal.Decimal       `json:"balance"`
	Entries    []PointsEntryResponse `json:"entries"`
	Page       PageResponse          `json:"page"`
}

// RedeemPointsRequest body para POST /api/clientes/:id/puntos/canje.
type RedeemPointsRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason,omitempty"`
}

// RedeemPointsResponse resultado del canje.
type RedeemPointsResponse struct {
	CustomerID string          `json:"customer_id"`
	Redeemed   decimal.Decimal `json:"redeemed"`
	Balance    decimal.Decimal `json:"balance"`
}

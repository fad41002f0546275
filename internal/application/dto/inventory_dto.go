package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockResponse existencia de un material en la sucursal activa.
type StockResponse struct {
	BranchID     string          `json:"branch_id"`
	MaterialID   string          `json:"material_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	Minimum      decimal.Decimal `json:"minimum"`
	BelowMinimum bool            `json:"below_minimum"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockListResponse listado de existencias.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// AdjustStockRequest body para POST /api/existencias/ajustes.
// Delta positivo repone, negativo descuenta (nunca bajo cero).
// Minimum opcional actualiza el umbral de reposición.
type AdjustStockRequest struct {
	MaterialID string           `json:"material_id"`
	Delta      decimal.Decimal  `json:"delta"`
	Minimum    *decimal.Decimal `json:"minimum,omitempty"`
	Reason     string           `json:"reason"`
}

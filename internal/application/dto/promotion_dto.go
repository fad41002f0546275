package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePromotionRequest body para POST /api/promociones.
type CreatePromotionRequest struct {
	Name        string          `json:"name"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	ValidFrom   time.Time       `json:"valid_from"`
	ValidUntil  time.Time       `json:"valid_until,omitempty"`
}

// UpdatePromotionRequest body para PUT /api/promociones/:id (campos opcionales).
type UpdatePromotionRequest struct {
	Name        *string          `json:"name,omitempty"`
	DiscountPct *decimal.Decimal `json:"discount_pct,omitempty"`
	ValidFrom   *time.Time       `json:"valid_from,omitempty"`
	ValidUntil  *time.Time       `json:"valid_until,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// PromotionResponse representación de una promoción.
type PromotionResponse struct {
	ID          string          `json:"id"`
	BranchID    string          `json:"branch_id,omitempty"`
	Name        string          `json:"name"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	ValidFrom   time.Time       `json:"valid_from"`
	ValidUntil  time.Time       `json:"valid_until,omitempty"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PromotionListResponse listado paginado de promociones.
type PromotionListResponse struct {
	Items []PromotionResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// ApplyPromotionRequest body para POST /api/promociones/:id/aplicar.
type ApplyPromotionRequest struct {
	Total decimal.Decimal `json:"total"`
}

// ApplyPromotionResponse descuento calculado sobre un total.
type ApplyPromotionResponse struct {
	PromotionID string          `json:"promotion_id"`
	Total       decimal.Decimal `json:"total"`
	Discount    decimal.Decimal `json:"discount"`
	FinalTotal  decimal.Decimal `json:"final_total"`
}

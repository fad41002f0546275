package promo

import "github.com/shopspring/decimal"

// Discount calcula el monto de descuento de una promoción porcentual
// (servicio de dominio). Descuento = Total * Pct / 100, redondeado a 2 decimales.
func Discount(total, pct decimal.Decimal) decimal.Decimal {
	if total.LessThanOrEqual(decimal.Zero) || pct.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return total.Mul(pct).Div(decimal.NewFromInt(100)).Round(2)
}

package loyalty

import "github.com/shopspring/decimal"

// EarnedPoints calcula los puntos acreditados por el cierre de una cita
// (servicio de dominio). Puntos = Total * Rate, redondeado a 2 decimales.
// La tasa es política de negocio y viene de configuración (LOYALTY_POINTS_RATE).
func EarnedPoints(total, rate decimal.Decimal) decimal.Decimal {
	if total.LessThanOrEqual(decimal.Zero) || rate.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return total.Mul(rate).Round(2)
}

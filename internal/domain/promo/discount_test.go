package promo_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ksalazar-dev/salon-api/internal/domain/promo"
)

// Una promoción del 10% sobre un total de 1000 debe descontar exactamente 100.00.
func TestDiscount_DiezPorCientoSobreMil(t *testing.T) {
	got := promo.Discount(decimal.NewFromInt(1000), decimal.NewFromInt(10))

	assert.True(t, got.Equal(decimal.NewFromInt(100)),
		"10%% de 1000 debe ser 100, se obtuvo %s", got)
}

// El resultado debe quedar redondeado a 2 decimales.
func TestDiscount_RedondeoADosDecimales(t *testing.T) {
	// 7.5% de 333.33 = 24.99975 -> 25.00
	total := decimal.RequireFromString("333.33")
	pct := decimal.RequireFromString("7.5")

	got := promo.Discount(total, pct)

	assert.Equal(t, "25", got.String(),
		"el descuento debe redondearse a 2 decimales")
	assert.True(t, got.Exponent() >= -2, "no debe haber más de 2 decimales")
}

func TestDiscount_TotalCeroONegativo(t *testing.T) {
	assert.True(t, promo.Discount(decimal.Zero, decimal.NewFromInt(10)).IsZero())
	assert.True(t, promo.Discount(decimal.NewFromInt(-50), decimal.NewFromInt(10)).IsZero())
}

func TestDiscount_PorcentajeCeroONegativo(t *testing.T) {
	assert.True(t, promo.Discount(decimal.NewFromInt(1000), decimal.Zero).IsZero())
	assert.True(t, promo.Discount(decimal.NewFromInt(1000), decimal.NewFromInt(-5)).IsZero())
}

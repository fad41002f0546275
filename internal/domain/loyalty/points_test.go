package loyalty_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ksalazar-dev/salon-api/internal/domain/loyalty"
)

func TestEarnedPoints_TasaProporcionalAlTotal(t *testing.T) {
	// Tasa 0.05: una cita de 1000 acredita 50 puntos.
	got := loyalty.EarnedPoints(decimal.NewFromInt(1000), decimal.RequireFromString("0.05"))

	assert.True(t, got.Equal(decimal.NewFromInt(50)),
		"1000 * 0.05 debe acreditar 50 puntos, se obtuvo %s", got)
}

func TestEarnedPoints_RedondeoADosDecimales(t *testing.T) {
	// 123.45 * 0.033 = 4.07385 -> 4.07
	got := loyalty.EarnedPoints(decimal.RequireFromString("123.45"), decimal.RequireFromString("0.033"))

	assert.Equal(t, "4.07", got.String())
}

func TestEarnedPoints_SinPuntosParaTotalOTasaInvalida(t *testing.T) {
	rate := decimal.RequireFromString("0.05")

	assert.True(t, loyalty.EarnedPoints(decimal.Zero, rate).IsZero())
	assert.True(t, loyalty.EarnedPoints(decimal.NewFromInt(-10), rate).IsZero())
	assert.True(t, loyalty.EarnedPoints(decimal.NewFromInt(100), decimal.Zero).IsZero())
}

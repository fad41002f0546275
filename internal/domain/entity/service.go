package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service representa un servicio del catálogo (corte, manicure, tratamiento...).
type Service struct {
	ID              string
	Name            string
	Description     string
	Price           decimal.Decimal
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RecipeItem es una línea de la receta de un servicio: cuánto material
// consume cada ejecución del servicio. Solo lectura al cerrar una cita.
type RecipeItem struct {
	ServiceID  string
	MaterialID string
	Quantity   decimal.Decimal
}

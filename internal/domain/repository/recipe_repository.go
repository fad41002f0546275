package repository

import (
	"context"

	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
)

// RecipeRepository define el puerto de lectura/escritura de recetas de servicio
// (material y cantidad que consume cada ejecución del servicio).
type RecipeRepository interface {
	ListByService(ctx context.Context, serviceID string) ([]*entity.RecipeItem, error)
	// Replace reemplaza la receta completa del servicio.
	Replace(ctx context.Context, serviceID string, items []*entity.RecipeItem) error
}

package postgres

import (
	"context"
	"fmt"

	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación de RecipeRepository sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador de recetas. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// ListByService devuelve las líneas de receta de un servicio ordenadas por material.
func (r *RecipeRepo) ListByService(ctx context.Context, serviceID string) ([]*entity.RecipeItem, error) {
	query := `
		SELECT service_id, material_id, quantity
		FROM service_recipes WHERE service_id = $1
		ORDER BY material_id`
	rows, err := r.q.Query(ctx, query, serviceID)
	if err != nil {
		return nil, fmt.Errorf("list recipe: %w", err)
	}
	defer rows.Close()
	var items []*entity.RecipeItem
	for rows.Next() {
		var it entity.RecipeItem
		if err := rows.Scan(&it.ServiceID, &it.MaterialID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan recipe item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// Replace borra la receta del servicio y la vuelve a insertar completa.
func (r *RecipeRepo) Replace(ctx context.Context, serviceID string, items []*entity.RecipeItem) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM service_recipes WHERE service_id = $1`, serviceID); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	query := `
		INSERT INTO service_recipes (service_id, material_id, quantity)
		VALUES ($1, $2, $3)`
	for _, it := range items {
		if _, err := r.q.Exec(ctx, query, serviceID, it.MaterialID, it.Quantity); err != nil {
			return fmt.Errorf("insert recipe item: %w", err)
		}
	}
	return nil
}

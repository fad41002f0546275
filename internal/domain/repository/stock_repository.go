package repository

import (
	"context"

	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar existencias por
// sucursal+material. Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// Get devuelve nil si no hay registro de existencia para el par.
	Get(ctx context.Context, branchID, materialID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	// Devuelve nil si no hay registro.
	GetForUpdate(ctx context.Context, branchID, materialID string) (*entity.Stock, error)
	Upsert(ctx context.Context, stock *entity.Stock) error
	ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Stock, error)
	// ListBelowMinimum devuelve las existencias en o bajo su umbral de reposición.
	ListBelowMinimum(ctx context.Context, branchID string) ([]*entity.Stock, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de existencias. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la existencia de un material en una sucursal. Devuelve nil
// si el par no tiene registro (se trata como stock desconocido, no cero).
func (r *StockRepo) Get(ctx context.Context, branchID, materialID string) (*entity.Stock, error) {
	query := `
		SELECT branch_id, material_id, quantity, minimum, updated_at
		FROM stocks WHERE branch_id = $1 AND material_id = $2`
	return r.scanOne(r.q.QueryRow(ctx, query, branchID, materialID), "get stock")
}

// GetForUpdate obtiene la existencia bloqueando la fila (SELECT FOR UPDATE).
// Devuelve nil si el par no tiene registro.
func (r *StockRepo) GetForUpdate(ctx context.Context, branchID, materialID string) (*entity.Stock, error) {
	query := `
		SELECT branch_id, material_id, quantity, minimum, updated_at
		FROM stocks WHERE branch_id = $1 AND material_id = $2
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, branchID, materialID), "get stock for update")
}

// Upsert inserta o actualiza la existencia (por sucursal y material).
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stocks (branch_id, material_id, quantity, minimum, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (branch_id, material_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, minimum = EXCLUDED.minimum, updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		stock.BranchID, stock.MaterialID, stock.Quantity, stock.Minimum,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByBranch lista las existencias de una sucursal con paginación.
func (r *StockRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT branch_id, material_id, quantity, minimum, updated_at
		FROM stocks WHERE branch_id = $1
		ORDER BY material_id LIMIT $2 OFFSET $3`
	return r.list(ctx, query, branchID, limit, offset)
}

// ListBelowMinimum lista las existencias en o bajo su umbral de reposición.
func (r *StockRepo) ListBelowMinimum(ctx context.Context, branchID string) ([]*entity.Stock, error) {
	query := `
		SELECT branch_id, material_id, quantity, minimum, updated_at
		FROM stocks WHERE branch_id = $1 AND quantity <= minimum
		ORDER BY material_id`
	return r.list(ctx, query, branchID)
}

func (r *StockRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Stock, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.BranchID, &s.MaterialID, &s.Quantity, &s.Minimum, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *StockRepo) scanOne(row pgx.Row, op string) (*entity.Stock, error) {
	var s entity.Stock
	err := row.Scan(&s.BranchID, &s.MaterialID, &s.Quantity, &s.Minimum, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &s, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ksalazar-dev/salon-api/internal/domain"
	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

var _ repository.PromotionRepository = (*PromotionRepo)(nil)

// PromotionRepo implementación de PromotionRepository sobre PostgreSQL.
type PromotionRepo struct {
	q Querier
}

// NewPromotionRepository construye el adaptador de promociones. Pasar pool o tx (Querier).
func NewPromotionRepository(q Querier) *PromotionRepo {
	return &PromotionRepo{q: q}
}

// Create persiste una promoción nueva. valid_until vacío se guarda como NULL.
func (r *PromotionRepo) Create(ctx context.Context, p *entity.Promotion) error {
	query := `
		INSERT INTO promotions (id, branch_id, name, discount_pct, valid_from, valid_until, active, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, NULLIF($6, '0001-01-01T00:00:00Z'::timestamptz), $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.BranchID, p.Name, p.DiscountPct, p.ValidFrom, p.ValidUntil, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert promotion: %w", err)
	}
	return nil
}

// GetByID obtiene una promoción por ID. Devuelve nil si no existe.
func (r *PromotionRepo) GetByID(ctx context.Context, id string) (*entity.Promotion, error) {
	query := `
		SELECT id, COALESCE(branch_id, ''), name, discount_pct, valid_from,
			COALESCE(valid_until, '0001-01-01T00:00:00Z'::timestamptz), active, created_at, updated_at
		FROM promotions WHERE id = $1`
	var p entity.Promotion
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.BranchID, &p.Name, &p.DiscountPct, &p.ValidFrom, &p.ValidUntil, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get promotion: %w", err)
	}
	return &p, nil
}

// ListByBranch lista promociones de la sucursal más las globales (branch_id NULL).
func (r *PromotionRepo) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*entity.Promotion, error) {
	query := `
		SELECT id, COALESCE(branch_id, ''), name, discount_pct, valid_from,
			COALESCE(valid_until, '0001-01-01T00:00:00Z'::timestamptz), active, created_at, updated_at
		FROM promotions WHERE branch_id = $1 OR branch_id IS NULL
		ORDER BY valid_from DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Promotion
	for rows.Next() {
		var p entity.Promotion
		if err := rows.Scan(&p.ID, &p.BranchID, &p.Name, &p.DiscountPct, &p.ValidFrom, &p.ValidUntil, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan promotion: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza una promoción.
func (r *PromotionRepo) Update(ctx context.Context, p *entity.Promotion) error {
	query := `
		UPDATE promotions
		SET name = $2, discount_pct = $3, valid_from = $4,
			valid_until = NULLIF($5, '0001-01-01T00:00:00Z'::timestamptz), active = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.DiscountPct, p.ValidFrom, p.ValidUntil, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update promotion: %w", err)
	}
	return nil
}

// Delete elimina una promoción por ID.
func (r *PromotionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete promotion: %w", err)
	}
	return nil
}

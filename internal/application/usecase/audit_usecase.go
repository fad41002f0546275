package usecase

import (
	"context"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

// AuditUseCase consulta de solo lectura sobre el log de auditoría.
type AuditUseCase struct {
	repo repository.AuditRepository
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{repo: repo}
}

// List lista entradas de auditoría de la sucursal, opcionalmente filtradas
// por entidad ("cita", "existencia", "puntos").
func (uc *AuditUseCase) List(ctx context.Context, branchID, entityName string, limit, offset int) (*dto.AuditListResponse, error) {
	entries, err := uc.repo.List(ctx, branchID, entityName, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.AuditEntryResponse{
			ID:          e.ID,
			Entity:      e.Entity,
			EntityID:    e.EntityID,
			Action:      e.Action,
			Description: e.Description,
			BranchID:    e.BranchID,
			UserID:      e.UserID,
			CreatedAt:   e.CreatedAt,
		})
	}
	return &dto.AuditListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

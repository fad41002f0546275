package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/domain"
	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

// EmployeeUseCase casos de uso CRUD para empleados y consulta de comisiones.
type EmployeeUseCase struct {
	repo           repository.EmployeeRepository
	commissionRepo repository.CommissionRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, commissionRepo repository.CommissionRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, commissionRepo: commissionRepo}
}

// Create crea un empleado en la sucursal activa.
func (uc *EmployeeUseCase) Create(ctx context.Context, branchID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if branchID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validPct(in.CommissionPct) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	employee := &entity.Employee{
		ID:            uuid.New().String(),
		BranchID:      branchID,
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		CommissionPct: in.CommissionPct,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// GetByID obtiene un empleado de la sucursal activa.
func (uc *EmployeeUseCase) GetByID(ctx context.Context, id, branchID string) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, nil
	}
	if employee.BranchID != branchID {
		return nil, domain.ErrBranchMismatch
	}
	return toEmployeeResponse(employee), nil
}

// List lista empleados de la sucursal con paginación.
func (uc *EmployeeUseCase) List(ctx context.Context, branchID string, limit, offset int) (*dto.EmployeeListResponse, error) {
	list, err := uc.repo.ListByBranch(ctx, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return &dto.EmployeeListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un empleado de la sucursal activa.
func (uc *EmployeeUseCase) Update(ctx context.Context, id, branchID string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, nil
	}
	if employee.BranchID != branchID {
		return nil, domain.ErrBranchMismatch
	}
	if in.Name != nil {
		employee.Name = *in.Name
	}
	if in.Email != nil {
		employee.Email = *in.Email
	}
	if in.Phone != nil {
		employee.Phone = *in.Phone
	}
	if in.CommissionPct != nil {
		if !validPct(*in.CommissionPct) {
			return nil, domain.ErrInvalidInput
		}
		employee.CommissionPct = *in.CommissionPct
	}
	if in.Active != nil {
		employee.Active = *in.Active
	}
	employee.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// Delete elimina un empleado de la sucursal activa.
func (uc *EmployeeUseCase) Delete(ctx context.Context, id, branchID string) error {
	employee, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if employee == nil {
		return domain.ErrNotFound
	}
	if employee.BranchID != branchID {
		return domain.ErrBranchMismatch
	}
	return uc.repo.Delete(ctx, id)
}

// Commissions devuelve comisiones + total del período para un empleado.
func (uc *EmployeeUseCase) Commissions(ctx context.Context, id, branchID string, from, to *time.Time, limit, offset int) (*dto.CommissionStatementResponse, error) {
	employee, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, domain.ErrNotFound
	}
	if employee.BranchID != branchID {
		return nil, domain.ErrBranchMismatch
	}

	total, err := uc.commissionRepo.TotalByEmployee(ctx, id, from, to)
	if err != nil {
		return nil, err
	}
	entries, err := uc.commissionRepo.ListByEmployee(ctx, id, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CommissionEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.CommissionEntryResponse{
			ID:            e.ID,
			BranchID:      e.BranchID,
			AppointmentID: e.AppointmentID,
			Amount:        e.Amount,
			Pct:           e.Pct,
			CreatedAt:     e.CreatedAt,
		})
	}
	return &dto.CommissionStatementResponse{
		EmployeeID: id,
		Total:      total,
		Entries:    items,
		Page:       dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func validPct(pct decimal.Decimal) bool {
	return !pct.IsNegative() && pct.LessThanOrEqual(decimal.NewFromInt(100))
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	return &dto.EmployeeResponse{
		ID:            e.ID,
		BranchID:      e.BranchID,
		Name:          e.Name,
		Email:         e.Email,
		Phone:         e.Phone,
		CommissionPct: e.CommissionPct,
		Active:        e.Active,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

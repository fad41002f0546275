package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/domain"
	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes (por sucursal).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente en la sucursal activa. La cédula es única por sucursal.
func (uc *CustomerUseCase) Create(ctx context.Context, branchID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if branchID == "" || in.Name == "" || in.Cedula == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCedula(ctx, branchID, in.Cedula)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		BranchID:  branchID,
		Name:      in.Name,
		Cedula:    in.Cedula,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente de la sucursal activa.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id, branchID string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if customer.BranchID != branchID {
		return nil, domain.ErrBranchMismatch
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes de la sucursal con paginación.
func (uc *CustomerUseCase) List(ctx context.Context, branchID string, limit, offset int) (*dto.CustomerListResponse, error) {
	list, err := uc.repo.ListByBranch(ctx, branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza un cliente de la sucursal activa.
func (uc *CustomerUseCase) Update(ctx context.Context, id, branchID string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if customer.BranchID != branchID {
		return nil, domain.ErrBranchMismatch
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina un cliente de la sucursal activa.
func (uc *CustomerUseCase) Delete(ctx context.Context, id, branchID string) error {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	if customer.BranchID != branchID {
		return domain.ErrBranchMismatch
	}
	return uc.repo.Delete(ctx, id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:        c.ID,
		BranchID:  c.BranchID,
		Name:      c.Name,
		Cedula:    c.Cedula,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

package appointment

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

// UseCase operaciones del ciclo de vida de una cita previas al cierre:
// agendar, confirmar (asignar empleado), cancelar y consultar.
type UseCase struct {
	apptRepo     repository.AppointmentRepository
	serviceRepo  repository.ServiceRepository
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
}

// NewUseCase construye el caso de uso de ciclo de vida.
func NewUseCase(
	apptRepo repository.AppointmentRepository,
	serviceRepo repository.ServiceRepository,
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
) *UseCase {
	return &UseCase{
		apptRepo:     apptRepo,
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
	}
}

// Book agenda una cita pendiente. El total es la suma de los precios de los
// servicios al momento de agendar.
func (uc *UseCase) Book(ctx context.Context, branchID string, in dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if branchID == "" || in.CustomerID == "" || len(in.ServiceIDs) == 0 || in.ScheduledAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.BranchID != branchID {
		return nil, domain.ErrBranchMismatch
	}

	var total decimal.Decimal
	for _, serviceID := range in.ServiceIDs {
		svc, err := uc.serviceRepo.GetByID(ctx, serviceID)
		if err != nil {
			return nil, err
		}
		if svc == nil || !svc.Active {
			return nil, domain.ErrNotFound
		}
		total = total.Add(svc.Price)
	}

	deposit := decimal.Zero
	if in.Deposit != nil {
		if in.Deposit.LessThan(decimal.Zero) || in.Deposit.GreaterThan(total) {
			return nil, domain.ErrInvalidInput
		}
		deposit = *in.Deposit
	}

	now := time.Now()
	appt := &entity.Appointment{
		ID:          uuid.New().String(),
		BranchID:    branchID,
		CustomerID:  in.CustomerID,
		ServiceIDs:  in.ServiceIDs,
		ScheduledAt: in.ScheduledAt,
		Total:       total,
		Deposit:     deposit,
		State:       entity.AppointmentPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.apptRepo.Create(ctx, appt); err != nil {
		return nil, err
	}
	return toAppointmentResponse(appt), nil
}

// Confirm asigna un empleado a una cita pendiente y la marca confirmada.
func (uc *UseCase) Confirm(ctx context.Context, appointmentID, branchID, employeeID string) (*dto.AppointmentResponse, error) {
	appt, err := uc.getOwned(ctx, appointmentID, branchID)
	if err != nil {
		return nil, err
	}
	if appt.State != entity.AppointmentPending {
		return nil, domain.ErrAppointmentNotPending
	}

	emp, err := uc.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if emp == nil || !emp.Active {
		return nil, domain.ErrNotFound
	}
	if emp.BranchID != branchID {
		return nil, domain.ErrBranchMismatch
	}

	appt.EmployeeID = employeeID
	appt.State = entity.AppointmentConfirmed
	appt.UpdatedAt = time.Now()
	if err := uc.apptRepo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return toAppointmentResponse(appt), nil
}

// Cancel cancela una cita con motivo. Estados terminales no se pueden cancelar.
func (uc *UseCase) Cancel(ctx context.Context, appointmentID, branchID, reason string) (*dto.AppointmentResponse, error) {
	if reason == "" {
		return nil, domain.ErrInvalidInput
	}
	appt, err := uc.getOwned(ctx, appointmentID, branchID)
	if err != nil {
		return nil, err
	}
	if appt.IsTerminal() {
		return nil, domain.ErrAppointmentNotPending
	}

	appt.State = entity.AppointmentCancelled
	appt.CancelReason = reason
	appt.UpdatedAt = time.Now()
	if err := uc.apptRepo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return toAppointmentResponse(appt), nil
}

// GetByID obtiene una cita de la sucursal activa.
func (uc *UseCase) GetByID(ctx context.Context, appointmentID, branchID string) (*dto.AppointmentResponse, error) {
	appt, err := uc.getOwned(ctx, appointmentID, branchID)
	if err != nil {
		return nil, err
	}
	return toAppointmentResponse(appt), nil
}

// List lista citas de la sucursal, opcionalmente por rango de fechas.
func (uc *UseCase) List(ctx context.Context, branchID string, from, to *time.Time, limit, offset int) (*dto.AppointmentListResponse, error) {
	list, err := uc.apptRepo.ListByBranch(ctx, branchID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AppointmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAppointmentResponse(a))
	}
	return &dto.AppointmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func (uc *UseCase) getOwned(ctx context.Context, appointmentID, branchID string) (*entity.Appointment, error) {
	appt, err := uc.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt == nil {
		return nil, domain.ErrNotFound
	}
	if appt.BranchID != branchID {
		return nil, domain.ErrBranchMismatch
	}
	return appt, nil
}

func toAppointmentResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}
	return &dto.AppointmentResponse{
		ID:           a.ID,
		BranchID:     a.BranchID,
		CustomerID:   a.CustomerID,
		EmployeeID:   a.EmployeeID,
		ServiceIDs:   a.ServiceIDs,
		ScheduledAt:  a.ScheduledAt,
		Total:        a.Total,
		Deposit:      a.Deposit,
		State:        a.State,
		CancelReason: a.CancelReason,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

package appointment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ksalazar-dev/salon-api/internal/domain"
	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

// ReceiptLine línea de servicio en el recibo.
type ReceiptLine struct {
	ServiceName string
	Price       decimal.Decimal
}

// ReceiptData datos necesarios para renderizar el recibo de una cita cerrada.
type ReceiptData struct {
	Appointment *entity.Appointment
	Branch      *entity.Branch
	Customer    *entity.Customer
	Lines       []ReceiptLine
	IssuedAt    time.Time
}

// ReceiptUseCase arma los datos del recibo de una cita cerrada y delega el
// render al generador PDF.
type ReceiptUseCase struct {
	apptRepo     repository.AppointmentRepository
	branchRepo   repository.BranchRepository
	customerRepo repository.CustomerRepository
	serviceRepo  repository.ServiceRepository
	generator    ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso de recibos.
func NewReceiptUseCase(
	apptRepo repository.AppointmentRepository,
	branchRepo repository.BranchRepository,
	customerRepo repository.CustomerRepository,
	serviceRepo repository.ServiceRepository,
	generator ReceiptGenerator,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		apptRepo:     apptRepo,
		branchRepo:   branchRepo,
		customerRepo: customerRepo,
		serviceRepo:  serviceRepo,
		generator:    generator,
	}
}

// Generate genera el PDF del recibo. Solo citas cerradas tienen recibo.
func (uc *ReceiptUseCase) Generate(ctx context.Context, appointmentID, branchID string) ([]byte, error) {
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
	if appt.State != entity.AppointmentClosed {
		return nil, domain.ErrConflict
	}

	branch, err := uc.branchRepo.GetByID(ctx, branchID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(ctx, appt.CustomerID)
	if err != nil {
		return nil, err
	}
	if branch == nil || customer == nil {
		return nil, domain.ErrNotFound
	}

	lines := make([]ReceiptLine, 0, len(appt.ServiceIDs))
	for _, serviceID := range appt.ServiceIDs {
		svc, err := uc.serviceRepo.GetByID(ctx, serviceID)
		if err != nil {
			return nil, err
		}
		if svc == nil {
			continue // servicio retirado del catálogo después del cierre
		}
		lines = append(lines, ReceiptLine{ServiceName: svc.Name, Price: svc.Price})
	}

	return uc.generator.GenerateReceipt(ctx, &ReceiptData{
		Appointment: appt,
		Branch:      branch,
		Customer:    customer,
		Lines:       lines,
		IssuedAt:    time.Now(),
	})
}

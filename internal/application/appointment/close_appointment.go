package appointment

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ksalazar-dev/salon-api/internal/application/dto"
	"github.com/ksalazar-dev/salon-api/internal/domain"
	"github.com/ksalazar-dev/salon-api/internal/domain/entity"
	"github.com/ksalazar-dev/salon-api/internal/domain/loyalty"
	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

// CloseAppointmentUseCase cierra una cita de forma transaccional: descuenta
// existencias según las recetas de sus servicios, acredita puntos al cliente,
// registra la comisión del empleado (si hay) y deja rastro en auditoría, todo
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type CloseAppointmentUseCase struct {
	txRunner     TxRunner
	apptRepo     repository.AppointmentRepository
	recipeRepo   repository.RecipeRepository
	employeeRepo repository.EmployeeRepository
	pointsRate   decimal.Decimal
}

// NewCloseAppointmentUseCase construye el caso de uso. pointsRate es la tasa
// de puntos por unidad monetaria (LOYALTY_POINTS_RATE).
func NewCloseAppointmentUseCase(
	txRunner TxRunner,
	apptRepo repository.AppointmentRepository,
	recipeRepo repository.RecipeRepository,
	employeeRepo repository.EmployeeRepository,
	pointsRate decimal.Decimal,
) *CloseAppointmentUseCase {
	return &CloseAppointmentUseCase{
		txRunner:     txRunner,
		apptRepo:     apptRepo,
		recipeRepo:   recipeRepo,
		employeeRepo: employeeRepo,
		pointsRate:   pointsRate,
	}
}

// materialNeed requerimiento agregado de un material para la cita.
type materialNeed struct {
	materialID string
	quantity   decimal.Decimal
}

// Close intenta transicionar la cita a cerrada. Precondiciones en orden:
// existe → sucursal correcta → estado cerrable → receta resuelta. Los efectos
// (descuento de existencias, puntos, comisión, auditoría, cambio de estado)
// se ejecutan dentro de una sola transacción; cualquier fallo revierte todo.
func (uc *CloseAppointmentUseCase) Close(ctx context.Context, appointmentID, branchID, userID string) (*dto.CloseAppointmentResponse, error) {
	if appointmentID == "" || branchID == "" {
		return nil, domain.ErrInvalidInput
	}

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
	if !appt.CanClose() {
		return nil, domain.ErrAppointmentNotPending
	}

	// Resolver recetas fuera de la tx (solo lectura). Receta vacía es válida:
	// no hay existencias que verificar.
	needs, err := uc.resolveNeeds(ctx, appt.ServiceIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
	err = uc.txRunner.Run(ctx, func(
		apptRepo repository.AppointmentRepository,
		stockRepo repository.StockRepository,
		pointsRepo repository.PointsRepository,
		commissionRepo repository.CommissionRepository,
		auditRepo repository.AuditRepository,
	) error {
		// Re-leer la cita con bloqueo de fila: de dos cierres concurrentes solo
		// uno observa el estado cerrable; el otro falla aquí con conflicto.
		locked, err := apptRepo.GetForUpdate(ctx, appt.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if !locked.CanClose() {
			return domain.ErrAppointmentNotPending
		}

		// 1) Verificar y descontar existencias por material.
		for _, need := range needs {
			stock, err := stockRepo.GetForUpdate(ctx, branchID, need.materialID)
			if err != nil {
				return err
			}
			if stock == nil || stock.Quantity.LessThan(need.quantity) {
				return domain.ErrInsufficientStock
			}
			stock.Quantity = stock.Quantity.Sub(need.quantity)
			stock.UpdatedAt = now
			if err := stockRepo.Upsert(ctx, stock); err != nil {
				return err
			}
		}

		// 2) Acreditar puntos al cliente (proporcional al total).
		points := loyalty.EarnedPoints(locked.Total, uc.pointsRate)
		if points.GreaterThan(decimal.Zero) {
			entry := &entity.PointsEntry{
				ID:         uuid.New().String(),
				CustomerID: locked.CustomerID,
				BranchID:   branchID,
				Type:       entity.PointsEarn,
				Amount:     points,
				Reference:  locked.ID,
				CreatedAt:  now,
			}
			if err := pointsRepo.Create(ctx, entry); err != nil {
				return err
			}
		}

		// 3) Comisión del empleado: total * pct / 100. El empleado se resuelve
		// desde la fila bloqueada: una confirmación concurrente pudo asignarlo
		// después de la lectura inicial.
		if locked.EmployeeID != "" {
			emp, err := uc.employeeRepo.GetByID(ctx, locked.EmployeeID)
			if err != nil {
				return err
			}
			if emp == nil {
				return domain.ErrNotFound
			}
			amount := locked.Total.Mul(emp.CommissionPct).Div(decimal.NewFromInt(100)).Round(2)
			if amount.GreaterThan(decimal.Zero) {
				entry := &entity.CommissionEntry{
					ID:            uuid.New().String(),
					EmployeeID:    locked.EmployeeID,
					BranchID:      branchID,
					AppointmentID: locked.ID,
					Amount:        amount,
					Pct:           emp.CommissionPct,
					CreatedAt:     now,
				}
				if err := commissionRepo.Create(ctx, entry); err != nil {
					return err
				}
			}
		}

		// 4) Auditoría del cierre.
		audit := &entity.AuditEntry{
			ID:          uuid.New().String(),
			Entity:      "cita",
			EntityID:    locked.ID,
			Action:      entity.AuditActionClosed,
			Description: fmt.Sprintf("cita %s cerrada por un total de %s", locked.ID, locked.Total.StringFixed(2)),
			BranchID:    branchID,
			UserID:      userID,
			CreatedAt:   now,
		}
		if err := auditRepo.Create(ctx, audit); err != nil {
			return err
		}

		// 5) Estado terminal.
		return apptRepo.UpdateState(ctx, locked.ID, entity.AppointmentClosed)
	})
	if err != nil {
		return nil, err
	}

	return &dto.CloseAppointmentResponse{
		ID:       appt.ID,
		BranchID: branchID,
		State:    entity.AppointmentClosed,
		Message:  "cita cerrada correctamente",
	}, nil
}

// resolveNeeds agrega las recetas de todos los servicios de la cita en un
// requerimiento por material, ordenado por ID. El orden fijo de bloqueo de
// filas de existencias evita interbloqueos entre cierres concurrentes.
func (uc *CloseAppointmentUseCase) resolveNeeds(ctx context.Context, serviceIDs []string) ([]materialNeed, error) {
	byMaterial := make(map[string]decimal.Decimal)
	for _, serviceID := range serviceIDs {
		items, err := uc.recipeRepo.ListByService(ctx, serviceID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if !item.Quantity.GreaterThan(decimal.Zero) {
				continue
			}
			byMaterial[item.MaterialID] = byMaterial[item.MaterialID].Add(item.Quantity)
		}
	}

	needs := make([]materialNeed, 0, len(byMaterial))
	for materialID, qty := range byMaterial {
		needs = append(needs, materialNeed{materialID: materialID, quantity: qty})
	}
	sort.Slice(needs, func(i, j int) bool { return needs[i].materialID < needs[j].materialID })
	return needs, nil
}

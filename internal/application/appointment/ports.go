package appointment

import (
	"context"

	"github.com/ksalazar-dev/salon-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el cierre de citas:
// o se confirman existencias, puntos, comisión, auditoría y el nuevo estado
// de la cita, o no se confirma nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		apptRepo repository.AppointmentRepository,
		stockRepo repository.StockRepository,
		pointsRepo repository.PointsRepository,
		commissionRepo repository.CommissionRepository,
		auditRepo repository.AuditRepository,
	) error) error
}

// ReceiptGenerator genera el recibo PDF de una cita cerrada.
type ReceiptGenerator interface {
	GenerateReceipt(ctx context.Context, data *ReceiptData) ([]byte, error)
}

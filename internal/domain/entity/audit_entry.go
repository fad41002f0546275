package entity

import "time"

// Acciones de auditoría registradas por la aplicación.
const (
	AuditActionClosed   = "cerrada"
	AuditActionAdjusted = "ajuste"
	AuditActionRedeemed = "canje"
)

// AuditEntry es un registro append-only del log de auditoría.
type AuditEntry struct {
	ID          string
	Entity      string // cita, existencia, puntos...
	EntityID    string
	Action      string
	Description string
	BranchID    string
	UserID      string
	CreatedAt   time.Time
}

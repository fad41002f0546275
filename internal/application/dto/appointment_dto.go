package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAppointmentRequest body para POST /api/citas.
type CreateAppointmentRequest struct {
	CustomerID  string           `json:"customer_id"`
	ServiceIDs  []string         `json:"service_ids"`
	ScheduledAt time.Time        `json:"scheduled_at"`
	Deposit     *decimal.Decimal `json:"deposit,omitempty"` // anticipo
}

// ConfirmAppointmentRequest body para PUT /api/citas/:id/confirmar.
type ConfirmAppointmentRequest struct {
	EmployeeID string `json:"employee_id"`
}

// CancelAppointmentRequest body para PUT /api/citas/:id/cancelar.
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// AppointmentResponse representación de una cita.
type AppointmentResponse struct {
	ID           string          `json:"id"`
	BranchID     string          `json:"branch_id"`
	CustomerID   string          `json:"customer_id"`
	EmployeeID   string          `json:"employee_id,omitempty"`
	ServiceIDs   []string        `json:"service_ids"`
	ScheduledAt  time.Time       `json:"scheduled_at"`
	Total        decimal.Decimal `json:"total"`
	Deposit      decimal.Decimal `json:"deposit"`
	State        string          `json:"state"`
	CancelReason string          `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AppointmentListResponse listado paginado de citas.
type AppointmentListResponse struct {
	Items []AppointmentResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// CloseAppointmentResponse resultado de PUT /api/citas/:id/cerrar.
type CloseAppointmentResponse struct {
	ID       string `json:"id"`
	BranchID string `json:"branch_id"`
	State    string `json:"state"`
	Message  string `json:"message"`
}

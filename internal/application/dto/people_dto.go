package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/clientes.
type CreateCustomerRequest struct {
	Name   string `json:"name"`
	Cedula string `json:"cedula"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/clientes/:id (campos opcionales).
type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// CustomerResponse representación de un cliente.
type CustomerResponse struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	Name      string    `json:"name"`
	Cedula    string    `json:"cedula"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse listado paginado de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateEmployeeRequest body para POST /api/empleados.
type CreateEmployeeRequest struct {
	Name          string          `json:"name"`
	Email         string          `json:"email,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	CommissionPct decimal.Decimal `json:"commission_pct"`
}

// UpdateEmployeeRequest body para PUT /api/empleados/:id (campos opcionales).
type UpdateEmployeeRequest struct {
	Name          *string          `json:"name,omitempty"`
	Email         *string          `json:"email,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	CommissionPct *decimal.Decimal `json:"commission_pct,omitempty"`
	Active        *bool            `json:"active,omitempty"`
}

// EmployeeResponse representación de un empleado.
type EmployeeResponse struct {
	ID            string          `json:"id"`
	BranchID      string          `json:"branch_id"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	CommissionPct decimal.Decimal `json:"commission_pct"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// EmployeeListResponse listado paginado de empleados.
type EmployeeListResponse struct {
	Items []EmployeeResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CommissionEntryResponse comisión registrada para un empleado.
type CommissionEntryResponse struct {
	ID            string          `json:"id"`
	BranchID      string          `json:"branch_id"`
	AppointmentID string          `json:"appointment_id"`
	Amount        decimal.Decimal `json:"amount"`
	Pct           decimal.Decimal `json:"pct"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CommissionStatementResponse comisiones + total del período.
type CommissionStatementResponse struct {
	EmployeeID string                    `json:"employee_id"`
	Total      decimal.Decimal           `json:"total"`
	Entries    []CommissionEntryResponse `json:"entries"`
	Page       PageResponse              `json:"page"`
}

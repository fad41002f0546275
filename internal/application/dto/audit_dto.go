package dto

import "time"

// AuditEntryResponse registro del log de auditoría.
type AuditEntryResponse struct {
	ID          string    `json:"id"`
	Entity      string    `json:"entity"`
	EntityID    string    `json:"entity_id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	BranchID    string    `json:"branch_id"`
	UserID      string    `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuditListResponse listado paginado de auditoría.
type AuditListResponse struct {
	Items []AuditEntryResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

package entity

import "time"

// Customer representa un cliente del salón.
type Customer struct {
	ID        string
	BranchID  string
	Name      string
	Cedula    string // documento de identidad
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

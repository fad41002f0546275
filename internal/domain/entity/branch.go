package entity

import "time"

// Branch representa una sucursal del salón. Toda entidad operativa
// (citas, existencias, ledgers) está particionada por sucursal.
type Branch struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package entity

import "time"

// Material representa un insumo consumible (tinte, esmalte, cera...).
type Material struct {
	ID        string
	Name      string
	Unit      string // ml, gr, unidad
	CreatedAt time.Time
	UpdatedAt time.Time
}

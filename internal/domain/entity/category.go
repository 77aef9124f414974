package entity

import "time"

// Category representa una categoría del catálogo.
type Category struct {
	ID        int64
	Name      string
	Slug      string
	Status    string // active, inactive
	CreatedAt time.Time
}

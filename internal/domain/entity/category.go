package entity

import "time"

// Category agrupa ítems del menú (ej. "burgers", "drinks").
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

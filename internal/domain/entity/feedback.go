package entity

import "time"

// Feedback es una nota enviada por un vendedor desde el punto de venta.
type Feedback struct {
	ID        string
	Username  string
	Message   string
	CreatedAt time.Time
}

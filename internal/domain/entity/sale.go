package entity

import "time"

// Sale representa una venta registrada. Es append-only: nunca se modifica
// después de creada. OccurredAt es la fecha de la venta (agrupa el forecast
// por su mes calendario).
type Sale struct {
	ID         string
	ProductID  string
	Quantity   int64 // siempre >= 0
	OccurredAt time.Time
	RecordedBy string // username del vendedor
	CreatedAt  time.Time
}

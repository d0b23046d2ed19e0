package dto

import "time"

// RecordSaleRequest entrada para registrar una venta.
// OccurredAt vacío usa la fecha actual.
type RecordSaleRequest struct {
	ProductID  string    `json:"product_id" validate:"required"`
	Quantity   int64     `json:"quantity" validate:"required,min=1"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SaleResponse salida de una venta registrada.
type SaleResponse struct {
	ID         string    `json:"id"`
	ProductID  string    `json:"product_id"`
	Quantity   int64     `json:"quantity"`
	OccurredAt time.Time `json:"occurred_at"`
	RecordedBy string    `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
}

// SubmitFeedbackRequest entrada para enviar una nota de feedback.
type SubmitFeedbackRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

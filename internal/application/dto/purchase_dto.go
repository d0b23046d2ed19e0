package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePORequest entrada para crear una orden de compra (nace en "draft").
type CreatePORequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Supplier  string          `json:"supplier" validate:"required,max=200"`
	Quantity  int64           `json:"quantity" validate:"required,min=1"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Supplier  string          `json:"supplier"`
	Quantity  int64           `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Total     decimal.Decimal `json:"total"`
	Status    string          `json:"status"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

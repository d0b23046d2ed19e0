package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para dar de alta un producto en el inventario.
type CreateProductRequest struct {
	SKU      string          `json:"sku" validate:"required,max=50"`
	Name     string          `json:"name" validate:"required,max=200"`
	Stock    int64           `json:"stock" validate:"min=0"`
	MinStock int64           `json:"min_stock" validate:"min=0"`
	Price    decimal.Decimal `json:"price"`
}

// ProductResponse salida de un producto del inventario.
type ProductResponse struct {
	ID       string          `json:"id"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Stock    int64           `json:"stock"`
	MinStock int64           `json:"min_stock"`
	Price    decimal.Decimal `json:"price"`
	LowStock bool            `json:"low_stock"`
}

// UpdateStockRequest entrada para fijar o ajustar el stock de un producto.
// Type: "update" fija el valor absoluto; "adjust" suma el delta (puede ser negativo).
type UpdateStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity"`
	Type      string `json:"type" validate:"required,oneof=update adjust"`
}

// IssueStockRequest entrada para registrar una salida de bodega.
type IssueStockRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
	Notes     string `json:"notes" validate:"omitempty,max=500"`
}

// ReportFaultyRequest entrada para dar de baja unidades defectuosas.
type ReportFaultyRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
	Notes     string `json:"notes" validate:"omitempty,max=500"`
}

// AvailabilityResponse salida de la consulta de disponibilidad.
type AvailabilityResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Stock     int64  `json:"stock"`
	Available bool   `json:"available"`
}

// MovementResponse salida de un movimiento de stock.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"type"`
	Quantity  int64     `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

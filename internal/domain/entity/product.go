package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Stock y MinStock son unidades enteras; Price es el precio de venta unitario.
type Product struct {
	ID        string
	SKU       string // código único
	Name      string
	Stock     int64
	MinStock  int64 // umbral de alerta de stock bajo
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LowStock indica si el producto está en o por debajo del umbral mínimo.
func (p Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

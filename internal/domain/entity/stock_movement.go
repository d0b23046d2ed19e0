package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeUpdate = "update" // fija el stock en un valor absoluto
	MovementTypeAdjust = "adjust" // suma (o resta) un delta
	MovementTypeIssue  = "issue"  // salida de bodega
	MovementTypeFaulty = "faulty" // baja por unidades defectuosas
	MovementTypeSale   = "sale"   // salida por venta registrada
)

// StockMovement es el rastro auditable de cada cambio de stock.
// Quantity es el delta aplicado (negativo para salidas); para "update"
// guarda el valor absoluto fijado.
type StockMovement struct {
	ID        string
	ProductID string
	Type      string
	Quantity  int64
	Notes     string
	CreatedBy string // username
	CreatedAt time.Time
}

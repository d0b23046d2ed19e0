package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// POStatus es el estado de una orden de compra.
type POStatus string

// Estados válidos de PurchaseOrder. El flujo normal es
// draft → pending → shipped → delivered; cancelled es terminal desde
// cualquier estado no terminal.
const (
	POStatusDraft     POStatus = "draft"
	POStatusPending   POStatus = "pending"
	POStatusShipped   POStatus = "shipped"
	POStatusDelivered POStatus = "delivered"
	POStatusCancelled POStatus = "cancelled"
)

// Terminal indica si el estado no admite más transiciones.
func (s POStatus) Terminal() bool {
	return s == POStatusDelivered || s == POStatusCancelled
}

// CanTransitionTo valida la transición de estado.
func (s POStatus) CanTransitionTo(next POStatus) bool {
	if next == POStatusCancelled {
		return !s.Terminal()
	}
	switch s {
	case POStatusDraft:
		return next == POStatusPending
	case POStatusPending:
		return next == POStatusShipped
	case POStatusShipped:
		return next == POStatusDelivered
	}
	return false
}

// PurchaseOrder representa una orden de compra a un proveedor.
type PurchaseOrder struct {
	ID        string
	ProductID string
	Supplier  string
	Quantity  int64
	UnitCost  decimal.Decimal
	Total     decimal.Decimal // Quantity * UnitCost al momento de crear
	Status    POStatus
	CreatedBy string // username del comprador
	CreatedAt time.Time
	UpdatedAt time.Time
}

package repository

import "github.com/jhoicas/inventario-core/internal/domain/entity"

// PurchaseOrderRepository define el puerto de persistencia para PurchaseOrder (DIP).
// GetByID devuelve (nil, nil) cuando la orden no existe.
type PurchaseOrderRepository interface {
	Create(po *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	UpdateStatus(id string, status entity.POStatus) error
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	CountByStatus(status entity.POStatus) (int, error)
}

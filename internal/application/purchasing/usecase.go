// Package purchasing implementa las órdenes de compra: creación en borrador,
// listado para seguimiento y transiciones de estado para revisión.
package purchasing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-core/internal/application/auth"
	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

// permissionChecker contrato mínimo para autorizar operaciones (lo implementa *auth.Authority).
type permissionChecker interface {
	CurrentSession() (*auth.Session, error)
}

// UseCase casos de uso de compras.
type UseCase struct {
	orders   repository.PurchaseOrderRepository
	products repository.ProductRepository
	authz    permissionChecker
}

// NewUseCase construye el caso de uso de compras.
func NewUseCase(orders repository.PurchaseOrderRepository, products repository.ProductRepository, authz permissionChecker) *UseCase {
	return &UseCase{orders: orders, products: products, authz: authz}
}

func (uc *UseCase) session() (*auth.Session, error) {
	s, err := uc.authz.CurrentSession()
	if err != nil {
		return nil, fmt.Errorf("verificar sesión: %w", err)
	}
	return s, nil
}

func (uc *UseCase) authorize(f auth.Feature) (*auth.Session, error) {
	s, err := uc.session()
	if err != nil {
		return nil, err
	}
	if s == nil || !auth.RoleAllows(s.Role, f) {
		return nil, domain.ErrUnauthorized
	}
	return s, nil
}

// Create crea una orden de compra en estado draft. Requiere create_po.
func (uc *UseCase) Create(in dto.CreatePORequest) (*dto.PurchaseOrderResponse, error) {
	s, err := uc.authorize(auth.FeatureCreatePO)
	if err != nil {
		return nil, err
	}
	if in.Supplier == "" || in.Quantity <= 0 || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Supplier:  in.Supplier,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Total:     in.UnitCost.Mul(decimal.NewFromInt(in.Quantity)),
		Status:    entity.POStatusDraft,
		CreatedBy: s.Username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.orders.Create(po); err != nil {
		return nil, err
	}
	return toPOResponse(po), nil
}

// List devuelve las órdenes de compra. La habilitan track_orders (comprador)
// o manage_po (gerente): ambas pantallas existían sobre el mismo listado.
func (uc *UseCase) List(page dto.PageRequest) ([]dto.PurchaseOrderResponse, error) {
	s, err := uc.session()
	if err != nil {
		return nil, err
	}
	if s == nil || (!auth.RoleAllows(s.Role, auth.FeatureTrackOrders) && !auth.RoleAllows(s.Role, auth.FeatureManagePO)) {
		return nil, domain.ErrUnauthorized
	}
	page.DefaultPage()
	orders, err := uc.orders.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, po := range orders {
		out = append(out, *toPOResponse(po))
	}
	return out, nil
}

// UpdateStatus avanza el estado de una orden. El flujo válido es
// draft → pending → shipped → delivered; cancelled es alcanzable desde
// cualquier estado no terminal. Transición inválida → ErrConflict.
// Requiere manage_po.
func (uc *UseCase) UpdateStatus(id string, status entity.POStatus) (*dto.PurchaseOrderResponse, error) {
	if _, err := uc.authorize(auth.FeatureManagePO); err != nil {
		return nil, err
	}
	switch status {
	case entity.POStatusPending, entity.POStatusShipped, entity.POStatusDelivered, entity.POStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}
	po, err := uc.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	if !po.Status.CanTransitionTo(status) {
		return nil, domain.ErrConflict
	}
	if err := uc.orders.UpdateStatus(po.ID, status); err != nil {
		return nil, err
	}
	po.Status = status
	po.UpdatedAt = time.Now()
	return toPOResponse(po), nil
}

func toPOResponse(po *entity.PurchaseOrder) *dto.PurchaseOrderResponse {
	if po == nil {
		return nil
	}
	return &dto.PurchaseOrderResponse{
		ID:        po.ID,
		ProductID: po.ProductID,
		Supplier:  po.Supplier,
		Quantity:  po.Quantity,
		UnitCost:  po.UnitCost,
		Total:     po.Total,
		Status:    string(po.Status),
		CreatedBy: po.CreatedBy,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}
}

// Package inventory implementa las operaciones de inventario: consulta,
// actualización y ajuste de stock, salidas de bodega y bajas por defecto.
package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-core/internal/application/auth"
	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

// permissionChecker es el contrato mínimo para autorizar operaciones.
// Lo implementa *auth.Authority; la interfaz evita acoplar el paquete a la
// autoridad concreta y facilita los tests.
type permissionChecker interface {
	CurrentSession() (*auth.Session, error)
}

// UseCase casos de uso de inventario.
type UseCase struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	authz     permissionChecker
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(products repository.ProductRepository, movements repository.StockMovementRepository, authz permissionChecker) *UseCase {
	return &UseCase{products: products, movements: movements, authz: authz}
}

// authorize exige una sesión vigente cuyo rol tenga la feature.
// Devuelve la sesión para atribuir la operación (CreatedBy).
func (uc *UseCase) authorize(f auth.Feature) (*auth.Session, error) {
	s, err := uc.authz.CurrentSession()
	if err != nil {
		return nil, fmt.Errorf("verificar sesión: %w", err)
	}
	if s == nil || !auth.RoleAllows(s.Role, f) {
		return nil, domain.ErrUnauthorized
	}
	return s, nil
}

// Create da de alta un producto con su stock inicial. Requiere update_stock.
func (uc *UseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := uc.authorize(auth.FeatureUpdateStock); err != nil {
		return nil, err
	}
	if in.SKU == "" || in.Name == "" || in.Stock < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       in.SKU,
		Name:      in.Name,
		Stock:     in.Stock,
		MinStock:  in.MinStock,
		Price:     in.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List devuelve el inventario. Requiere view_inventory.
func (uc *UseCase) List(page dto.PageRequest) ([]dto.ProductResponse, error) {
	if _, err := uc.authorize(auth.FeatureViewInventory); err != nil {
		return nil, err
	}
	page.DefaultPage()
	products, err := uc.products.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// CheckAvailability consulta el stock disponible de un producto. Requiere check_stock.
func (uc *UseCase) CheckAvailability(productID string) (*dto.AvailabilityResponse, error) {
	if _, err := uc.authorize(auth.FeatureCheckStock); err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.AvailabilityResponse{
		ProductID: product.ID,
		Name:      product.Name,
		Stock:     product.Stock,
		Available: product.Stock > 0,
	}, nil
}

// UpdateStock fija ("update") o ajusta ("adjust") el stock de un producto y
// registra el movimiento. Requiere update_stock. Un ajuste que dejaría el
// stock negativo falla con ErrInsufficientStock.
func (uc *UseCase) UpdateStock(in dto.UpdateStockRequest) (*dto.ProductResponse, error) {
	s, err := uc.authorize(auth.FeatureUpdateStock)
	if err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var newStock int64
	switch in.Type {
	case entity.MovementTypeUpdate:
		if in.Quantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		newStock = in.Quantity
	case entity.MovementTypeAdjust:
		newStock = product.Stock + in.Quantity
		if newStock < 0 {
			return nil, domain.ErrInsufficientStock
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	if err := uc.products.UpdateStock(product.ID, newStock); err != nil {
		return nil, err
	}
	product.Stock = newStock
	uc.recordMovement(product.ID, in.Type, in.Quantity, "", s.Username)
	return toProductResponse(product), nil
}

// IssueStock registra una salida de bodega. Requiere issue_stock.
func (uc *UseCase) IssueStock(in dto.IssueStockRequest) (*dto.ProductResponse, error) {
	s, err := uc.authorize(auth.FeatureIssueStock)
	if err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.Stock < in.Quantity {
		return nil, domain.ErrInsufficientStock
	}
	newStock := product.Stock - in.Quantity
	if err := uc.products.UpdateStock(product.ID, newStock); err != nil {
		return nil, err
	}
	product.Stock = newStock
	uc.recordMovement(product.ID, entity.MovementTypeIssue, -in.Quantity, in.Notes, s.Username)
	return toProductResponse(product), nil
}

// ReportFaulty da de baja unidades defectuosas. La baja se acota al stock
// disponible (el stock nunca queda negativo). Requiere report_faulty.
func (uc *UseCase) ReportFaulty(in dto.ReportFaultyRequest) (*dto.ProductResponse, error) {
	s, err := uc.authorize(auth.FeatureReportFaulty)
	if err != nil {
		return nil, err
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	deducted := in.Quantity
	if deducted > product.Stock {
		deducted = product.Stock
	}
	newStock := product.Stock - deducted
	if err := uc.products.UpdateStock(product.ID, newStock); err != nil {
		return nil, err
	}
	product.Stock = newStock
	uc.recordMovement(product.ID, entity.MovementTypeFaulty, -deducted, in.Notes, s.Username)
	return toProductResponse(product), nil
}

// Movements devuelve el historial de movimientos de un producto. Requiere view_warehouse.
func (uc *UseCase) Movements(productID string, page dto.PageRequest) ([]dto.MovementResponse, error) {
	if _, err := uc.authorize(auth.FeatureViewWarehouse); err != nil {
		return nil, err
	}
	page.DefaultPage()
	movements, err := uc.movements.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Notes:     m.Notes,
			CreatedBy: m.CreatedBy,
			CreatedAt: m.CreatedAt,
		})
	}
	return out, nil
}

// recordMovement persiste el rastro del cambio de stock. Un fallo aquí no
// revierte la operación principal: el movimiento es auditoría, no fuente de verdad.
func (uc *UseCase) recordMovement(productID, movType string, quantity int64, notes, username string) {
	_ = uc.movements.Create(&entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Type:      movType,
		Quantity:  quantity,
		Notes:     notes,
		CreatedBy: username,
		CreatedAt: time.Now(),
	})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:       p.ID,
		SKU:      p.SKU,
		Name:     p.Name,
		Stock:    p.Stock,
		MinStock: p.MinStock,
		Price:    p.Price,
		LowStock: p.LowStock(),
	}
}

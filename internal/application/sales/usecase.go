// Package sales implementa el registro de ventas (con descuento de stock),
// la consulta del histórico y el envío de feedback desde el punto de venta.
package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

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

// UseCase casos de uso de ventas.
type UseCase struct {
	products  repository.ProductRepository
	sales     repository.SaleRepository
	movements repository.StockMovementRepository
	feedback  repository.FeedbackRepository
	authz     permissionChecker
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(
	products repository.ProductRepository,
	sales repository.SaleRepository,
	movements repository.StockMovementRepository,
	feedback repository.FeedbackRepository,
	authz permissionChecker,
) *UseCase {
	return &UseCase{products: products, sales: sales, movements: movements, feedback: feedback, authz: authz}
}

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

// RecordSale registra una venta: valida stock suficiente, descuenta el stock
// del producto y agrega la venta al histórico (append-only, nunca se edita).
// Requiere record_sale.
func (uc *UseCase) RecordSale(in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	s, err := uc.authorize(auth.FeatureRecordSale)
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

	if err := uc.products.UpdateStock(product.ID, product.Stock-in.Quantity); err != nil {
		return nil, err
	}

	now := time.Now()
	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		ProductID:  product.ID,
		Quantity:   in.Quantity,
		OccurredAt: occurredAt,
		RecordedBy: s.Username,
		CreatedAt:  now,
	}
	if err := uc.sales.Create(sale); err != nil {
		return nil, err
	}

	// Rastro de auditoría; no es fuente de verdad del stock.
	_ = uc.movements.Create(&entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Type:      entity.MovementTypeSale,
		Quantity:  -in.Quantity,
		Notes:     "venta " + sale.ID,
		CreatedBy: s.Username,
		CreatedAt: now,
	})

	return toSaleResponse(sale), nil
}

// List devuelve el histórico completo de ventas (alimenta el forecast).
// Requiere view_reports.
func (uc *UseCase) List() ([]dto.SaleResponse, error) {
	if _, err := uc.authorize(auth.FeatureViewReports); err != nil {
		return nil, err
	}
	sales, err := uc.sales.ListAll()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for _, sale := range sales {
		out = append(out, *toSaleResponse(sale))
	}
	return out, nil
}

// SubmitFeedback guarda una nota enviada desde el punto de venta. Requiere submit_feedback.
func (uc *UseCase) SubmitFeedback(in dto.SubmitFeedbackRequest) error {
	s, err := uc.authorize(auth.FeatureSubmitFeedback)
	if err != nil {
		return err
	}
	message := strings.TrimSpace(in.Message)
	if message == "" {
		return domain.ErrInvalidInput
	}
	return uc.feedback.Create(&entity.Feedback{
		ID:        uuid.New().String(),
		Username:  s.Username,
		Message:   message,
		CreatedAt: time.Now(),
	})
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	if s == nil {
		return nil
	}
	return &dto.SaleResponse{
		ID:         s.ID,
		ProductID:  s.ProductID,
		Quantity:   s.Quantity,
		OccurredAt: s.OccurredAt,
		RecordedBy: s.RecordedBy,
		CreatedAt:  s.CreatedAt,
	}
}

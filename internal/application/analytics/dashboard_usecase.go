// Package analytics contiene los casos de uso del tablero: tarjetas de
// resumen y la serie de demanda con su proyección.
package analytics

import (
	"fmt"

	"github.com/jhoicas/inventario-core/internal/application/auth"
	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/application/forecast"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
	"github.com/jhoicas/inventario-core/internal/domain/repository"
)

// permissionChecker contrato mínimo para autorizar operaciones (lo implementa *auth.Authority).
type permissionChecker interface {
	CurrentSession() (*auth.Session, error)
}

// DashboardUseCase genera el resumen del tablero y el forecast de demanda.
//
// No mantiene estado: cada llamada recalcula sobre el conjunto completo de
// registros que entregan los repositorios.
type DashboardUseCase struct {
	products repository.ProductRepository
	orders   repository.PurchaseOrderRepository
	sales    repository.SaleRepository
	engine   *forecast.Engine
	authz    permissionChecker
}

// NewDashboardUseCase construye el caso de uso del tablero.
func NewDashboardUseCase(
	products repository.ProductRepository,
	orders repository.PurchaseOrderRepository,
	sales repository.SaleRepository,
	engine *forecast.Engine,
	authz permissionChecker,
) *DashboardUseCase {
	return &DashboardUseCase{products: products, orders: orders, sales: sales, engine: engine, authz: authz}
}

func (uc *DashboardUseCase) authorize(f auth.Feature) error {
	s, err := uc.authz.CurrentSession()
	if err != nil {
		return fmt.Errorf("verificar sesión: %w", err)
	}
	if s == nil || !auth.RoleAllows(s.Role, f) {
		return domain.ErrUnauthorized
	}
	return nil
}

// GetSummary construye las tarjetas del tablero. Requiere view_reports.
func (uc *DashboardUseCase) GetSummary() (*dto.DashboardSummaryDTO, error) {
	if err := uc.authorize(auth.FeatureViewReports); err != nil {
		return nil, err
	}

	products, err := uc.products.List(0, 0) // limit <= 0: inventario completo
	if err != nil {
		return nil, fmt.Errorf("dashboard: inventario: %w", err)
	}
	summary := &dto.DashboardSummaryDTO{TotalSKUs: len(products)}
	for _, p := range products {
		summary.InStockUnits += p.Stock
		if p.LowStock() {
			summary.LowStockAlerts++
		}
	}

	open, err := uc.orders.CountByStatus(entity.POStatusPending)
	if err != nil {
		return nil, fmt.Errorf("dashboard: órdenes abiertas: %w", err)
	}
	shipped, err := uc.orders.CountByStatus(entity.POStatusShipped)
	if err != nil {
		return nil, fmt.Errorf("dashboard: entregas próximas: %w", err)
	}
	summary.OpenPOs = open
	summary.UpcomingDeliveries = shipped

	return summary, nil
}

// GetDemandForecast devuelve la serie mensual observada y la proyección de
// forecast.DefaultHorizon meses. Requiere view_forecast.
func (uc *DashboardUseCase) GetDemandForecast() (*dto.DemandForecastDTO, error) {
	if err := uc.authorize(auth.FeatureViewForecast); err != nil {
		return nil, err
	}
	sales, err := uc.sales.ListAll()
	if err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", err)
	}
	actual := uc.engine.AggregateMonthly(sales)
	projected := uc.engine.Forecast(actual, forecast.DefaultHorizon)
	return &dto.DemandForecastDTO{
		Actual:    toBucketDTOs(actual),
		Projected: toBucketDTOs(projected),
	}, nil
}

func toBucketDTOs(buckets []forecast.MonthlyBucket) []dto.MonthlyBucketDTO {
	out := make([]dto.MonthlyBucketDTO, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, dto.MonthlyBucketDTO{YearMonth: b.YearMonth, TotalQuantity: b.TotalQuantity})
	}
	return out
}

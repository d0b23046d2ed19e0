package sqlite_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-core/internal/application/analytics"
	"github.com/jhoicas/inventario-core/internal/application/auth"
	"github.com/jhoicas/inventario-core/internal/application/dto"
	"github.com/jhoicas/inventario-core/internal/application/forecast"
	"github.com/jhoicas/inventario-core/internal/application/inventory"
	"github.com/jhoicas/inventario-core/internal/application/sales"
	"github.com/jhoicas/inventario-core/internal/domain"
	"github.com/jhoicas/inventario-core/internal/infrastructure/sqlite"
)

// TestFlujoCompleto arma la aplicación entera sobre el store en memoria y
// recorre el flujo de punta a punta: registro, login por rol, alta de
// producto, ventas y proyección de demanda en el tablero.
func TestFlujoCompleto(t *testing.T) {
	store := newTestStore(t)

	users := sqlite.NewUserRepository(store)
	products := sqlite.NewProductRepository(store)
	salesRepo := sqlite.NewSaleRepository(store)
	movements := sqlite.NewStockMovementRepository(store)
	feedback := sqlite.NewFeedbackRepository(store)
	orders := sqlite.NewPurchaseOrderRepository(store)
	slot := sqlite.NewTokenStore(store)

	authority := auth.NewAuthority(users, slot, auth.Config{
		TTL:    time.Hour,
		Issuer: "inventario-test",
	}, nil)

	inventarioUC := inventory.NewUseCase(products, movements, authority)
	ventasUC := sales.NewUseCase(products, salesRepo, movements, feedback, authority)
	tableroUC := analytics.NewDashboardUseCase(products, orders, salesRepo, forecast.NewEngine(), authority)

	login := func(username string) {
		t.Helper()
		_, err := authority.Login(dto.LoginRequest{Username: username, Password: "secreto123"})
		require.NoError(t, err, "login de %s", username)
	}

	// Registro de los tres roles que participan del flujo.
	for _, u := range []struct{ username, role string }{
		{"bodeguero", "warehouse"},
		{"vendedora", "salesperson"},
		{"gerente", "manager"},
	} {
		_, err := authority.Register(dto.RegisterRequest{
			Username: u.username,
			Password: "secreto123",
			Email:    u.username + "@inventario.test",
			Role:     u.role,
		})
		require.NoError(t, err, "registro de %s", u.username)
	}

	// El bodeguero da de alta el producto.
	login("bodeguero")
	producto, err := inventarioUC.Create(dto.CreateProductRequest{
		SKU:      "SKU-001",
		Name:     "Taladro",
		Stock:    100,
		MinStock: 10,
		Price:    decimal.NewFromInt(250),
	})
	require.NoError(t, err)

	// La vendedora registra ventas en dos meses distintos.
	login("vendedora")
	_, err = ventasUC.RecordSale(dto.RecordSaleRequest{
		ProductID:  producto.ID,
		Quantity:   10,
		OccurredAt: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	_, err = ventasUC.RecordSale(dto.RecordSaleRequest{
		ProductID:  producto.ID,
		Quantity:   20,
		OccurredAt: time.Date(2024, 2, 10, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// La vendedora no ve el tablero.
	_, err = tableroUC.GetDemandForecast()
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// El gerente consulta el tablero: el stock descontado y la proyección.
	login("gerente")
	resumen, err := tableroUC.GetSummary()
	require.NoError(t, err)
	assert.Equal(t, 1, resumen.TotalSKUs)
	assert.Equal(t, int64(70), resumen.InStockUnits, "100 menos las 30 unidades vendidas")

	demanda, err := tableroUC.GetDemandForecast()
	require.NoError(t, err)
	require.Len(t, demanda.Actual, 2)
	require.Len(t, demanda.Projected, 3)
	assert.Equal(t, "2024-03", demanda.Projected[0].YearMonth)
	assert.Equal(t, int64(30), demanda.Projected[0].TotalQuantity,
		"la tendencia de +10 por mes proyecta 30 para marzo")

	// Logout: se acaba la sesión y con ella los permisos.
	require.NoError(t, authority.Logout())
	_, err = tableroUC.GetSummary()
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// El rastro de auditoría quedó escrito por las dos ventas.
	movs, err := movements.ListByProduct(producto.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 2)
}

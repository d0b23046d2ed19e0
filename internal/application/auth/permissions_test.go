package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-core/internal/application/auth"
	"github.com/jhoicas/inventario-core/internal/domain/entity"
)

// allFeatures es el conjunto cerrado de features, para recorrer la matriz completa.
var allFeatures = []auth.Feature{
	auth.FeatureViewInventory, auth.FeatureViewForecast, auth.FeatureManagePO,
	auth.FeatureViewReports, auth.FeatureCreatePO, auth.FeatureTrackOrders,
	auth.FeatureViewWarehouse, auth.FeatureRecordSale, auth.FeatureCheckStock,
	auth.FeatureSubmitFeedback, auth.FeatureUpdateStock, auth.FeatureIssueStock,
	auth.FeatureReportFaulty,
}

// grantsByRole es la tabla esperada rol → features (admin se prueba aparte
// por el comodín).
var grantsByRole = map[entity.Role][]auth.Feature{
	entity.RoleManager: {
		auth.FeatureViewInventory, auth.FeatureViewForecast,
		auth.FeatureManagePO, auth.FeatureViewReports,
	},
	entity.RolePurchaser: {
		auth.FeatureViewForecast, auth.FeatureCreatePO, auth.FeatureTrackOrders,
		auth.FeatureViewInventory, auth.FeatureViewWarehouse,
	},
	entity.RoleSalesperson: {
		auth.FeatureRecordSale, auth.FeatureCheckStock, auth.FeatureSubmitFeedback,
	},
	entity.RoleWarehouse: {
		auth.FeatureUpdateStock, auth.FeatureIssueStock, auth.FeatureReportFaulty,
	},
}

func TestRoleAllows_MatrizCompleta(t *testing.T) {
	for role, granted := range grantsByRole {
		expected := make(map[auth.Feature]bool, len(granted))
		for _, f := range granted {
			expected[f] = true
		}
		for _, f := range allFeatures {
			assert.Equal(t, expected[f], auth.RoleAllows(role, f),
				"rol %s, feature %s", role, f)
		}
	}
}

func TestRoleAllows_AdminComodin(t *testing.T) {
	for _, f := range allFeatures {
		assert.True(t, auth.RoleAllows(entity.RoleAdmin, f),
			"admin debe tener acceso a %s por el comodín", f)
	}
	// El comodín cubre incluso features futuras: no es una lista copiada.
	assert.True(t, auth.RoleAllows(entity.RoleAdmin, auth.Feature("feature_nueva")))
}

func TestRoleAllows_RolDesconocido(t *testing.T) {
	for _, f := range allFeatures {
		assert.False(t, auth.RoleAllows(entity.Role("fantasma"), f),
			"un rol fuera del conjunto cerrado no tiene ninguna feature")
	}
	assert.False(t, auth.RoleAllows(entity.Role(""), auth.FeatureViewInventory))
}

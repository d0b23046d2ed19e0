package auth

import "github.com/jhoicas/inventario-core/internal/domain/entity"

// Feature es una capacidad nombrada que un rol puede tener habilitada.
type Feature string

// Conjunto cerrado de features del sistema.
const (
	FeatureViewInventory  Feature = "view_inventory"
	FeatureViewForecast   Feature = "view_forecast"
	FeatureManagePO       Feature = "manage_po"
	FeatureViewReports    Feature = "view_reports"
	FeatureCreatePO       Feature = "create_po"
	FeatureTrackOrders    Feature = "track_orders"
	FeatureViewWarehouse  Feature = "view_warehouse"
	FeatureRecordSale     Feature = "record_sale"
	FeatureCheckStock     Feature = "check_stock"
	FeatureSubmitFeedback Feature = "submit_feedback"
	FeatureUpdateStock    Feature = "update_stock"
	FeatureIssueStock     Feature = "issue_stock"
	FeatureReportFaulty   Feature = "report_faulty"
)

// grant es el conjunto de features otorgado a un rol. El comodín de admin
// es un centinela explícito, nunca un elemento dentro del set.
type grant struct {
	wildcard bool
	features map[Feature]bool
}

func featureSet(fs ...Feature) map[Feature]bool {
	m := make(map[Feature]bool, len(fs))
	for _, f := range fs {
		m[f] = true
	}
	return m
}

// permissionTable es la tabla estática rol → features. Es dato fijo del
// sistema: no es editable por usuarios.
var permissionTable = map[entity.Role]grant{
	entity.RoleAdmin: {wildcard: true},
	entity.RoleManager: {features: featureSet(
		FeatureViewInventory, FeatureViewForecast, FeatureManagePO, FeatureViewReports,
	)},
	entity.RolePurchaser: {features: featureSet(
		FeatureViewForecast, FeatureCreatePO, FeatureTrackOrders, FeatureViewInventory, FeatureViewWarehouse,
	)},
	entity.RoleSalesperson: {features: featureSet(
		FeatureRecordSale, FeatureCheckStock, FeatureSubmitFeedback,
	)},
	entity.RoleWarehouse: {features: featureSet(
		FeatureUpdateStock, FeatureIssueStock, FeatureReportFaulty,
	)},
}

// RoleAllows responde si el rol tiene la feature, ya sea por otorgamiento
// directo o por el comodín. Roles fuera del conjunto cerrado no tienen nada.
func RoleAllows(role entity.Role, f Feature) bool {
	g, ok := permissionTable[role]
	if !ok {
		return false
	}
	return g.wildcard || g.features[f]
}

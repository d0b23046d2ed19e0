package dto

// DashboardSummaryDTO tarjetas del tablero principal.
type DashboardSummaryDTO struct {
	TotalSKUs          int   `json:"total_skus"`
	InStockUnits       int64 `json:"in_stock_units"`
	LowStockAlerts     int   `json:"low_stock_alerts"`
	OpenPOs            int   `json:"open_pos"`            // órdenes en estado pending
	UpcomingDeliveries int   `json:"upcoming_deliveries"` // órdenes en estado shipped
}

// MonthlyBucketDTO un mes agregado ("YYYY-MM") con el total de unidades.
type MonthlyBucketDTO struct {
	YearMonth     string `json:"year_month"`
	TotalQuantity int64  `json:"total_quantity"`
}

// DemandForecastDTO serie histórica mensual más la proyección.
type DemandForecastDTO struct {
	Actual    []MonthlyBucketDTO `json:"actual"`
	Projected []MonthlyBucketDTO `json:"projected"`
}

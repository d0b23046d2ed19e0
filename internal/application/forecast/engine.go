// Package forecast agrega ventas por mes calendario y proyecta la demanda de
// corto plazo con el promedio móvil de las diferencias mensuales.
package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/jhoicas/inventario-core/internal/domain/entity"
)

const (
	// DefaultHorizon meses proyectados por defecto.
	DefaultHorizon = 3
	// trailingPeriod ventana máxima de meses para el promedio de deltas.
	trailingPeriod = 3

	yearMonthLayout = "2006-01"
)

// MonthlyBucket es un mes agregado: clave "YYYY-MM" (mes con cero a la
// izquierda, así el orden lexicográfico es el cronológico) y total de unidades.
// Es un valor derivado: se recalcula siempre desde el histórico completo.
type MonthlyBucket struct {
	YearMonth     string
	TotalQuantity int64
}

// Engine cálculo puro de agregación y proyección. Determinista: para el mismo
// input produce siempre el mismo output; sin reloj, sin aleatoriedad.
type Engine struct{}

// NewEngine construye el motor de forecast.
func NewEngine() *Engine { return &Engine{} }

// AggregateMonthly agrupa las ventas por año-mes de OccurredAt y suma las
// cantidades. El resultado queda ordenado ascendente por clave; el orden del
// input no afecta el output. Entrada vacía produce salida vacía.
func (e *Engine) AggregateMonthly(sales []*entity.Sale) []MonthlyBucket {
	totals := make(map[string]int64, len(sales))
	for _, s := range sales {
		if s == nil {
			continue
		}
		totals[s.OccurredAt.Format(yearMonthLayout)] += s.Quantity
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make([]MonthlyBucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, MonthlyBucket{YearMonth: k, TotalQuantity: totals[k]})
	}
	return buckets
}

// Forecast proyecta horizon meses (3 si horizon <= 0) a partir de la serie
// mensual ordenada. Con menos de 2 meses no hay tendencia que calcular y la
// proyección es vacía — es un estado esperado, no un error.
//
// La ventana es period = min(3, n): el promedio de cambios se toma sobre los
// últimos period meses, es decir period-1 deltas consecutivos. Cada valor
// proyectado es round(último + avgChange*i), redondeo al entero más cercano
// (mitades alejándose de cero) y con piso en 0: la demanda no es negativa.
// Las etiquetas son los meses calendario siguientes al último observado,
// con rollover de año (12 + 1 → enero del año siguiente).
func (e *Engine) Forecast(buckets []MonthlyBucket, horizon int) []MonthlyBucket {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	n := len(buckets)
	if n < 2 {
		return []MonthlyBucket{}
	}

	period := trailingPeriod
	if n < period {
		period = n
	}
	window := buckets[n-period:]
	var deltaSum float64
	for i := 1; i < len(window); i++ {
		deltaSum += float64(window[i].TotalQuantity - window[i-1].TotalQuantity)
	}
	avgChange := deltaSum / float64(period-1)

	lastMonth, err := time.Parse(yearMonthLayout, buckets[n-1].YearMonth)
	if err != nil {
		// Clave ilegible: sin etiquetas no hay proyección.
		return []MonthlyBucket{}
	}
	last := float64(buckets[n-1].TotalQuantity)

	projected := make([]MonthlyBucket, 0, horizon)
	for i := 1; i <= horizon; i++ {
		value := math.Round(last + avgChange*float64(i))
		if value < 0 {
			value = 0
		}
		projected = append(projected, MonthlyBucket{
			YearMonth:     lastMonth.AddDate(0, i, 0).Format(yearMonthLayout),
			TotalQuantity: int64(value),
		})
	}
	return projected
}

// Package kpi holds the derived metric shapes the dashboard renders.
package kpi

import "time"

// Metric is a scalar KPI that may be unavailable when its source columns
// were not mapped
type Metric struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
}

// Available wraps a computed value
func Available(v float64) Metric {
	return Metric{Value: v, Available: true}
}

// Unavailable marks a metric whose inputs are absent
func Unavailable() Metric {
	return Metric{}
}

// Summary contains the scalar KPIs for the current filtered table
type Summary struct {
	TotalRevenue    float64 `json:"total_revenue"`
	TotalUnits      int64   `json:"total_units"`
	AverageDiscount Metric  `json:"average_discount"`
	GrossProfit     Metric  `json:"gross_profit"`
	ProfitMargin    Metric  `json:"profit_margin"`
	RowCount        int     `json:"row_count"`
}

// SeriesPoint is one month of an aggregate time series
type SeriesPoint struct {
	Month time.Time `json:"month"`
	Value float64   `json:"value"`
}

// BreakdownSlice is one categorical value's revenue share
type BreakdownSlice struct {
	Label   string  `json:"label"`
	Revenue float64 `json:"revenue"`
}

// Breakdown is revenue grouped by one categorical dimension
type Breakdown struct {
	Dimension string           `json:"dimension"`
	Slices    []BreakdownSlice `json:"slices"`
}

// Correlation summarizes a scatter relationship between two numeric columns
type Correlation struct {
	X           string  `json:"x"`
	Y           string  `json:"y"`
	Coefficient float64 `json:"coefficient"`
	SampleSize  int     `json:"sample_size"`
}

// Report bundles everything the presentation layer needs for one render pass
type Report struct {
	Summary        Summary       `json:"summary"`
	MonthlyRevenue []SeriesPoint `json:"monthly_revenue"`
	SalesGrowth    []SeriesPoint `json:"sales_growth"`
	Breakdowns     []Breakdown   `json:"breakdowns"`
	Correlations   []Correlation `json:"correlations"`
}

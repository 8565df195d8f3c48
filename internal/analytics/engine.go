// Package analytics computes the KPI report (scalar metrics, monthly series,
// categorical breakdowns, scatter correlations) from a cleaned, filtered
// table. The engine is stateless and recomputes everything on each call.
package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"salesboard/domain/kpi"
	"salesboard/domain/schema"
	"salesboard/domain/table"
	"salesboard/internal"
)

// Engine derives KPI reports from cleaned tables
type Engine struct {
	logger *internal.Logger
}

// NewEngine creates a KPI engine
func NewEngine() *Engine {
	return &Engine{logger: internal.DefaultLogger}
}

// Compute derives the full KPI report for one render pass
func (e *Engine) Compute(ctx context.Context, t *table.Table) (*kpi.Report, error) {
	started := time.Now()

	report := &kpi.Report{
		Summary: e.computeSummary(t),
	}
	report.MonthlyRevenue = e.MonthlyRevenue(t)
	report.SalesGrowth = SalesGrowth(report.MonthlyRevenue)

	breakdowns, err := e.computeBreakdowns(ctx, t)
	if err != nil {
		return nil, err
	}
	report.Breakdowns = breakdowns
	report.Correlations = e.computeCorrelations(t)

	e.logger.Debug("[Analytics] report computed in %.2fms (%d rows)",
		float64(time.Since(started).Nanoseconds())/1e6, t.RowCount())
	return report, nil
}

// computeSummary derives the scalar KPIs
func (e *Engine) computeSummary(t *table.Table) kpi.Summary {
	summary := kpi.Summary{RowCount: t.RowCount()}

	summary.TotalRevenue = sumColumn(t, schema.FieldPrice)
	summary.TotalUnits = int64(sumColumn(t, schema.FieldQuantity))

	if t.HasColumn(string(schema.FieldDiscount)) {
		discounts := t.NumericColumn(string(schema.FieldDiscount))
		if mean, err := stats.Mean(discounts); err == nil {
			summary.AverageDiscount = kpi.Available(mean)
		}
	}

	hasUnitPrice := t.HasColumn(string(schema.FieldUnitPrice))
	hasUnitCost := t.HasColumn(string(schema.FieldUnitCost))
	if hasUnitPrice && hasUnitCost {
		profit := 0.0
		for _, row := range t.Rows {
			unitPrice := row[string(schema.FieldUnitPrice)]
			unitCost := row[string(schema.FieldUnitCost)]
			quantity := row[string(schema.FieldQuantity)]
			if unitPrice.IsNumeric() && unitCost.IsNumeric() && quantity.IsNumeric() {
				profit += (unitPrice.AsFloat64() - unitCost.AsFloat64()) * quantity.AsFloat64()
			}
		}
		summary.GrossProfit = kpi.Available(profit)

		// Margin is defined as 0 when revenue is 0, never NaN or infinite
		margin := 0.0
		if summary.TotalRevenue > 0 {
			margin = profit / summary.TotalRevenue * 100
		}
		summary.ProfitMargin = kpi.Available(margin)
	}

	return summary
}

// MonthlyRevenue groups rows by calendar month of the date column and sums
// price per month. Months with no rows produce no point; the series is
// chronological.
func (e *Engine) MonthlyRevenue(t *table.Table) []kpi.SeriesPoint {
	byMonth := make(map[time.Time]float64)
	dateCol := string(schema.FieldDate)
	priceCol := string(schema.FieldPrice)

	for _, row := range t.Rows {
		date := row[dateCol]
		price := row[priceCol]
		if !date.IsTimestamp() || !price.IsNumeric() {
			continue
		}
		ts := date.AsTime()
		month := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, time.UTC)
		byMonth[month] += price.AsFloat64()
	}

	series := make([]kpi.SeriesPoint, 0, len(byMonth))
	for month, revenue := range byMonth {
		series = append(series, kpi.SeriesPoint{Month: month, Value: revenue})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Month.Before(series[j].Month) })
	return series
}

// SalesGrowth derives the fractional month-over-month change of a monthly
// series. The first month has no prior month and is defined as 0.
func SalesGrowth(monthly []kpi.SeriesPoint) []kpi.SeriesPoint {
	growth := make([]kpi.SeriesPoint, len(monthly))
	for i, point := range monthly {
		g := 0.0
		if i > 0 && monthly[i-1].Value != 0 {
			g = (point.Value - monthly[i-1].Value) / monthly[i-1].Value
		}
		growth[i] = kpi.SeriesPoint{Month: point.Month, Value: g}
	}
	return growth
}

// computeBreakdowns sums revenue per distinct value of each mapped
// categorical dimension. Dimensions are independent, so they fan out on an
// errgroup.
func (e *Engine) computeBreakdowns(ctx context.Context, t *table.Table) ([]kpi.Breakdown, error) {
	var present []schema.Field
	for _, field := range schema.CategoricalFields() {
		if t.HasColumn(string(field)) {
			present = append(present, field)
		}
	}
	if len(present) == 0 {
		return nil, nil
	}

	results := make([]kpi.Breakdown, len(present))
	group, _ := errgroup.WithContext(ctx)
	for i, field := range present {
		i, field := i, field
		group.Go(func() error {
			results[i] = breakdownFor(t, field)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// breakdownFor groups revenue by one categorical column
func breakdownFor(t *table.Table, field schema.Field) kpi.Breakdown {
	column := string(field)
	priceCol := string(schema.FieldPrice)
	byLabel := make(map[string]float64)

	for _, row := range t.Rows {
		label := row[column]
		price := row[priceCol]
		if !label.IsString() || !price.IsNumeric() {
			continue
		}
		byLabel[label.AsString()] += price.AsFloat64()
	}

	slices := make([]kpi.BreakdownSlice, 0, len(byLabel))
	for label, revenue := range byLabel {
		slices = append(slices, kpi.BreakdownSlice{Label: label, Revenue: revenue})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Revenue != slices[j].Revenue {
			return slices[i].Revenue > slices[j].Revenue
		}
		return slices[i].Label < slices[j].Label
	})

	return kpi.Breakdown{Dimension: column, Slices: slices}
}

// computeCorrelations summarizes the scatter relationships the dashboard
// plots: discount vs price, and unit cost vs unit price
func (e *Engine) computeCorrelations(t *table.Table) []kpi.Correlation {
	pairs := [][2]schema.Field{
		{schema.FieldDiscount, schema.FieldPrice},
		{schema.FieldUnitCost, schema.FieldUnitPrice},
	}

	var correlations []kpi.Correlation
	for _, pair := range pairs {
		xCol, yCol := string(pair[0]), string(pair[1])
		if !t.HasColumn(xCol) || !t.HasColumn(yCol) {
			continue
		}

		var xs, ys []float64
		for _, row := range t.Rows {
			x, y := row[xCol], row[yCol]
			if x.IsNumeric() && y.IsNumeric() {
				xs = append(xs, x.AsFloat64())
				ys = append(ys, y.AsFloat64())
			}
		}
		if len(xs) < 3 {
			continue
		}

		correlations = append(correlations, kpi.Correlation{
			X:           xCol,
			Y:           yCol,
			Coefficient: stat.Correlation(xs, ys, nil),
			SampleSize:  len(xs),
		})
	}
	return correlations
}

// sumColumn sums the numeric values of a column, 0 when the column is empty
func sumColumn(t *table.Table, field schema.Field) float64 {
	values := t.NumericColumn(string(field))
	if len(values) == 0 {
		return 0
	}
	sum, err := stats.Sum(values)
	if err != nil {
		return 0
	}
	return sum
}

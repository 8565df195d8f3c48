package pipeline

import (
	"context"

	"salesboard/domain/kpi"
	"salesboard/domain/schema"
	"salesboard/domain/table"
	"salesboard/internal"
	"salesboard/internal/analytics"
)

// Request carries everything one render pass needs: the raw uploaded table,
// the user's column mapping, and the active filters. There is no ambient
// state; every interaction re-runs the full chain against a Request.
type Request struct {
	Raw     *table.Table
	Mapping *schema.ColumnMapping
	Filters Filters
}

// Outcome is the product of one pipeline run
type Outcome struct {
	Cleaned      *table.Table
	Filtered     *table.Table
	DroppedDates int
	Report       *kpi.Report
}

// Pipeline chains mapping, validation, date coercion, cleaning, filtering,
// and KPI derivation
type Pipeline struct {
	validator *Validator
	cleaner   *Cleaner
	engine    *analytics.Engine
	logger    *internal.Logger
}

// New creates a pipeline with the given cleaning config
func New(cleanConfig CleanConfig) *Pipeline {
	return &Pipeline{
		validator: NewValidator(),
		cleaner:   NewCleaner(cleanConfig),
		engine:    analytics.NewEngine(),
		logger:    internal.DefaultLogger,
	}
}

// Run executes the full chain. A validation failure halts before any metric
// is computed; no partial output is produced.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Outcome, error) {
	mapped := MapColumns(req.Raw, req.Mapping)

	if err := p.validator.Validate(mapped); err != nil {
		return nil, err
	}

	coerced, droppedDates := p.validator.CoerceDates(mapped)
	cleaned := p.cleaner.CleanSales(coerced)
	filtered := req.Filters.Apply(cleaned)

	report, err := p.engine.Compute(ctx, filtered)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("[Pipeline] %d raw rows -> %d cleaned -> %d filtered",
		req.Raw.RowCount(), cleaned.RowCount(), filtered.RowCount())

	return &Outcome{
		Cleaned:      cleaned,
		Filtered:     filtered,
		DroppedDates: droppedDates,
		Report:       report,
	}, nil
}

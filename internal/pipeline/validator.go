package pipeline

import (
	"salesboard/adapters/tabular"
	"salesboard/domain/core"
	"salesboard/domain/schema"
	"salesboard/domain/table"
	"salesboard/internal"
)

// Validator gates the pipeline on the four required canonical columns and
// coerces the date column once the gate passes.
type Validator struct {
	coercer *tabular.Coercer
	logger  *internal.Logger
}

// NewValidator creates a validator with the default coercion rules
func NewValidator() *Validator {
	return &Validator{
		coercer: tabular.NewCoercer(tabular.DefaultCoercionConfig()),
		logger:  internal.DefaultLogger,
	}
}

// Validate succeeds iff every required canonical field is present as a column
// of the mapped table. On failure the pipeline halts with no metrics computed.
func (v *Validator) Validate(mapped *table.Table) error {
	var missing []string
	for _, field := range schema.RequiredFields() {
		if !mapped.HasColumn(string(field)) {
			missing = append(missing, string(field))
		}
	}
	if len(missing) > 0 {
		return core.NewMissingRequiredError(missing)
	}
	return nil
}

// CoerceDates parses the date column into calendar dates. Rows whose date
// cannot be parsed are dropped, not treated as an error. Returns the coerced
// table and the number of rows dropped.
func (v *Validator) CoerceDates(mapped *table.Table) (*table.Table, int) {
	dateCol := string(schema.FieldDate)
	coerced := mapped.MapColumn(dateCol, v.coercer.CoerceDate)

	before := coerced.RowCount()
	kept := coerced.Filter(func(row table.Row) bool {
		return row[dateCol].IsTimestamp()
	})
	dropped := before - kept.RowCount()
	if dropped > 0 {
		v.logger.Info("[Validator] dropped %d rows with unparseable dates", dropped)
	}
	return kept, dropped
}

package pipeline

import (
	"time"

	"salesboard/domain/schema"
	"salesboard/domain/table"
)

// Filters narrows the cleaned table to the user's selection: a date range
// inclusive on both ends, plus per-categorical multi-selects. A categorical
// field absent from Selected means all observed values pass.
type Filters struct {
	From        time.Time                 `json:"from"`
	To          time.Time                 `json:"to"`
	Categorical map[schema.Field][]string `json:"categorical"`
}

// Apply returns a new table holding only the rows inside the date range and
// the selected categorical values
func (f Filters) Apply(t *table.Table) *table.Table {
	selections := make(map[string]map[string]bool, len(f.Categorical))
	for field, values := range f.Categorical {
		allowed := make(map[string]bool, len(values))
		for _, v := range values {
			allowed[v] = true
		}
		selections[string(field)] = allowed
	}

	dateCol := string(schema.FieldDate)
	return t.Filter(func(row table.Row) bool {
		if !f.From.IsZero() || !f.To.IsZero() {
			date := row[dateCol]
			if !date.IsTimestamp() {
				return false
			}
			ts := date.AsTime()
			if !f.From.IsZero() && ts.Before(f.From) {
				return false
			}
			if !f.To.IsZero() && ts.After(f.To) {
				return false
			}
		}
		for column, allowed := range selections {
			if !t.HasColumn(column) {
				continue
			}
			v, ok := row[column]
			if !ok || !v.IsString() || !allowed[v.AsString()] {
				return false
			}
		}
		return true
	})
}

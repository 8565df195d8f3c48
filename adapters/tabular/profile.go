package tabular

import (
	"salesboard/domain/table"
)

// ColumnProfile describes a single column of an uploaded table
type ColumnProfile struct {
	Name         string   `json:"name"`
	DataType     string   `json:"data_type"` // "numeric", "categorical", "date", "mixed"
	MissingCount int      `json:"missing_count"`
	UniqueCount  int      `json:"unique_count"`
	SampleValues []string `json:"sample_values,omitempty"`
}

// TableProfile summarizes an uploaded table for the mapping screen
type TableProfile struct {
	RowCount    int             `json:"row_count"`
	ColumnCount int             `json:"column_count"`
	MissingRate float64         `json:"missing_rate"`
	Columns     []ColumnProfile `json:"columns"`
}

// Profile computes per-column statistics over the raw table: inferred type,
// missing and unique counts, and up to maxSamples example values
func Profile(t *table.Table, maxSamples int) *TableProfile {
	profile := &TableProfile{
		RowCount:    t.RowCount(),
		ColumnCount: t.ColumnCount(),
		Columns:     make([]ColumnProfile, 0, t.ColumnCount()),
	}

	totalCells := t.RowCount() * t.ColumnCount()
	totalMissing := 0

	for _, column := range t.Columns {
		col := ColumnProfile{
			Name:         column,
			DataType:     inferDataType(t.Column(column)),
			MissingCount: t.MissingCount(column),
		}
		totalMissing += col.MissingCount

		seen := make(map[string]bool)
		for _, v := range t.Column(column) {
			if v.IsMissing {
				continue
			}
			rendered := v.String()
			if !seen[rendered] {
				seen[rendered] = true
				if len(col.SampleValues) < maxSamples {
					col.SampleValues = append(col.SampleValues, rendered)
				}
			}
		}
		col.UniqueCount = len(seen)

		profile.Columns = append(profile.Columns, col)
	}

	if totalCells > 0 {
		profile.MissingRate = float64(totalMissing) / float64(totalCells)
	}
	return profile
}

// inferDataType picks the dominant value type of a column
func inferDataType(values []table.Value) string {
	numeric, timestamps, strings, present := 0, 0, 0, 0
	for _, v := range values {
		switch {
		case v.IsMissing:
			continue
		case v.IsNumeric():
			numeric++
		case v.IsTimestamp():
			timestamps++
		default:
			strings++
		}
		present++
	}
	if present == 0 {
		return "mixed"
	}
	switch {
	case numeric == present:
		return "numeric"
	case timestamps == present:
		return "date"
	case strings == present:
		return "categorical"
	}
	return "mixed"
}

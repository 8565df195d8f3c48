package pipeline

import (
	"testing"
	"time"

	"salesboard/domain/schema"
	"salesboard/domain/table"
)

func filterTable() *table.Table {
	t := table.New("date", "price", "region")
	days := []int{1, 15, 31}
	regions := []string{"North", "South", "North"}
	for i := range days {
		t.AppendRow(table.Row{
			"date":   table.NewTimestampValue(time.Date(2024, 1, days[i], 0, 0, 0, 0, time.UTC)),
			"price":  table.NewNumericValue(float64(10 * (i + 1))),
			"region": table.NewStringValue(regions[i]),
		})
	}
	return t
}

func TestApplyDateRangeInclusive(t *testing.T) {
	input := filterTable()
	filters := Filters{
		From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	got := filters.Apply(input)
	if got.RowCount() != 2 {
		t.Errorf("expected both boundary rows kept, got %d", got.RowCount())
	}
	if input.RowCount() != 3 {
		t.Errorf("input modified: %d rows", input.RowCount())
	}
}

func TestApplyOpenEndedRange(t *testing.T) {
	input := filterTable()

	fromOnly := Filters{From: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}
	if got := fromOnly.Apply(input).RowCount(); got != 2 {
		t.Errorf("from-only filter kept %d rows", got)
	}

	toOnly := Filters{To: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC)}
	if got := toOnly.Apply(input).RowCount(); got != 1 {
		t.Errorf("to-only filter kept %d rows", got)
	}
}

func TestApplyCategoricalSelection(t *testing.T) {
	input := filterTable()
	filters := Filters{
		Categorical: map[schema.Field][]string{
			schema.FieldRegion: {"North"},
		},
	}

	got := filters.Apply(input)
	if got.RowCount() != 2 {
		t.Errorf("expected 2 North rows, got %d", got.RowCount())
	}
}

func TestApplyNoFiltersKeepsEverything(t *testing.T) {
	input := filterTable()
	if got := (Filters{}).Apply(input).RowCount(); got != 3 {
		t.Errorf("empty filter dropped rows: %d", got)
	}
}

func TestApplyUnmappedCategoricalIsIgnored(t *testing.T) {
	input := filterTable()
	filters := Filters{
		Categorical: map[schema.Field][]string{
			schema.FieldSalesChannel: {"Online"},
		},
	}
	if got := filters.Apply(input).RowCount(); got != 3 {
		t.Errorf("selection on an absent column dropped rows: %d", got)
	}
}

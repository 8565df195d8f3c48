package pipeline

import (
	"errors"
	"testing"
	"time"

	"salesboard/domain/core"
	"salesboard/domain/table"
)

func TestValidateRequiresAllFourColumns(t *testing.T) {
	validator := NewValidator()

	complete := table.New("date", "price", "product_id", "quantity")
	if err := validator.Validate(complete); err != nil {
		t.Errorf("complete table rejected: %v", err)
	}

	partial := table.New("date", "price")
	err := validator.Validate(partial)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	if !errors.Is(err, core.ErrMissingRequired) {
		t.Errorf("expected ErrMissingRequired, got %v", err)
	}
}

func TestCoerceDatesDropsUnparseable(t *testing.T) {
	validator := NewValidator()

	tbl := table.New("date", "price", "product_id", "quantity")
	dates := []table.Value{
		table.NewStringValue("2024-03-01"),
		table.NewStringValue("not a date"),
		table.NewTimestampValue(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)),
		table.NewMissingValue(),
	}
	for _, d := range dates {
		tbl.AppendRow(table.Row{
			"date":       d,
			"price":      table.NewNumericValue(10),
			"product_id": table.NewStringValue("sku"),
			"quantity":   table.NewNumericValue(1),
		})
	}

	coerced, dropped := validator.CoerceDates(tbl)

	if dropped != 2 {
		t.Errorf("expected 2 dropped rows, got %d", dropped)
	}
	if coerced.RowCount() != 2 {
		t.Errorf("expected 2 surviving rows, got %d", coerced.RowCount())
	}
	for i := 0; i < coerced.RowCount(); i++ {
		if !coerced.Cell(i, "date").IsTimestamp() {
			t.Errorf("row %d date not a timestamp", i)
		}
	}
	if tbl.RowCount() != 4 {
		t.Errorf("input modified: %d rows", tbl.RowCount())
	}
}

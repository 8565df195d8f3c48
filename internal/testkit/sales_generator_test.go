package testkit

import (
	"bytes"
	"testing"
)

func TestGeneratorIsDeterministic(t *testing.T) {
	a := NewSalesDataGenerator(DefaultSalesConfig()).GenerateCSV()
	b := NewSalesDataGenerator(DefaultSalesConfig()).GenerateCSV()

	if !bytes.Equal(a, b) {
		t.Error("same seed produced different fixtures")
	}
}

func TestGenerateTableShape(t *testing.T) {
	config := DefaultSalesConfig()
	config.RowCount = 25
	tbl := NewSalesDataGenerator(config).GenerateTable()

	if tbl.RowCount() != 25 {
		t.Errorf("row count = %d", tbl.RowCount())
	}
	for _, col := range []string{"date", "price", "product_id", "quantity", "unit_cost", "region"} {
		if !tbl.HasColumn(col) {
			t.Errorf("missing column %s", col)
		}
	}
}

func TestGenerateTableWithoutOptionals(t *testing.T) {
	config := DefaultSalesConfig()
	config.IncludeOptionals = false
	tbl := NewSalesDataGenerator(config).GenerateTable()

	if tbl.ColumnCount() != 4 {
		t.Errorf("expected the 4 required columns, got %v", tbl.Columns)
	}
}

package tabular

import (
	"testing"
	"time"

	"salesboard/domain/table"
)

func TestProfile(t *testing.T) {
	tbl := table.New("date", "price", "region")
	tbl.AppendRow(table.Row{
		"date":   table.NewTimestampValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		"price":  table.NewNumericValue(10),
		"region": table.NewStringValue("North"),
	})
	tbl.AppendRow(table.Row{
		"date":   table.NewTimestampValue(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		"price":  table.NewNumericValue(20),
		"region": table.NewMissingValue(),
	})

	profile := Profile(tbl, 5)

	if profile.RowCount != 2 || profile.ColumnCount != 3 {
		t.Fatalf("wrong shape: %d x %d", profile.RowCount, profile.ColumnCount)
	}
	if profile.MissingRate != 1.0/6.0 {
		t.Errorf("missing rate = %v", profile.MissingRate)
	}

	byName := make(map[string]ColumnProfile)
	for _, col := range profile.Columns {
		byName[col.Name] = col
	}

	if byName["date"].DataType != "date" {
		t.Errorf("date column inferred as %s", byName["date"].DataType)
	}
	if byName["price"].DataType != "numeric" {
		t.Errorf("price column inferred as %s", byName["price"].DataType)
	}
	if byName["region"].DataType != "categorical" {
		t.Errorf("region column inferred as %s", byName["region"].DataType)
	}
	if byName["region"].MissingCount != 1 {
		t.Errorf("region missing count = %d", byName["region"].MissingCount)
	}
	if byName["price"].UniqueCount != 2 {
		t.Errorf("price unique count = %d", byName["price"].UniqueCount)
	}
}

func TestProfileSampleLimit(t *testing.T) {
	tbl := table.New("n")
	for i := 0; i < 10; i++ {
		tbl.AppendRow(table.Row{"n": table.NewNumericValue(float64(i))})
	}

	profile := Profile(tbl, 3)
	if got := len(profile.Columns[0].SampleValues); got != 3 {
		t.Errorf("expected 3 samples, got %d", got)
	}
	if profile.Columns[0].UniqueCount != 10 {
		t.Errorf("unique count = %d", profile.Columns[0].UniqueCount)
	}
}

package analytics

import (
	"context"
	"math"
	"testing"
	"time"

	"salesboard/domain/kpi"
	"salesboard/domain/table"
)

func monthlyPoints(values ...float64) []kpi.SeriesPoint {
	points := make([]kpi.SeriesPoint, len(values))
	for i, v := range values {
		points[i] = kpi.SeriesPoint{
			Month: time.Date(2024, time.Month(i+1), 1, 0, 0, 0, 0, time.UTC),
			Value: v,
		}
	}
	return points
}

func TestSalesGrowth(t *testing.T) {
	growth := SalesGrowth(monthlyPoints(100, 150, 90))

	want := []float64{0, 0.5, -0.4}
	for i, w := range want {
		if math.Abs(growth[i].Value-w) > 1e-9 {
			t.Errorf("growth[%d] = %v, want %v", i, growth[i].Value, w)
		}
	}
}

func TestSalesGrowthZeroPriorMonth(t *testing.T) {
	growth := SalesGrowth(monthlyPoints(0, 200))
	if growth[1].Value != 0 {
		t.Errorf("growth after a zero month = %v, want 0", growth[1].Value)
	}
}

func TestSalesGrowthEmpty(t *testing.T) {
	if got := SalesGrowth(nil); len(got) != 0 {
		t.Errorf("expected empty growth series, got %v", got)
	}
}

func salesRow(day int, price, quantity float64, region string) table.Row {
	return table.Row{
		"date":       table.NewTimestampValue(time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)),
		"price":      table.NewNumericValue(price),
		"product_id": table.NewStringValue("sku"),
		"quantity":   table.NewNumericValue(quantity),
		"region":     table.NewStringValue(region),
	}
}

func TestComputeSummaryBasics(t *testing.T) {
	tbl := table.New("date", "price", "product_id", "quantity", "region")
	tbl.AppendRow(salesRow(1, 100, 2, "North"))
	tbl.AppendRow(salesRow(2, 50, 1, "South"))

	engine := NewEngine()
	report, err := engine.Compute(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if report.Summary.TotalRevenue != 150 {
		t.Errorf("revenue = %v", report.Summary.TotalRevenue)
	}
	if report.Summary.TotalUnits != 3 {
		t.Errorf("units = %d", report.Summary.TotalUnits)
	}
	if report.Summary.AverageDiscount.Available {
		t.Error("discount should be unavailable")
	}
	if report.Summary.ProfitMargin.Available {
		t.Error("margin should be unavailable without cost columns")
	}
}

func TestComputeEmptyTable(t *testing.T) {
	tbl := table.New("date", "price", "product_id", "quantity")

	engine := NewEngine()
	report, err := engine.Compute(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Compute failed on empty table: %v", err)
	}
	if report.Summary.TotalRevenue != 0 || report.Summary.TotalUnits != 0 {
		t.Errorf("empty table produced revenue %v, units %d",
			report.Summary.TotalRevenue, report.Summary.TotalUnits)
	}
	if len(report.MonthlyRevenue) != 0 {
		t.Errorf("empty table produced %d monthly points", len(report.MonthlyRevenue))
	}
}

func TestProfitMarginZeroRevenueGuard(t *testing.T) {
	tbl := table.New("date", "price", "product_id", "quantity", "unit_cost", "unit_price")
	tbl.AppendRow(table.Row{
		"date":       table.NewTimestampValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		"price":      table.NewNumericValue(0),
		"product_id": table.NewStringValue("sku"),
		"quantity":   table.NewNumericValue(1),
		"unit_cost":  table.NewNumericValue(5),
		"unit_price": table.NewNumericValue(8),
	})

	engine := NewEngine()
	report, err := engine.Compute(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	margin := report.Summary.ProfitMargin
	if !margin.Available {
		t.Fatal("margin should be available with cost columns")
	}
	if margin.Value != 0 {
		t.Errorf("margin with zero revenue = %v, want 0", margin.Value)
	}
	if math.IsNaN(margin.Value) || math.IsInf(margin.Value, 0) {
		t.Errorf("margin is not finite: %v", margin.Value)
	}
}

func TestBreakdownOrdering(t *testing.T) {
	tbl := table.New("date", "price", "product_id", "quantity", "region")
	tbl.AppendRow(salesRow(1, 100, 1, "North"))
	tbl.AppendRow(salesRow(2, 300, 1, "South"))
	tbl.AppendRow(salesRow(3, 50, 1, "North"))

	engine := NewEngine()
	report, err := engine.Compute(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if len(report.Breakdowns) != 1 {
		t.Fatalf("expected 1 breakdown, got %d", len(report.Breakdowns))
	}
	slices := report.Breakdowns[0].Slices
	if slices[0].Label != "South" || slices[0].Revenue != 300 {
		t.Errorf("top slice = %+v, want South/300", slices[0])
	}
	if slices[1].Label != "North" || slices[1].Revenue != 150 {
		t.Errorf("second slice = %+v, want North/150", slices[1])
	}
}

func TestBreakdownsPartitionRevenue(t *testing.T) {
	tbl := table.New("date", "price", "product_id", "quantity", "region")
	tbl.AppendRow(salesRow(1, 100, 1, "North"))
	tbl.AppendRow(salesRow(2, 300, 1, "South"))
	tbl.AppendRow(salesRow(3, 50, 1, "East"))

	engine := NewEngine()
	report, err := engine.Compute(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	sum := 0.0
	for _, slice := range report.Breakdowns[0].Slices {
		sum += slice.Revenue
	}
	if math.Abs(sum-report.Summary.TotalRevenue) > 1e-9 {
		t.Errorf("breakdown sums to %v, total revenue is %v", sum, report.Summary.TotalRevenue)
	}
}

func TestMonthlyRevenueSumsToTotal(t *testing.T) {
	tbl := table.New("date", "price", "product_id", "quantity")
	days := []struct {
		month time.Month
		price float64
	}{
		{time.January, 120}, {time.January, 80}, {time.March, 300},
	}
	for _, d := range days {
		tbl.AppendRow(table.Row{
			"date":       table.NewTimestampValue(time.Date(2024, d.month, 10, 0, 0, 0, 0, time.UTC)),
			"price":      table.NewNumericValue(d.price),
			"product_id": table.NewStringValue("sku"),
			"quantity":   table.NewNumericValue(1),
		})
	}

	engine := NewEngine()
	report, err := engine.Compute(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if len(report.MonthlyRevenue) != 2 {
		t.Fatalf("expected 2 months, got %d", len(report.MonthlyRevenue))
	}
	if report.MonthlyRevenue[0].Month.Month() != time.January {
		t.Error("series not chronological")
	}
	sum := 0.0
	for _, p := range report.MonthlyRevenue {
		sum += p.Value
	}
	if math.Abs(sum-report.Summary.TotalRevenue) > 1e-9 {
		t.Errorf("monthly sums to %v, total is %v", sum, report.Summary.TotalRevenue)
	}
}

func TestCorrelationsNeedThreePoints(t *testing.T) {
	tbl := table.New("date", "price", "product_id", "quantity", "discount")
	for day := 1; day <= 2; day++ {
		tbl.AppendRow(table.Row{
			"date":       table.NewTimestampValue(time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)),
			"price":      table.NewNumericValue(float64(day * 10)),
			"product_id": table.NewStringValue("sku"),
			"quantity":   table.NewNumericValue(1),
			"discount":   table.NewNumericValue(float64(day)),
		})
	}

	engine := NewEngine()
	report, err := engine.Compute(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(report.Correlations) != 0 {
		t.Errorf("2 points produced a correlation: %+v", report.Correlations)
	}

	tbl.AppendRow(table.Row{
		"date":       table.NewTimestampValue(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)),
		"price":      table.NewNumericValue(30),
		"product_id": table.NewStringValue("sku"),
		"quantity":   table.NewNumericValue(1),
		"discount":   table.NewNumericValue(3),
	})
	report, err = engine.Compute(context.Background(), tbl)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(report.Correlations) != 1 {
		t.Fatalf("expected 1 correlation, got %d", len(report.Correlations))
	}
	corr := report.Correlations[0]
	if corr.SampleSize != 3 {
		t.Errorf("sample size = %d", corr.SampleSize)
	}
	// discount and price move together perfectly in this fixture
	if math.Abs(corr.Coefficient-1) > 1e-9 {
		t.Errorf("coefficient = %v, want 1", corr.Coefficient)
	}
}

package analytics

import (
	"github.com/montanaflynn/stats"

	"salesboard/domain/kpi"
	"salesboard/domain/schema"
	"salesboard/domain/table"
)

// InventoryTurnover divides cost of goods sold by average inventory, rounded
// to 2 decimal places. Unavailable when average inventory is zero or negative
// rather than dividing by it.
func InventoryTurnover(cogs, avgInventory float64) kpi.Metric {
	if avgInventory <= 0 {
		return kpi.Unavailable()
	}
	rounded, err := stats.Round(cogs/avgInventory, 2)
	if err != nil {
		return kpi.Unavailable()
	}
	return kpi.Available(rounded)
}

// StockoutRate is the fraction of rows with a stock level of exactly zero.
// An empty table has no defined rate and reports unavailable.
func StockoutRate(t *table.Table) kpi.Metric {
	if t.RowCount() == 0 {
		return kpi.Unavailable()
	}
	stockCol := string(schema.FieldStockLevel)
	zeroes := 0
	for _, row := range t.Rows {
		v := row[stockCol]
		if v.IsNumeric() && v.AsFloat64() == 0 {
			zeroes++
		}
	}
	return kpi.Available(float64(zeroes) / float64(t.RowCount()))
}

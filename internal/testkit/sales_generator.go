// Package testkit generates deterministic sales fixtures for tests and the
// demo upload flow.
package testkit

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math/rand"
	"time"

	"salesboard/domain/schema"
	"salesboard/domain/table"
)

// SalesGeneratorConfig configures the sales data generator
type SalesGeneratorConfig struct {
	RowCount  int       `json:"row_count"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Seed      int64     `json:"seed"`

	// Fractions of rows deliberately broken, for exercising the cleaner
	MissingRate      float64 `json:"missing_rate"`
	BadPriceRate     float64 `json:"bad_price_rate"`
	BadQuantityRate  float64 `json:"bad_quantity_rate"`
	IncludeOptionals bool    `json:"include_optionals"`
}

// DefaultSalesConfig returns sensible defaults for sales data generation
func DefaultSalesConfig() SalesGeneratorConfig {
	return SalesGeneratorConfig{
		RowCount:         500,
		StartDate:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Seed:             42,
		MissingRate:      0.05,
		BadPriceRate:     0.03,
		BadQuantityRate:  0.02,
		IncludeOptionals: true,
	}
}

// SalesDataGenerator generates deterministic sales records
type SalesDataGenerator struct {
	config SalesGeneratorConfig
	rng    *rand.Rand
}

// NewSalesDataGenerator creates a generator seeded from the config
func NewSalesDataGenerator(config SalesGeneratorConfig) *SalesDataGenerator {
	return &SalesDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var (
	regions        = []string{"North", "South", "East", "West"}
	channels       = []string{"Online", "Retail", "Wholesale"}
	categories     = []string{"Electronics", "Apparel", "Home", "Grocery"}
	customerTypes  = []string{"New", "Returning"}
	paymentMethods = []string{"Card", "Cash", "Transfer"}
	reps           = []string{"avery", "blake", "casey", "drew", "emery"}
)

// GenerateTable builds a typed raw table with canonical column names
func (g *SalesDataGenerator) GenerateTable() *table.Table {
	columns := []string{
		string(schema.FieldDate), string(schema.FieldPrice),
		string(schema.FieldProductID), string(schema.FieldQuantity),
	}
	if g.config.IncludeOptionals {
		columns = append(columns,
			string(schema.FieldUnitCost), string(schema.FieldUnitPrice),
			string(schema.FieldDiscount), string(schema.FieldRegion),
			string(schema.FieldSalesChannel), string(schema.FieldProductCategory),
			string(schema.FieldCustomerType), string(schema.FieldPaymentMethod),
			string(schema.FieldSalesRep),
		)
	}

	t := table.New(columns...)
	for i := 0; i < g.config.RowCount; i++ {
		t.AppendRow(g.generateRow())
	}
	return t
}

// GenerateCSV renders the fixture as an uploadable CSV with raw, un-normalized
// headers so the mapping flow gets exercised end to end
func (g *SalesDataGenerator) GenerateCSV() []byte {
	t := g.GenerateTable()

	rawHeaders := map[string]string{
		string(schema.FieldDate):            "Date of Sale",
		string(schema.FieldPrice):           "Sale Amount",
		string(schema.FieldProductID):       "Product ID",
		string(schema.FieldQuantity):        "Quantity Sold",
		string(schema.FieldUnitCost):        "Unit Cost",
		string(schema.FieldUnitPrice):       "Unit Price",
		string(schema.FieldDiscount):        "Discount Percent",
		string(schema.FieldRegion):          "Region",
		string(schema.FieldSalesChannel):    "Sales Channel",
		string(schema.FieldProductCategory): "Product Category",
		string(schema.FieldCustomerType):    "Customer Type",
		string(schema.FieldPaymentMethod):   "Payment Method",
		string(schema.FieldSalesRep):        "Sales Rep",
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if raw, ok := rawHeaders[c]; ok {
			header[i] = raw
		} else {
			header[i] = c
		}
	}
	w.Write(header)

	for i := range t.Rows {
		record := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			record[j] = t.Cell(i, c).String()
		}
		w.Write(record)
	}
	w.Flush()
	return buf.Bytes()
}

// generateRow builds one sales record, possibly deliberately broken
func (g *SalesDataGenerator) generateRow() table.Row {
	row := make(table.Row)

	date := g.randomDate()
	quantity := float64(1 + g.rng.Intn(9))
	unitPrice := 10 + g.rng.Float64()*190
	unitCost := unitPrice * (0.4 + g.rng.Float64()*0.4)
	price := unitPrice * quantity

	row[string(schema.FieldDate)] = table.NewTimestampValue(date)
	row[string(schema.FieldPrice)] = table.NewNumericValue(roundCents(price))
	row[string(schema.FieldProductID)] = table.NewStringValue(fmt.Sprintf("sku_%03d", 1+g.rng.Intn(200)))
	row[string(schema.FieldQuantity)] = table.NewNumericValue(quantity)

	if g.config.IncludeOptionals {
		row[string(schema.FieldUnitCost)] = table.NewNumericValue(roundCents(unitCost))
		row[string(schema.FieldUnitPrice)] = table.NewNumericValue(roundCents(unitPrice))
		row[string(schema.FieldDiscount)] = table.NewNumericValue(float64(g.rng.Intn(30)))
		row[string(schema.FieldRegion)] = table.NewStringValue(pick(g.rng, regions))
		row[string(schema.FieldSalesChannel)] = table.NewStringValue(pick(g.rng, channels))
		row[string(schema.FieldProductCategory)] = table.NewStringValue(pick(g.rng, categories))
		row[string(schema.FieldCustomerType)] = table.NewStringValue(pick(g.rng, customerTypes))
		row[string(schema.FieldPaymentMethod)] = table.NewStringValue(pick(g.rng, paymentMethods))
		row[string(schema.FieldSalesRep)] = table.NewStringValue(pick(g.rng, reps))
	}

	// Break a fraction of rows so the cleaner has work to do
	switch {
	case g.rng.Float64() < g.config.MissingRate:
		row[string(schema.FieldPrice)] = table.NewMissingValue()
	case g.rng.Float64() < g.config.BadPriceRate:
		row[string(schema.FieldPrice)] = table.NewNumericValue(-roundCents(price))
	case g.rng.Float64() < g.config.BadQuantityRate:
		row[string(schema.FieldQuantity)] = table.NewNumericValue(0)
	}

	return row
}

// randomDate picks a date uniformly inside the configured range
func (g *SalesDataGenerator) randomDate() time.Time {
	span := int(g.config.EndDate.Sub(g.config.StartDate).Hours() / 24)
	if span <= 0 {
		return g.config.StartDate
	}
	return g.config.StartDate.AddDate(0, 0, g.rng.Intn(span))
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.Intn(len(options))]
}

func roundCents(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

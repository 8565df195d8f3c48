package pipeline

import (
	"salesboard/domain/schema"
	"salesboard/domain/table"
	"salesboard/internal"
)

// CleanConfig controls which columns participate in the missing-value drop.
// The default drops on required fields only; BlanketNullDrop reproduces the
// legacy behavior of dropping a row when any present column is missing, which
// lets a sparse optional column shrink the whole dataset.
type CleanConfig struct {
	DropMissingIn   []string `json:"drop_missing_in"`
	BlanketNullDrop bool     `json:"blanket_null_drop"`
}

// DefaultCleanConfig drops on the required canonical fields only
func DefaultCleanConfig() CleanConfig {
	required := schema.RequiredFields()
	columns := make([]string, len(required))
	for i, f := range required {
		columns[i] = string(f)
	}
	return CleanConfig{DropMissingIn: columns}
}

// BlanketCleanConfig opts in to the legacy all-columns missing-value drop
func BlanketCleanConfig() CleanConfig {
	return CleanConfig{BlanketNullDrop: true}
}

// Cleaner removes rows with missing values and rows violating the sales
// domain constraints. Cleaning is pure: the input table is never modified.
type Cleaner struct {
	config CleanConfig
	logger *internal.Logger
}

// NewCleaner creates a cleaner with the given config
func NewCleaner(config CleanConfig) *Cleaner {
	return &Cleaner{config: config, logger: internal.DefaultLogger}
}

// CleanSales returns a new table with rows removed that have a missing value
// in a participating column, a non-positive quantity, or a non-positive
// price. Applying it to an already-cleaned table removes nothing further.
func (c *Cleaner) CleanSales(t *table.Table) *table.Table {
	before := t.RowCount()

	cleaned := t.Filter(func(row table.Row) bool {
		if c.rowHasMissing(t, row) {
			return false
		}
		quantity := row[string(schema.FieldQuantity)]
		if !quantity.IsNumeric() || quantity.AsFloat64() <= 0 {
			return false
		}
		price := row[string(schema.FieldPrice)]
		if !price.IsNumeric() || price.AsFloat64() <= 0 {
			return false
		}
		return true
	})

	if removed := before - cleaned.RowCount(); removed > 0 {
		c.logger.Info("[Cleaner] removed %d of %d sales rows", removed, before)
	}
	return cleaned
}

// CleanInventory returns a new table with rows removed that have any missing
// value or a negative stock level
func (c *Cleaner) CleanInventory(t *table.Table) *table.Table {
	before := t.RowCount()

	cleaned := t.Filter(func(row table.Row) bool {
		for _, column := range t.Columns {
			v, ok := row[column]
			if !ok || v.IsMissing {
				return false
			}
		}
		stock := row[string(schema.FieldStockLevel)]
		if !stock.IsNumeric() || stock.AsFloat64() < 0 {
			return false
		}
		return true
	})

	if removed := before - cleaned.RowCount(); removed > 0 {
		c.logger.Info("[Cleaner] removed %d of %d inventory rows", removed, before)
	}
	return cleaned
}

// rowHasMissing applies the configured missing-value policy to one row
func (c *Cleaner) rowHasMissing(t *table.Table, row table.Row) bool {
	if c.config.BlanketNullDrop {
		for _, column := range t.Columns {
			v, ok := row[column]
			if !ok || v.IsMissing {
				return true
			}
		}
		return false
	}
	for _, column := range c.config.DropMissingIn {
		if !t.HasColumn(column) {
			continue
		}
		v, ok := row[column]
		if !ok || v.IsMissing {
			return true
		}
	}
	return false
}

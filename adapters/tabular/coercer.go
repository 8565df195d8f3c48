package tabular

import (
	"math"
	"strconv"
	"strings"
	"time"

	"salesboard/domain/table"
)

// Coercer handles deterministic cell coercion from raw upload strings
type Coercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	NormalizeStrings bool `json:"normalize_strings"` // Whether to trim strings
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{NormalizeStrings: true}
}

// NewCoercer creates a coercer with the given config
func NewCoercer(config CoercionConfig) *Coercer {
	return &Coercer{config: config}
}

// CoerceCell deterministically converts a raw cell to a typed Value
func (c *Coercer) CoerceCell(raw string) table.Value {
	strVal := raw
	if c.config.NormalizeStrings {
		strVal = strings.TrimSpace(strVal)
	}
	if strVal == "" {
		return table.NewMissingValue()
	}

	// Try numeric first (most restrictive)
	if numericVal, ok := c.tryParseNumeric(strVal); ok {
		return numericVal
	}

	// Try timestamp
	if tsVal, ok := c.tryParseTimestamp(strVal); ok {
		return tsVal
	}

	// Default to string/categorical
	return table.NewStringValue(strVal)
}

// CoerceDate converts a value to a calendar date, returning a missing value
// when it cannot be parsed. Already-typed timestamps pass through; numerics
// are rejected (a bare number is not a date).
func (c *Coercer) CoerceDate(v table.Value) table.Value {
	switch {
	case v.IsTimestamp():
		return v
	case v.IsString():
		if tsVal, ok := c.tryParseTimestamp(v.AsString()); ok {
			return tsVal
		}
	}
	return table.NewMissingValue()
}

// tryParseNumeric attempts to parse as numeric with strict rules.
// Handles parentheses for negatives, currency symbols, and thousands separators.
func (c *Coercer) tryParseNumeric(strVal string) (table.Value, bool) {
	cleanVal := strings.TrimSpace(strVal)
	if cleanVal == "" {
		return table.Value{}, false
	}

	// Handle parentheses for negative numbers: (123) -> -123
	isNegative := false
	if strings.HasPrefix(cleanVal, "(") && strings.HasSuffix(cleanVal, ")") {
		cleanVal = strings.TrimPrefix(cleanVal, "(")
		cleanVal = strings.TrimSuffix(cleanVal, ")")
		isNegative = true
	}

	// Remove currency symbols
	currencySymbols := []string{"$", "€", "£", "¥", "₹", "USD", "EUR", "GBP", "INR"}
	for _, symbol := range currencySymbols {
		cleanVal = strings.ReplaceAll(cleanVal, symbol, "")
	}
	cleanVal = strings.TrimSpace(cleanVal)

	// Remove percentage sign
	cleanVal = strings.ReplaceAll(cleanVal, "%", "")

	// Remove thousands separators
	cleanVal = strings.ReplaceAll(cleanVal, ",", "")
	cleanVal = strings.ReplaceAll(cleanVal, " ", "")

	if isNegative {
		cleanVal = "-" + cleanVal
	}

	if val, err := strconv.ParseFloat(cleanVal, 64); err == nil {
		// Additional validation: not infinity, not NaN
		if !math.IsInf(val, 0) && !math.IsNaN(val) {
			return table.NewNumericValue(val), true
		}
	}

	return table.Value{}, false
}

// tryParseTimestamp attempts to parse as timestamp with multiple formats
func (c *Coercer) tryParseTimestamp(strVal string) (table.Value, bool) {
	strVal = strings.TrimSpace(strVal)
	if strVal == "" {
		return table.Value{}, false
	}

	// Common timestamp formats to try
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"01/02/2006",
		"2006/01/02",
		"02-Jan-2006",
		"Jan 2, 2006",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, strVal); err == nil {
			return table.NewTimestampValue(t), true
		}
	}

	return table.Value{}, false
}

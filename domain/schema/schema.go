// Package schema defines the canonical column schema the dashboard depends on
// by name, and the user-supplied association from raw upload headers onto it.
package schema

import (
	"sort"
	"strings"

	"salesboard/domain/core"
)

// Field is a canonical column name downstream logic depends on
type Field string

// Required canonical fields
const (
	FieldDate      Field = "date"
	FieldPrice     Field = "price"
	FieldProductID Field = "product_id"
	FieldQuantity  Field = "quantity"
)

// Optional canonical fields
const (
	FieldUnitCost        Field = "unit_cost"
	FieldUnitPrice       Field = "unit_price"
	FieldDiscount        Field = "discount"
	FieldSalesRep        Field = "sales_rep"
	FieldRegion          Field = "region"
	FieldSalesChannel    Field = "sales_channel"
	FieldCustomerType    Field = "customer_type"
	FieldPaymentMethod   Field = "payment_method"
	FieldProductCategory Field = "product_category"
)

// FieldStockLevel is used by the inventory helpers, not the sales flow
const FieldStockLevel Field = "stock_level"

// RequiredFields returns the four fields every upload must map
func RequiredFields() []Field {
	return []Field{FieldDate, FieldPrice, FieldProductID, FieldQuantity}
}

// OptionalFields returns the nine optional fields in sidebar order
func OptionalFields() []Field {
	return []Field{
		FieldUnitCost, FieldUnitPrice, FieldDiscount,
		FieldSalesRep, FieldRegion, FieldSalesChannel,
		FieldCustomerType, FieldPaymentMethod, FieldProductCategory,
	}
}

// CategoricalFields returns the optional fields that drive multi-select
// filters and revenue breakdowns
func CategoricalFields() []Field {
	return []Field{
		FieldRegion, FieldSalesChannel, FieldSalesRep,
		FieldProductCategory, FieldCustomerType, FieldPaymentMethod,
	}
}

// Label returns the human-facing label shown next to the mapping selector
func (f Field) Label() string {
	switch f {
	case FieldDate:
		return "Date of sale"
	case FieldPrice:
		return "Amount of sale"
	case FieldProductID:
		return "Product ID"
	case FieldQuantity:
		return "Quantity"
	case FieldUnitCost:
		return "Unit Cost (cost/unit)"
	case FieldUnitPrice:
		return "Unit Price (price/unit)"
	case FieldDiscount:
		return "Discount (%)"
	case FieldSalesRep:
		return "Sales Representative"
	case FieldRegion:
		return "Region"
	case FieldSalesChannel:
		return "Sales Channel"
	case FieldCustomerType:
		return "Customer Type"
	case FieldPaymentMethod:
		return "Payment Method"
	case FieldProductCategory:
		return "Product Category"
	case FieldStockLevel:
		return "Stock Level"
	}
	return string(f)
}

// IsRequired reports whether the field must be mapped for the pipeline to run
func (f Field) IsRequired() bool {
	switch f {
	case FieldDate, FieldPrice, FieldProductID, FieldQuantity:
		return true
	}
	return false
}

// isKnown reports whether f is part of the canonical schema
func isKnown(f Field) bool {
	for _, known := range RequiredFields() {
		if f == known {
			return true
		}
	}
	for _, known := range OptionalFields() {
		if f == known {
			return true
		}
	}
	return f == FieldStockLevel
}

// NormalizeHeader normalizes a raw upload header: trim, lowercase,
// spaces to underscores
func NormalizeHeader(raw string) string {
	h := strings.TrimSpace(raw)
	h = strings.ToLower(h)
	h = strings.ReplaceAll(h, " ", "_")
	return h
}

// ColumnMapping associates normalized raw headers with canonical fields.
// The zero value is an empty mapping.
type ColumnMapping struct {
	byHeader map[string]Field
}

// NewColumnMapping creates an empty mapping
func NewColumnMapping() *ColumnMapping {
	return &ColumnMapping{byHeader: make(map[string]Field)}
}

// Assign maps a normalized raw header to a canonical field. Assigning a
// second header to the same canonical field, or re-using a header for a
// second field, is rejected rather than letting the last writer silently win.
func (m *ColumnMapping) Assign(rawHeader string, field Field) error {
	if !isKnown(field) {
		return core.ErrUnknownField
	}
	header := NormalizeHeader(rawHeader)
	if existing, ok := m.byHeader[header]; ok && existing != field {
		return core.NewDuplicateMappingError(header, []string{string(existing), string(field)})
	}
	for existing, f := range m.byHeader {
		if f == field && existing != header {
			return core.NewDuplicateMappingError(string(field), []string{existing, header})
		}
	}
	m.byHeader[header] = field
	return nil
}

// Renames returns the raw-header → canonical-name association for the table
func (m *ColumnMapping) Renames() map[string]string {
	renames := make(map[string]string, len(m.byHeader))
	for header, field := range m.byHeader {
		renames[header] = string(field)
	}
	return renames
}

// Mapped reports whether a canonical field has a source header assigned
func (m *ColumnMapping) Mapped(field Field) bool {
	for _, f := range m.byHeader {
		if f == field {
			return true
		}
	}
	return false
}

// MappedFields returns the canonical fields with a source assigned, sorted
func (m *ColumnMapping) MappedFields() []Field {
	var fields []Field
	for _, f := range m.byHeader {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Len returns the number of assigned headers
func (m *ColumnMapping) Len() int {
	return len(m.byHeader)
}

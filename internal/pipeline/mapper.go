// Package pipeline implements the per-render transform chain: column mapping,
// required-field validation, date coercion, cleaning, and filtering. Every
// stage is pure; the caller's table is never mutated.
package pipeline

import (
	"salesboard/domain/schema"
	"salesboard/domain/table"
)

// MapColumns renames the raw headers selected in the mapping to their
// canonical names. Unmapped raw columns keep their normalized header;
// canonical fields with no selection are simply absent afterwards. No type
// coercion happens here.
func MapColumns(raw *table.Table, mapping *schema.ColumnMapping) *table.Table {
	return raw.RenameColumns(mapping.Renames())
}

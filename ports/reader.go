// Package ports defines the interfaces between the dashboard and its
// adapters. The UI depends on these, never on concrete adapter types.
package ports

import (
	"io"

	"salesboard/domain/table"
)

// ReaderPort turns an uploaded file into a typed table. Implementations pick
// the parser from the filename extension.
type ReaderPort interface {
	Read(src io.Reader, filename string) (*table.Table, error)
}

// Package tabular reads uploaded CSV and Excel files into the typed working
// table, normalizing headers and coercing cells deterministically.
package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"salesboard/domain/core"
	"salesboard/domain/schema"
	"salesboard/domain/table"
	"salesboard/internal"
)

// DataReader handles reading Excel and CSV uploads
type DataReader struct {
	coercer *Coercer
	logger  *internal.Logger
}

// NewDataReader creates a reader with the default coercion rules
func NewDataReader() *DataReader {
	return &DataReader{
		coercer: NewCoercer(DefaultCoercionConfig()),
		logger:  internal.DefaultLogger,
	}
}

// Read parses an uploaded file into a raw table. The format is chosen from
// the filename extension: .csv or .xlsx
func (r *DataReader) Read(src io.Reader, filename string) (*table.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return r.readCSV(src)
	case ".xlsx":
		return r.readExcel(src)
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, ext)
	}
}

// readCSV reads CSV data into the typed table format
func (r *DataReader) readCSV(src io.Reader) (*table.Table, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	r.logger.Debug("[DataReader] CSV read in %.2fms (%d rows)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// readExcel reads the first sheet of an Excel workbook into the typed table format
func (r *DataReader) readExcel(src io.Reader) (*table.Table, error) {
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	r.logger.Debug("[DataReader] sheet %q read in %.2fms (%d rows)",
		sheets[0], float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// processRows converts raw string rows into a typed table. The first row is
// the header row; headers are normalized (trim, lowercase, spaces to
// underscores) before anything downstream sees them.
func (r *DataReader) processRows(rows [][]string) (*table.Table, error) {
	if len(rows) == 0 {
		return nil, core.ErrNoHeader
	}

	headerRow := rows[0]
	headers := make([]string, 0, len(headerRow))
	sourceCols := make([]int, 0, len(headerRow))
	for idx, header := range headerRow {
		normalized := schema.NormalizeHeader(header)
		if normalized == "" {
			continue
		}
		headers = append(headers, normalized)
		sourceCols = append(sourceCols, idx)
	}
	if len(headers) == 0 {
		return nil, core.ErrNoHeader
	}

	out := table.New(headers...)
	for i := 1; i < len(rows); i++ {
		record := rows[i]
		row := make(table.Row, len(headers))
		for j, header := range headers {
			if src := sourceCols[j]; src < len(record) {
				row[header] = r.coercer.CoerceCell(record[src])
			} else {
				row[header] = table.NewMissingValue()
			}
		}
		out.AppendRow(row)
	}

	r.logger.Info("[DataReader] parsed %d columns, %d rows", out.ColumnCount(), out.RowCount())
	return out, nil
}

// Package source reads profile rows from tabular files (CSV or XLSX) into
// RawRecords keyed by the declared column names.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/rireki/internal/columns"
	"github.com/hyperjump/rireki/internal/models"
)

// ReadFile reads all rows from the file at path. The format is chosen by
// extension: .xlsx is read as a spreadsheet, everything else as delimited
// text. The first row is the header; declared columns absent from the
// header read as empty strings on every row.
func ReadFile(path string) ([]models.RawRecord, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readXLSX(content)
	default:
		return readCSV(content)
	}
}

// recordsFromRows maps a header row plus data rows to RawRecords. Header
// cells are matched to declared columns by trimmed name; unknown header
// cells are ignored. Rows shorter than the header are padded with empty
// strings.
func recordsFromRows(header []string, rows [][]string) []models.RawRecord {
	colIndex := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		if columns.IsDeclared(name) {
			colIndex[name] = i
		}
	}
	records := make([]models.RawRecord, 0, len(rows))
	for _, row := range rows {
		rec := make(models.RawRecord, len(colIndex))
		for _, col := range columns.All() {
			i, ok := colIndex[col]
			if !ok || i >= len(row) {
				rec[col] = ""
				continue
			}
			rec[col] = row[i]
		}
		records = append(records, rec)
	}
	return records
}

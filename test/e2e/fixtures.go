// Package e2e provides end-to-end tests; this file writes profile data files
// in the supported source formats.
package e2e

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// SupportedFileExtensions is the list of data file extensions used in the
// end-to-end tests.
var SupportedFileExtensions = []string{".csv", ".xlsx"}

// WriteProfileFile writes rows (header first) to path in the format implied
// by ext.
func WriteProfileFile(path, ext string, rows [][]string) error {
	var data []byte
	var err error
	switch ext {
	case ".xlsx":
		data, err = profileXLSX(rows)
	default:
		data, err = profileCSV(rows)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func profileCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func profileXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue("Sheet1", cell, value); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/hyperjump/rireki/internal/models"
)

// readCSV parses delimited text. Quoting is lazy and field counts may vary
// per row; rows that still fail to parse are skipped rather than aborting
// the batch, since upstream exports routinely contain a few broken lines.
func readCSV(content []byte) ([]models.RawRecord, error) {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(content))
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed line; skip it and keep going.
			continue
		}
		rows = append(rows, row)
	}
	return recordsFromRows(header, rows), nil
}

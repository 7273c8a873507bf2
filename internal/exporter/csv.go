// Package exporter converts datasets to downloadable CSV.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"

	"pricepulse/internal/dataprocessing"
)

// WriteOptions configures CSV output.
type WriteOptions struct {
	// BOMPrefix adds a UTF-8 BOM so Excel recognises the encoding.
	BOMPrefix bool
}

// WriteCSV writes a dataset to w with a header row. Null cells and
// undefined numeric results render as empty fields.
func WriteCSV(w io.Writer, ds *dataprocessing.Dataset, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(ds.Columns); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	record := make([]string, len(ds.Columns))
	for i, row := range ds.Rows {
		for j := range ds.Columns {
			record[j] = ""
			if j < len(row) {
				record[j] = row[j].Format()
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	return writer.Error()
}

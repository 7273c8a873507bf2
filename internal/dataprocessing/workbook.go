package dataprocessing

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// parseWorkbook parses xlsx content; every sheet with a header row and at
// least one data row becomes a dataset, in sheet order.
func parseWorkbook(content []byte) ([]*Dataset, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	defer f.Close()

	var datasets []*Dataset
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil || len(rows) == 0 {
			continue
		}
		header, cells := splitHeader(rows)
		if header == nil {
			continue
		}
		datasets = append(datasets, newDatasetFromCells(header, cells))
	}
	if len(datasets) == 0 {
		return nil, fmt.Errorf("%w: workbook contains no tabular sheets", ErrNoTables)
	}
	return datasets, nil
}

// splitHeader returns the first non-empty row as the header and the
// remainder as data cells, or nil when the sheet holds no usable rows.
func splitHeader(rows [][]string) ([]string, [][]string) {
	for i, row := range rows {
		if plausibleHeader(row) {
			return row, rows[i+1:]
		}
	}
	return nil, nil
}

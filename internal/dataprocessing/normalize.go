package dataprocessing

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// DateColumn is the recognised timestamp column name.
	DateColumn = "Date"
	// CloseColumn is the price column indicators operate on.
	CloseColumn = "Close"
	// OpenInterestColumn is dropped during ingestion; it is carried by some
	// exchange dumps but is not part of the analysis domain.
	OpenInterestColumn = "OpenInt"
)

// dateLayouts are tried in order when coercing Date cells. Values matching
// none of them become the null marker rather than failing the parse.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// newDatasetFromCells builds a normalised dataset from a header row and raw
// string cells: cells are typed, the OpenInt column is dropped, Date cells
// are coerced to dates and the rows are stably sorted ascending by date.
// Rows whose date failed to parse sort after all dated rows (nulls last).
func newDatasetFromCells(header []string, cells [][]string) *Dataset {
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	ds := NewDataset(columns)
	dateIdx := ds.ColumnIndex(DateColumn)

	for _, raw := range cells {
		row := make(Row, len(columns))
		for i := range columns {
			var cell string
			if i < len(raw) {
				cell = strings.TrimSpace(raw[i])
			}
			if i == dateIdx {
				row[i] = coerceDate(cell)
			} else {
				row[i] = coerceScalar(cell)
			}
		}
		ds.Rows = append(ds.Rows, row)
	}

	ds.DropColumn(OpenInterestColumn)
	sortByDate(ds)
	return ds
}

// coerceScalar types a raw cell: empty becomes null, numerics (with optional
// thousands separators) become numbers, everything else stays a string.
func coerceScalar(cell string) Value {
	if cell == "" {
		return Null()
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64); err == nil {
		return Number(f)
	}
	return String(cell)
}

// coerceDate parses a raw Date cell against the known layouts. Unparsable
// values become null markers, never an error.
func coerceDate(cell string) Value {
	if cell == "" {
		return Null()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return Date(t)
		}
	}
	return Null()
}

// sortByDate stably sorts rows ascending by the Date column. Rows with a
// null date sort last; datasets without a Date column keep their order.
func sortByDate(ds *Dataset) {
	idx := ds.ColumnIndex(DateColumn)
	if idx < 0 {
		return
	}
	sort.SliceStable(ds.Rows, func(i, j int) bool {
		ti, iOK := ds.Rows[i][idx].Time()
		tj, jOK := ds.Rows[j][idx].Time()
		switch {
		case iOK && jOK:
			return ti.Before(tj)
		case iOK:
			return true
		default:
			return false
		}
	})
}

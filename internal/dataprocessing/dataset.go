package dataprocessing

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// DateLayout is the canonical rendering of date values in JSON and HTML output.
const DateLayout = "2006-01-02"

// Kind identifies the concrete type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindDate
)

// Value is a single typed cell. Cells are one of null, string, number or
// date; the zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	date time.Time
}

// Null returns the null marker value.
func Null() Value { return Value{} }

// String returns a string-typed value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a number-typed value. NaN is a legal payload and marks an
// undefined computation result.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Date returns a date-typed value.
func Date(t time.Time) Value { return Value{kind: KindDate, date: t} }

// Kind reports the concrete type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null marker.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the numeric payload. The second return is false when the
// value is not a number.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Time returns the date payload. The second return is false when the value
// is not a date.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate {
		return time.Time{}, false
	}
	return v.date, true
}

// Text returns the string payload, or "" for any other kind.
func (v Value) Text() string {
	if v.kind != KindString {
		return ""
	}
	return v.str
}

// Format renders the value for display output (HTML tables, log lines).
func (v Value) Format() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if math.IsNaN(v.num) {
			return ""
		}
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindDate:
		return v.date.Format(DateLayout)
	default:
		return ""
	}
}

// MarshalJSON encodes the value as a JSON scalar. Null markers and undefined
// numeric results (NaN, infinities) both encode as JSON null, matching the
// record-oriented output contract.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindNumber:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.num)
	case KindDate:
		return json.Marshal(v.date.Format(DateLayout))
	default:
		return []byte("null"), nil
	}
}

// Row is one record, parallel to the owning Dataset's column list.
type Row []Value

// Dataset is an ordered sequence of rows sharing one column set.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// NewDataset creates an empty dataset with the given column set.
func NewDataset(columns []string) *Dataset {
	return &Dataset{Columns: columns}
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.Rows) }

// ColumnIndex returns the position of the named column, or -1 when absent.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool { return d.ColumnIndex(name) >= 0 }

// Column returns the full column as a value slice, or nil when absent.
func (d *Dataset) Column(name string) []Value {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	col := make([]Value, len(d.Rows))
	for i, row := range d.Rows {
		if idx < len(row) {
			col[i] = row[idx]
		}
	}
	return col
}

// DropColumn removes the named column from the column set and every row.
// Unknown columns are a no-op.
func (d *Dataset) DropColumn(name string) {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return
	}
	d.Columns = append(d.Columns[:idx], d.Columns[idx+1:]...)
	for i, row := range d.Rows {
		if idx < len(row) {
			d.Rows[i] = append(row[:idx], row[idx+1:]...)
		}
	}
}

// Slice returns a new dataset sharing the column set and holding the given
// rows. Rows are shared, not copied; callers that augment must use Extend.
func (d *Dataset) Slice(rows []Row) *Dataset {
	return &Dataset{Columns: d.Columns, Rows: rows}
}

// Extend returns a new dataset with additional derived columns appended.
// The receiver is left untouched: each row is re-allocated so indicator
// output never mutates partitioner output in place.
func (d *Dataset) Extend(names []string, columns ...[]Value) *Dataset {
	out := &Dataset{
		Columns: make([]string, 0, len(d.Columns)+len(names)),
		Rows:    make([]Row, len(d.Rows)),
	}
	out.Columns = append(out.Columns, d.Columns...)
	out.Columns = append(out.Columns, names...)
	for i, row := range d.Rows {
		extended := make(Row, 0, len(row)+len(columns))
		extended = append(extended, row...)
		for _, col := range columns {
			extended = append(extended, col[i])
		}
		out.Rows[i] = extended
	}
	return out
}

// Records converts the dataset to record-oriented form for JSON encoding.
func (d *Dataset) Records() []map[string]Value {
	records := make([]map[string]Value, len(d.Rows))
	for i, row := range d.Rows {
		rec := make(map[string]Value, len(d.Columns))
		for j, col := range d.Columns {
			if j < len(row) {
				rec[col] = row[j]
			} else {
				rec[col] = Null()
			}
		}
		records[i] = rec
	}
	return records
}

// MarshalJSON encodes the dataset as an array of column->value records.
func (d *Dataset) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Records())
}

// Package dataprocessing implements the ingestion pipeline: it loads one
// backing source file, auto-detects its format (HTML tables, delimited text
// or an xlsx workbook), normalises the content into row-oriented datasets
// and partitions a dataset into three chronological segments.
//
// # Detection
//
// Detection is an explicit predicate over a bounded 8 KiB prefix, not an
// exception-driven fallback chain: a ZIP signature selects the workbook
// path, a case-insensitive "<table" occurrence selects the HTML path and
// everything else is treated as delimited text. A failed delimited parse
// makes one fallback attempt at the HTML path over the full content before
// surfacing the original error.
//
// # Normalisation
//
// All paths converge on the same normalisation: cells are typed (null,
// string, number, date), the OpenInt column is dropped, Date cells are
// coerced with unparsable values becoming null markers, and rows are stably
// sorted ascending by date with null dates last.
//
// The reader holds no shared mutable state; every Read re-reads the file,
// which keeps concurrent requests trivially safe.
package dataprocessing

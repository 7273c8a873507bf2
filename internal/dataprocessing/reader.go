package dataprocessing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// sniffLimit bounds the prefix inspected by format detection.
const sniffLimit = 8 * 1024

// Sentinel errors surfaced by the reader. The transport layer maps these to
// structured problem responses.
var (
	// ErrSourceNotFound reports a missing backing file.
	ErrSourceNotFound = errors.New("source file not found")
	// ErrParseFailure reports content that no detection path could parse
	// into at least one table.
	ErrParseFailure = errors.New("source content is not parsable as a table")
	// ErrNoTables reports content that parsed cleanly but yielded no
	// usable table. Treated as a missing resource, not a parse error.
	ErrNoTables = errors.New("no tables found in source")
)

// sourceFormat is the result of content sniffing over the bounded prefix.
type sourceFormat int

const (
	formatDelimited sourceFormat = iota
	formatHTML
	formatWorkbook
)

// zipMagic is the xlsx container signature.
var zipMagic = []byte("PK\x03\x04")

// Reader loads one backing source file into normalised datasets. The path is
// explicit construction-time configuration; there is no process-wide source
// state and every Read hits the file again.
type Reader struct {
	path   string
	logger *slog.Logger
}

// NewReader creates a reader for the given source path.
func NewReader(path string, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		path:   path,
		logger: logger.With(slog.String("component", "source_reader")),
	}
}

// Path returns the configured source path.
func (r *Reader) Path() string { return r.path }

// Read loads and parses the source. The HTML and workbook paths may yield
// several datasets (one per table or sheet); the delimited path yields
// exactly one. Returns ErrSourceNotFound when the file is absent,
// ErrNoTables when the content parses but holds no usable table, and
// ErrParseFailure when no detection path can parse it at all.
func (r *Reader) Read(ctx context.Context) ([]*Dataset, error) {
	content, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, r.path)
		}
		return nil, fmt.Errorf("reading source %s: %w", r.path, err)
	}

	format := detectFormat(content)
	r.logger.DebugContext(ctx, "source read",
		slog.String("path", r.path),
		slog.Int("bytes", len(content)),
		slog.Int("format", int(format)))

	switch format {
	case formatWorkbook:
		return parseWorkbook(content)
	case formatHTML:
		return parseHTMLTables(content)
	default:
		ds, delimErr := parseDelimited(content)
		if delimErr == nil {
			return []*Dataset{ds}, nil
		}
		// Fallback: some sources carry table markup past the sniff window.
		if tables, htmlErr := parseHTMLTables(content); htmlErr == nil {
			return tables, nil
		}
		return nil, delimErr
	}
}

// detectFormat applies the detection predicate over the bounded prefix: a
// ZIP signature selects the workbook path, a case-insensitive "<table"
// occurrence selects the HTML path, anything else is treated as delimited
// text.
func detectFormat(content []byte) sourceFormat {
	prefix := content
	if len(prefix) > sniffLimit {
		prefix = prefix[:sniffLimit]
	}
	if bytes.HasPrefix(prefix, zipMagic) {
		return formatWorkbook
	}
	if bytes.Contains(bytes.ToLower(prefix), []byte("<table")) {
		return formatHTML
	}
	return formatDelimited
}

package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
)

// delimiterCandidates are tried when sniffing the column separator from the
// header line, most common first.
var delimiterCandidates = []rune{',', ';', '\t'}

// parseDelimited parses delimited text with a header row into one dataset.
func parseDelimited(content []byte) (*Dataset, error) {
	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty content", ErrParseFailure)
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = detectDelimiter(trimmed)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrParseFailure)
	}

	header := records[0]
	if !plausibleHeader(header) {
		return nil, fmt.Errorf("%w: first row is not a header", ErrParseFailure)
	}

	return newDatasetFromCells(header, records[1:]), nil
}

// detectDelimiter picks the candidate occurring most often in the first
// line, falling back to comma.
func detectDelimiter(content string) rune {
	line := content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	best, bestCount := ',', 0
	for _, cand := range delimiterCandidates {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}

// plausibleHeader rejects headers that are entirely empty. Numeric header
// cells are tolerated; the source format carries no stronger signal.
func plausibleHeader(header []string) bool {
	for _, h := range header {
		if strings.TrimSpace(h) != "" {
			return true
		}
	}
	return false
}

package services

import "errors"

// Data service errors
var (
	// ErrTableOutOfRange reports a table index outside the parsed tables.
	ErrTableOutOfRange = errors.New("table index out of range")

	// ErrUnknownSegment reports a part selector other than
	// all/early/mid/recent.
	ErrUnknownSegment = errors.New("unknown segment")

	// ErrNoChartData reports a segment too small to render.
	ErrNoChartData = errors.New("no chart data available")
)

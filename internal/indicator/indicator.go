// Package indicator computes technical indicators (Bollinger Bands, MACD)
// over a dataset segment. All computations are pure: each call returns a new
// augmented dataset and never mutates its input. A segment without a Close
// column passes through unmodified; that is defined degraded behaviour, not
// an error.
package indicator

import (
	"math"

	"pricepulse/internal/dataprocessing"
)

// Default parameters, matching the conventional settings for daily bars.
const (
	DefaultWindow = 20
	DefaultK      = 2.0
	DefaultFast   = 12
	DefaultSlow   = 26
	DefaultSignal = 9
)

// closes extracts the Close column as a float series. Cells that are not
// numbers contribute NaN. The second return is false when the column is
// absent entirely.
func closes(ds *dataprocessing.Dataset) ([]float64, bool) {
	col := ds.Column(dataprocessing.CloseColumn)
	if col == nil {
		return nil, false
	}
	out := make([]float64, len(col))
	for i, v := range col {
		if f, ok := v.Float(); ok {
			out[i] = f
		} else {
			out[i] = math.NaN()
		}
	}
	return out, true
}

// ema computes the exponential moving average with smoothing factor
// alpha = 2/(span+1) and the recurrence EMA[0] = x[0],
// EMA[i] = alpha*x[i] + (1-alpha)*EMA[i-1]. No bias correction is applied,
// so the first values weight the seed heavily.
func ema(x []float64, span int) []float64 {
	out := make([]float64, len(x))
	if len(x) == 0 {
		return out
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out[0] = x[0]
	for i := 1; i < len(x); i++ {
		out[i] = alpha*x[i] + (1-alpha)*out[i-1]
	}
	return out
}

// numberColumn wraps a float series as dataset values.
func numberColumn(x []float64) []dataprocessing.Value {
	out := make([]dataprocessing.Value, len(x))
	for i, f := range x {
		out[i] = dataprocessing.Number(f)
	}
	return out
}

package indicator

import (
	"pricepulse/internal/dataprocessing"
)

// MACD column names added to the segment.
const (
	ColMACD   = "MACD"
	ColSignal = "Signal"
	ColHist   = "Hist"
)

// MACD augments a segment with the MACD line (fast EMA minus slow EMA of
// Close), its signal line (EMA of the MACD line) and their difference as
// the histogram. The EMA recurrence is seeded with the first value and
// carries no bias correction, so results match the adjust=false convention.
func MACD(ds *dataprocessing.Dataset, fast, slow, signal int) *dataprocessing.Dataset {
	series, ok := closes(ds)
	if !ok {
		return ds
	}

	fastEMA := ema(series, fast)
	slowEMA := ema(series, slow)

	macd := make([]float64, len(series))
	for i := range series {
		macd[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine := ema(macd, signal)
	hist := make([]float64, len(series))
	for i := range macd {
		hist[i] = macd[i] - signalLine[i]
	}

	return ds.Extend(
		[]string{ColMACD, ColSignal, ColHist},
		numberColumn(macd),
		numberColumn(signalLine),
		numberColumn(hist),
	)
}

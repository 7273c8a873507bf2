package indicator

import (
	"math"

	"pricepulse/internal/dataprocessing"
)

// Bollinger band column names added to the segment.
const (
	ColMA        = "MA"
	ColUpper     = "Upper"
	ColLower     = "Lower"
	ColPercentB  = "PercentB"
	ColBandWidth = "BandWidth"
)

// Bollinger augments a segment with Bollinger Band columns over the Close
// series: a trailing moving average with minimum period 1, an envelope at
// k population standard deviations, plus the %B and bandwidth ratios.
// Division by zero in the ratios yields NaN, which encodes as JSON null.
func Bollinger(ds *dataprocessing.Dataset, window int, k float64) *dataprocessing.Dataset {
	series, ok := closes(ds)
	if !ok {
		return ds
	}

	n := len(series)
	ma := make([]float64, n)
	upper := make([]float64, n)
	lower := make([]float64, n)
	percentB := make([]float64, n)
	bandWidth := make([]float64, n)

	for i := 0; i < n; i++ {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		mean, std := meanStd(series[start : i+1])
		ma[i] = mean
		upper[i] = mean + k*std
		lower[i] = mean - k*std
		percentB[i] = (series[i] - lower[i]) / (upper[i] - lower[i])
		bandWidth[i] = (upper[i] - lower[i]) / ma[i]
	}

	return ds.Extend(
		[]string{ColMA, ColUpper, ColLower, ColPercentB, ColBandWidth},
		numberColumn(ma),
		numberColumn(upper),
		numberColumn(lower),
		numberColumn(percentB),
		numberColumn(bandWidth),
	)
}

// meanStd returns the arithmetic mean and population standard deviation
// (denominator = count) of the window.
func meanStd(window []float64) (mean, std float64) {
	n := float64(len(window))
	for _, v := range window {
		mean += v
	}
	mean /= n

	var sq float64
	for _, v := range window {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / n)
}

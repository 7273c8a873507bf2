// Package chart renders indicator-augmented segments as PNG line charts.
// It is a presentation adapter: it consumes the indicator engine's output
// columns and owns no computation of its own.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"time"

	chartlib "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"pricepulse/internal/dataprocessing"
	"pricepulse/internal/indicator"
)

// ErrNotEnoughData reports a segment too small to plot (fewer than two rows).
var ErrNotEnoughData = errors.New("not enough rows to render a chart")

// Bollinger renders Close together with the moving average and band columns.
func Bollinger(ds *dataprocessing.Dataset, title string) ([]byte, error) {
	return render(ds, title, []plotted{
		{name: dataprocessing.CloseColumn, color: chartlib.ColorBlue},
		{name: indicator.ColMA, color: chartlib.ColorBlack},
		{name: indicator.ColUpper, color: chartlib.ColorRed},
		{name: indicator.ColLower, color: chartlib.ColorGreen},
	})
}

// MACD renders the MACD line, signal line and histogram.
func MACD(ds *dataprocessing.Dataset, title string) ([]byte, error) {
	return render(ds, title, []plotted{
		{name: indicator.ColMACD, color: chartlib.ColorBlue},
		{name: indicator.ColSignal, color: chartlib.ColorRed},
		{name: indicator.ColHist, color: chartlib.ColorAlternateGray},
	})
}

// plotted names one dataset column drawn as a line series.
type plotted struct {
	name  string
	color drawing.Color
}

func render(ds *dataprocessing.Dataset, title string, lines []plotted) ([]byte, error) {
	if ds.Len() < 2 {
		return nil, fmt.Errorf("%w: %d rows", ErrNotEnoughData, ds.Len())
	}

	times, dated := dateAxis(ds)
	graph := chartlib.Chart{
		Title:  title,
		Width:  1024,
		Height: 512,
	}

	for _, line := range lines {
		ys := floatColumn(ds, line.name)
		if ys == nil {
			continue
		}
		style := chartlib.Style{StrokeColor: line.color}
		if dated {
			graph.Series = append(graph.Series, chartlib.TimeSeries{
				Name:    line.name,
				Style:   style,
				XValues: times,
				YValues: ys,
			})
		} else {
			graph.Series = append(graph.Series, chartlib.ContinuousSeries{
				Name:    line.name,
				Style:   style,
				XValues: chartlib.LinearRange(0, float64(ds.Len()-1)),
				YValues: ys,
			})
		}
	}
	if len(graph.Series) == 0 {
		return nil, fmt.Errorf("%w: no plottable columns", ErrNotEnoughData)
	}

	var buf bytes.Buffer
	if err := graph.Render(chartlib.PNG, &buf); err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}
	return buf.Bytes(), nil
}

// dateAxis returns the Date column as the time axis when every row carries
// a parsed date; otherwise the chart falls back to a positional axis.
func dateAxis(ds *dataprocessing.Dataset) ([]time.Time, bool) {
	col := ds.Column(dataprocessing.DateColumn)
	if col == nil {
		return nil, false
	}
	times := make([]time.Time, len(col))
	for i, v := range col {
		t, ok := v.Time()
		if !ok {
			return nil, false
		}
		times[i] = t
	}
	return times, true
}

// floatColumn extracts a numeric column, or nil when the column is absent.
// Non-numeric cells become NaN and break the line at that point.
func floatColumn(ds *dataprocessing.Dataset, name string) []float64 {
	col := ds.Column(name)
	if col == nil {
		return nil
	}
	out := make([]float64, len(col))
	for i, v := range col {
		if f, ok := v.Float(); ok {
			out[i] = f
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

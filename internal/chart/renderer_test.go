package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricepulse/internal/dataprocessing"
	"pricepulse/internal/indicator"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func priceDataset(t *testing.T, closes ...float64) *dataprocessing.Dataset {
	t.Helper()
	ds := dataprocessing.NewDataset([]string{dataprocessing.DateColumn, dataprocessing.CloseColumn})
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		ds.Rows = append(ds.Rows, dataprocessing.Row{
			dataprocessing.Date(start.AddDate(0, 0, i)),
			dataprocessing.Number(c),
		})
	}
	return ds
}

func TestBollingerRendersPNG(t *testing.T) {
	ds := indicator.Bollinger(priceDataset(t, 10, 12, 9, 14, 11, 13, 8, 15), 4, 2)

	png, err := Bollinger(ds, "Bollinger recent")
	require.NoError(t, err)
	require.Greater(t, len(png), len(pngMagic))
	assert.Equal(t, pngMagic, png[:len(pngMagic)])
}

func TestMACDRendersPNG(t *testing.T) {
	ds := indicator.MACD(priceDataset(t, 10, 12, 9, 14, 11, 13, 8, 15), 3, 6, 4)

	png, err := MACD(ds, "MACD recent")
	require.NoError(t, err)
	require.Greater(t, len(png), len(pngMagic))
	assert.Equal(t, pngMagic, png[:len(pngMagic)])
}

func TestRenderTooFewRows(t *testing.T) {
	ds := indicator.Bollinger(priceDataset(t, 10), 4, 2)

	_, err := Bollinger(ds, "tiny")
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestRenderNoPlottableColumns(t *testing.T) {
	ds := dataprocessing.NewDataset([]string{"Comment"})
	ds.Rows = append(ds.Rows,
		dataprocessing.Row{dataprocessing.String("a")},
		dataprocessing.Row{dataprocessing.String("b")},
	)

	_, err := MACD(ds, "empty")
	assert.ErrorIs(t, err, ErrNotEnoughData)
}

func TestRenderPositionalAxisWithoutDates(t *testing.T) {
	ds := dataprocessing.NewDataset([]string{dataprocessing.CloseColumn})
	for _, c := range []float64{10, 12, 9, 14, 11} {
		ds.Rows = append(ds.Rows, dataprocessing.Row{dataprocessing.Number(c)})
	}

	png, err := Bollinger(indicator.Bollinger(ds, 3, 2), "positional")
	require.NoError(t, err)
	assert.Equal(t, pngMagic, png[:len(pngMagic)])
}

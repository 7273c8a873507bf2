package exporter

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricepulse/internal/dataprocessing"
)

func TestWriteCSV(t *testing.T) {
	ds := dataprocessing.NewDataset([]string{"Date", "Close", "Note"})
	ds.Rows = append(ds.Rows,
		dataprocessing.Row{
			dataprocessing.Date(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
			dataprocessing.Number(10.5),
			dataprocessing.String("split"),
		},
		dataprocessing.Row{
			dataprocessing.Null(),
			dataprocessing.Number(math.NaN()),
			dataprocessing.Null(),
		},
	)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ds, WriteOptions{}))

	want := "Date,Close,Note\n2020-01-01,10.5,split\n,,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSVWithBOM(t *testing.T) {
	ds := dataprocessing.NewDataset([]string{"Close"})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ds, WriteOptions{BOMPrefix: true}))

	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, buf.Bytes()[:3])
	assert.Equal(t, "Close\n", buf.String()[3:])
}

func TestWriteCSVRaggedRow(t *testing.T) {
	ds := dataprocessing.NewDataset([]string{"Date", "Close"})
	ds.Rows = append(ds.Rows, dataprocessing.Row{dataprocessing.String("x")})

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ds, WriteOptions{}))

	assert.Equal(t, "Date,Close\nx,\n", buf.String())
}

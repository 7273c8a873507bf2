package dataprocessing

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// priceDataset builds a dated dataset with one row per close value, dates
// running daily from Jan 1 2020.
func priceDataset(t *testing.T, closes ...float64) *Dataset {
	t.Helper()
	ds := NewDataset([]string{DateColumn, CloseColumn})
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		ds.Rows = append(ds.Rows, Row{
			Date(start.AddDate(0, 0, i)),
			Number(c),
		})
	}
	return ds
}

func segmentCloses(t *testing.T, ds *Dataset) []float64 {
	t.Helper()
	var out []float64
	for _, v := range ds.Column(CloseColumn) {
		f, ok := v.Float()
		require.True(t, ok)
		out = append(out, f)
	}
	return out
}

func TestSplitNineRows(t *testing.T) {
	ds := priceDataset(t, 1, 2, 3, 4, 5, 6, 7, 8, 9)

	p := Split(ds)

	assert.Equal(t, []float64{1, 2, 3}, segmentCloses(t, p.Early))
	assert.Equal(t, []float64{4, 5, 6}, segmentCloses(t, p.Mid))
	assert.Equal(t, []float64{7, 8, 9}, segmentCloses(t, p.Recent))
}

func TestSplitRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5, 10, 31, 100} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			closes := make([]float64, n)
			for i := range closes {
				closes[i] = float64(i + 1)
			}
			ds := priceDataset(t, closes...)

			p := Split(ds)

			total := p.Early.Len() + p.Mid.Len() + p.Recent.Len()
			assert.Equal(t, n, total)

			// Concatenating the segments in order reproduces the input.
			var joined []float64
			for _, seg := range []*Dataset{p.Early, p.Mid, p.Recent} {
				joined = append(joined, segmentCloses(t, seg)...)
			}
			assert.Equal(t, closes, joined)
		})
	}
}

func TestSplitSegmentBoundariesAreChronological(t *testing.T) {
	ds := priceDataset(t, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11)

	p := Split(ds)

	lastDate := func(seg *Dataset) time.Time {
		ts, ok := seg.Rows[seg.Len()-1][0].Time()
		require.True(t, ok)
		return ts
	}
	firstDate := func(seg *Dataset) time.Time {
		ts, ok := seg.Rows[0][0].Time()
		require.True(t, ok)
		return ts
	}

	assert.True(t, lastDate(p.Early).Before(firstDate(p.Mid)))
	assert.True(t, lastDate(p.Mid).Before(firstDate(p.Recent)))
}

func TestSplitEmptyDataset(t *testing.T) {
	p := Split(NewDataset([]string{DateColumn, CloseColumn}))

	assert.Equal(t, 0, p.Early.Len())
	assert.Equal(t, 0, p.Mid.Len())
	assert.Equal(t, 0, p.Recent.Len())
}

func TestSplitSingleRow(t *testing.T) {
	p := Split(priceDataset(t, 42))

	assert.Equal(t, 1, p.Early.Len())
	assert.Equal(t, 0, p.Mid.Len())
	assert.Equal(t, 0, p.Recent.Len())
}

func TestSplitNullDatesExcluded(t *testing.T) {
	ds := priceDataset(t, 1, 2, 3, 4, 5, 6)
	ds.Rows = append(ds.Rows, Row{Null(), Number(99)})

	p := Split(ds)

	total := p.Early.Len() + p.Mid.Len() + p.Recent.Len()
	assert.Equal(t, 6, total)
	for _, seg := range []*Dataset{p.Early, p.Mid, p.Recent} {
		for _, f := range segmentCloses(t, seg) {
			assert.NotEqual(t, 99.0, f)
		}
	}
}

func TestSplitFallsBackToPositionWithoutDates(t *testing.T) {
	ds := NewDataset([]string{CloseColumn})
	for i := 1; i <= 9; i++ {
		ds.Rows = append(ds.Rows, Row{Number(float64(i))})
	}

	p := Split(ds)

	assert.Equal(t, []float64{1, 2, 3}, segmentCloses(t, p.Early))
	assert.Equal(t, []float64{4, 5, 6}, segmentCloses(t, p.Mid))
	assert.Equal(t, []float64{7, 8, 9}, segmentCloses(t, p.Recent))
}

func TestSplitAllDatesNullFallsBackToPosition(t *testing.T) {
	ds := NewDataset([]string{DateColumn, CloseColumn})
	for i := 1; i <= 3; i++ {
		ds.Rows = append(ds.Rows, Row{Null(), Number(float64(i))})
	}

	p := Split(ds)

	assert.Equal(t, 1, p.Early.Len())
	assert.Equal(t, 1, p.Mid.Len())
	assert.Equal(t, 1, p.Recent.Len())
}

func TestSplitDuplicateCutDates(t *testing.T) {
	// Every row shares one date, so both cut points collapse onto it and
	// all rows satisfy date <= t1.
	ds := NewDataset([]string{DateColumn, CloseColumn})
	day := time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 6; i++ {
		ds.Rows = append(ds.Rows, Row{Date(day), Number(float64(i))})
	}

	p := Split(ds)

	assert.Equal(t, 6, p.Early.Len())
	assert.Equal(t, 0, p.Mid.Len())
	assert.Equal(t, 0, p.Recent.Len())
}

func TestPartitionGet(t *testing.T) {
	p := Split(priceDataset(t, 1, 2, 3))

	assert.Same(t, p.Early, p.Get(PartEarly))
	assert.Same(t, p.Mid, p.Get(PartMid))
	assert.Same(t, p.Recent, p.Get(PartRecent))
	assert.Nil(t, p.Get("bogus"))
	assert.Nil(t, p.Get(PartAll))
}

func TestPartitionByName(t *testing.T) {
	p := Split(priceDataset(t, 1, 2, 3))

	byName := p.ByName()
	require.Len(t, byName, 3)
	assert.Same(t, p.Early, byName[PartEarly])
	assert.Same(t, p.Mid, byName[PartMid])
	assert.Same(t, p.Recent, byName[PartRecent])
}

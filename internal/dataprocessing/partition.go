package dataprocessing

import (
	"sort"
	"time"
)

// Segment names accepted by the partition selectors.
const (
	PartAll    = "all"
	PartEarly  = "early"
	PartMid    = "mid"
	PartRecent = "recent"
)

// Partition is the three chronological segments of a dataset. Segments are
// derived fresh on every request and never persisted.
type Partition struct {
	Early  *Dataset
	Mid    *Dataset
	Recent *Dataset
}

// Get resolves a segment by name. Unknown names return nil.
func (p Partition) Get(part string) *Dataset {
	switch part {
	case PartEarly:
		return p.Early
	case PartMid:
		return p.Mid
	case PartRecent:
		return p.Recent
	default:
		return nil
	}
}

// ByName returns the segments keyed by their names, in no particular order.
func (p Partition) ByName() map[string]*Dataset {
	return map[string]*Dataset{
		PartEarly:  p.Early,
		PartMid:    p.Mid,
		PartRecent: p.Recent,
	}
}

// Split partitions a dataset into three chronological segments of roughly
// equal size. It never fails: an empty dataset maps every segment to an
// empty dataset.
//
// With at least one non-null date the cut dates t1 and t2 are drawn at the
// 1/3 and 2/3 marks of the sorted non-null dates and rows bucket by
// date <= t1, t1 < date <= t2 and date > t2. Rows with a null date fall
// through every inequality and land in no segment. Without usable dates the
// split degrades to three contiguous positional ranges.
func Split(ds *Dataset) Partition {
	dateIdx := ds.ColumnIndex(DateColumn)
	if dateIdx >= 0 {
		if dates := nonNullDates(ds, dateIdx); len(dates) > 0 {
			return splitByDate(ds, dateIdx, dates)
		}
	}
	return splitByPosition(ds)
}

// nonNullDates collects the parsed dates of the column in ascending order.
func nonNullDates(ds *Dataset, dateIdx int) []time.Time {
	var dates []time.Time
	for _, row := range ds.Rows {
		if t, ok := row[dateIdx].Time(); ok {
			dates = append(dates, t)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func splitByDate(ds *Dataset, dateIdx int, dates []time.Time) Partition {
	n := len(dates)
	t1 := dates[max(0, n/3-1)]
	t2 := dates[max(0, 2*n/3-1)]

	var early, mid, recent []Row
	for _, row := range ds.Rows {
		t, ok := row[dateIdx].Time()
		if !ok {
			continue
		}
		switch {
		case !t.After(t1):
			early = append(early, row)
		case !t.After(t2):
			mid = append(mid, row)
		default:
			recent = append(recent, row)
		}
	}
	return Partition{
		Early:  ds.Slice(early),
		Mid:    ds.Slice(mid),
		Recent: ds.Slice(recent),
	}
}

func splitByPosition(ds *Dataset) Partition {
	n := len(ds.Rows)
	c1, c2 := n/3, 2*n/3
	return Partition{
		Early:  ds.Slice(ds.Rows[:c1]),
		Mid:    ds.Slice(ds.Rows[c1:c2]),
		Recent: ds.Slice(ds.Rows[c2:]),
	}
}

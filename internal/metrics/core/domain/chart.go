package domain

import "time"

// Dated is anything that belongs to a single day.
type Dated interface {
	Date() time.Time
}

// BucketValue is one metric read out of a daily bucket.
type BucketValue struct {
	Day   time.Time
	Value int64
}

func (b BucketValue) Date() time.Time { return b.Day }

type ChartPoint struct {
	Date  time.Time
	Value int64
}

// BuildChartSeries turns an ascending run of cumulative rows into daily deltas.
// The first row only seeds the first delta and is never emitted.
func BuildChartSeries[T Dated](rows []T, value func(T) int64) []ChartPoint {
	if len(rows) < 2 {
		return []ChartPoint{}
	}

	out := make([]ChartPoint, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		out = append(out, ChartPoint{
			Date:  rows[i].Date(),
			Value: max(0, value(rows[i])-value(rows[i-1])),
		})
	}
	return out
}

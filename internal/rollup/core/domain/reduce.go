package domain

import (
	"sort"
	"time"

	"mastodon-analytics-service/internal/counter"
	"mastodon-analytics-service/internal/timeframe"
)

// GroupMax keeps the highest value seen for every key.
func GroupMax[T any, K comparable](rows []T, key func(T) K, value func(T) int64) map[K]int64 {
	out := make(map[K]int64)
	for _, r := range rows {
		k, v := key(r), value(r)
		if cur, ok := out[k]; !ok || v > cur {
			out[k] = v
		}
	}
	return out
}

// SumBy folds a keyed map into coarser groups by summing values.
func SumBy[K, G comparable](in map[K]int64, group func(K) G) map[G]int64 {
	out := make(map[G]int64)
	for k, v := range in {
		out[group(k)] += v
	}
	return out
}

type metricDay struct {
	metric counter.Metric
	day    int64
}

type itemMetricDay struct {
	metricDay
	item string
}

// BuildBuckets reduces one account's raw samples into daily buckets for the
// calendar of loc. Samples fetched on or after today (a local midnight) are
// ignored, so a bucket is never built from a partial day. Buckets come back
// ordered by day.
func BuildBuckets(accountID string, loc *time.Location, today time.Time, samples []CounterSample) []DailyBucket {
	var pointInTime, perItem []CounterSample
	for _, s := range samples {
		if !s.FetchedAt.Before(today) {
			continue
		}
		switch s.Metric.Strategy() {
		case counter.PerItem:
			perItem = append(perItem, s)
		default:
			pointInTime = append(pointInTime, s)
		}
	}

	localDay := func(s CounterSample) int64 {
		return timeframe.Today(loc, s.FetchedAt).Unix()
	}
	value := func(s CounterSample) int64 { return s.Value }

	totals := GroupMax(pointInTime, func(s CounterSample) metricDay {
		return metricDay{metric: s.Metric, day: localDay(s)}
	}, value)

	itemMax := GroupMax(perItem, func(s CounterSample) itemMetricDay {
		return itemMetricDay{metricDay: metricDay{metric: s.Metric, day: localDay(s)}, item: s.ItemID}
	}, value)
	for k, v := range SumBy(itemMax, func(k itemMetricDay) metricDay { return k.metricDay }) {
		totals[k] = v
	}

	byDay := make(map[int64]map[counter.Metric]int64)
	for k, v := range totals {
		if byDay[k.day] == nil {
			byDay[k.day] = make(map[counter.Metric]int64)
		}
		byDay[k.day][k.metric] = v
	}

	days := make([]int64, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	buckets := make([]DailyBucket, 0, len(days))
	for _, d := range days {
		buckets = append(buckets, DailyBucket{
			AccountID: accountID,
			Day:       time.Unix(d, 0).In(loc),
			Values:    byDay[d],
		})
	}
	return buckets
}

// MergeValues folds the stored rows of one account-day and an update into a
// single value map. Stored duplicates keep their highest value; the update wins
// for every metric it carries.
func MergeValues(stored []map[counter.Metric]int64, update map[counter.Metric]int64) map[counter.Metric]int64 {
	out := make(map[counter.Metric]int64, len(update))
	for _, row := range stored {
		for m, v := range row {
			if cur, ok := out[m]; !ok || v > cur {
				out[m] = v
			}
		}
	}
	for m, v := range update {
		out[m] = v
	}
	return out
}

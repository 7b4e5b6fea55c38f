package domain

import (
	"errors"
	"fmt"
	"time"

	"mastodon-analytics-service/internal/counter"
)

var ErrInvalidWriteMode = errors.New("invalid write mode")

type Account struct {
	ID       string
	Timezone string
}

// CounterSample is one raw reading of a counter. ItemID is empty for account
// level counters and holds the status ID for per-item counters.
type CounterSample struct {
	AccountID string
	Metric    counter.Metric
	ItemID    string
	FetchedAt time.Time
	Value     int64
}

// DailyBucket is the finalized value of every metric for one account-day.
// Day is the local midnight of the account's timezone.
type DailyBucket struct {
	AccountID string
	Day       time.Time
	Values    map[counter.Metric]int64
}

// WriteMode selects how a bucket write treats an existing row for the same
// (account, day).
type WriteMode string

const (
	// Insert always adds a row. Re-running it over the same days duplicates rows.
	Insert WriteMode = "insert"
	// Upsert replaces any row with the same (account, day).
	Upsert WriteMode = "upsert"
)

func ParseWriteMode(s string) (WriteMode, error) {
	switch m := WriteMode(s); m {
	case Insert, Upsert:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidWriteMode, s)
	}
}

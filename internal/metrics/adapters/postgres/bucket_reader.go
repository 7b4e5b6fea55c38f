package postgres

import (
	"context"
	"time"

	"mastodon-analytics-service/internal/counter"
	"mastodon-analytics-service/internal/metrics/core/domain"
	"mastodon-analytics-service/internal/metrics/core/ports"
)

type BucketReader struct {
	db DB
}

func NewBucketReader(db DB) *BucketReader {
	return &BucketReader{db: db}
}

var _ ports.BucketReader = (*BucketReader)(nil)

// day is a DATE holding the account-local calendar day; metrics is a JSONB
// object keyed by metric name.
const latestAtOrBeforeSQL = `
SELECT (metrics->>$2)::bigint
FROM daily_buckets
WHERE account_id = $1
  AND metrics->>$2 IS NOT NULL
  AND day <= $3
ORDER BY day DESC
LIMIT 1`

// DISTINCT ON collapses rows duplicated by insert-mode reruns.
const rangeSQL = `
SELECT DISTINCT ON (day)
    day,
    (metrics->>$2)::bigint AS value
FROM daily_buckets
WHERE account_id = $1
  AND metrics->>$2 IS NOT NULL
  AND day >= $3
  AND day <= $4
ORDER BY day, value DESC`

func (r *BucketReader) FindLatestAtOrBefore(ctx context.Context, accountID string, metric counter.Metric, instant time.Time) (int64, bool, error) {
	rows, err := r.db.QueryContext(ctx, latestAtOrBeforeSQL, accountID, string(metric), instant.Format(time.DateOnly))
	if err != nil {
		return 0, false, err
	}
	defer rows.Close()

	var (
		value int64
		found bool
	)
	if rows.Next() {
		if err := rows.Scan(&value); err != nil {
			return 0, false, err
		}
		found = true
	}

	if err := rows.Err(); err != nil {
		return 0, false, err
	}

	return value, found, nil
}

func (r *BucketReader) FindRange(ctx context.Context, accountID string, metric counter.Metric, from, to time.Time) ([]domain.BucketValue, error) {
	rows, err := r.db.QueryContext(ctx, rangeSQL,
		accountID,
		string(metric),
		from.Format(time.DateOnly),
		to.Format(time.DateOnly),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loc := from.Location()
	var out []domain.BucketValue

	for rows.Next() {
		var (
			day   time.Time
			value int64
		)
		if err := rows.Scan(&day, &value); err != nil {
			return nil, err
		}

		out = append(out, domain.BucketValue{
			Day:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc),
			Value: value,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

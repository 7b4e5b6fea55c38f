package ports

import (
	"context"
	"time"

	"mastodon-analytics-service/internal/counter"
	"mastodon-analytics-service/internal/metrics/core/domain"
)

type BucketReader interface {
	// FindLatestAtOrBefore returns the metric value of the newest bucket whose
	// day is on or before the local date of instant. found is false when there is none.
	FindLatestAtOrBefore(ctx context.Context, accountID string, metric counter.Metric, instant time.Time) (value int64, found bool, err error)

	// FindRange returns buckets with from <= day <= to, oldest first. Days come
	// back as local midnights in from's location.
	FindRange(ctx context.Context, accountID string, metric counter.Metric, from, to time.Time) ([]domain.BucketValue, error)
}

type ContentReader interface {
	// FindContentItems lists an account's statuses, optionally bounded by
	// creation time to [from, to).
	FindContentItems(ctx context.Context, accountID string, from, to *time.Time) ([]domain.ContentItem, error)
}

type AccountReader interface {
	// FindAccount returns domain.ErrAccountNotFound for unknown ids.
	FindAccount(ctx context.Context, id string) (*domain.Account, error)
}

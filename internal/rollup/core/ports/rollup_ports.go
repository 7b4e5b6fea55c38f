package ports

import (
	"context"
	"time"

	"mastodon-analytics-service/internal/counter"
	"mastodon-analytics-service/internal/rollup/core/domain"
)

type AccountLister interface {
	ListActiveAccounts(ctx context.Context) ([]domain.Account, error)
}

type SampleReader interface {
	// FindSamples returns samples with from <= fetched_at < to, oldest first.
	// A zero from means no lower bound.
	FindSamples(ctx context.Context, accountID string, metrics []counter.Metric, from, to time.Time) ([]domain.CounterSample, error)
}

type BucketWriter interface {
	// WriteBucket:
	//   mode = Insert -> always adds a row (duplicates on re-run)
	//   mode = Upsert -> collapses every row with the same (account, day) into
	//                    one, overwriting only the metrics present in b
	WriteBucket(ctx context.Context, b *domain.DailyBucket, mode domain.WriteMode) error
}

// RunRecorder receives per-account outcomes of a rollup run.
type RunRecorder interface {
	AccountProcessed()
	AccountFailed()
	BucketsWritten(mode domain.WriteMode, n int)
}

package usecase_test

import (
	"context"
	"sync"
	"time"

	"mastodon-analytics-service/internal/counter"
	"mastodon-analytics-service/internal/metrics/core/domain"
)

// Fake ports shared by the use case tests.
type fakeAccounts struct {
	FindFn func(ctx context.Context, id string) (*domain.Account, error)
}

func (f *fakeAccounts) FindAccount(ctx context.Context, id string) (*domain.Account, error) {
	if f.FindFn != nil {
		return f.FindFn(ctx, id)
	}
	return nil, domain.ErrAccountNotFound
}

func accountIn(tz string) *fakeAccounts {
	return &fakeAccounts{
		FindFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return &domain.Account{ID: id, Timezone: tz}, nil
		},
	}
}

type fakeBuckets struct {
	LatestFn func(ctx context.Context, accountID string, metric counter.Metric, instant time.Time) (int64, bool, error)
	RangeFn  func(ctx context.Context, accountID string, metric counter.Metric, from, to time.Time) ([]domain.BucketValue, error)

	mu       sync.Mutex
	latestAt []time.Time
}

func (f *fakeBuckets) FindLatestAtOrBefore(ctx context.Context, accountID string, metric counter.Metric, instant time.Time) (int64, bool, error) {
	f.mu.Lock()
	f.latestAt = append(f.latestAt, instant)
	f.mu.Unlock()
	if f.LatestFn != nil {
		return f.LatestFn(ctx, accountID, metric, instant)
	}
	return 0, false, nil
}

func (f *fakeBuckets) FindRange(ctx context.Context, accountID string, metric counter.Metric, from, to time.Time) ([]domain.BucketValue, error) {
	if f.RangeFn != nil {
		return f.RangeFn(ctx, accountID, metric, from, to)
	}
	return nil, nil
}

type fakeContent struct {
	FindFn func(ctx context.Context, accountID string, from, to *time.Time) ([]domain.ContentItem, error)
}

func (f *fakeContent) FindContentItems(ctx context.Context, accountID string, from, to *time.Time) ([]domain.ContentItem, error) {
	if f.FindFn != nil {
		return f.FindFn(ctx, accountID, from, to)
	}
	return nil, nil
}

// bucketHistory answers "latest at or before" from a day -> value table.
func bucketHistory(loc *time.Location, days map[string]int64) func(ctx context.Context, accountID string, metric counter.Metric, instant time.Time) (int64, bool, error) {
	return func(ctx context.Context, accountID string, metric counter.Metric, instant time.Time) (int64, bool, error) {
		var (
			best  time.Time
			value int64
			found bool
		)
		for d, v := range days {
			day, err := time.ParseInLocation(time.DateOnly, d, loc)
			if err != nil {
				return 0, false, err
			}
			if day.After(instant) {
				continue
			}
			if !found || day.After(best) {
				best, value, found = day, v, true
			}
		}
		return value, found, nil
	}
}

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

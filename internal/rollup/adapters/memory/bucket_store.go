package memory

import (
	"context"
	"sort"
	"sync"

	"mastodon-analytics-service/internal/counter"
	"mastodon-analytics-service/internal/rollup/core/domain"
)

// BucketStore keeps written buckets in memory. It backs dry runs and tests.
type BucketStore struct {
	mu   sync.Mutex
	rows []domain.DailyBucket
}

func NewBucketStore() *BucketStore {
	return &BucketStore{}
}

func (s *BucketStore) WriteBucket(ctx context.Context, b *domain.DailyBucket, mode domain.WriteMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch mode {
	case domain.Insert:
		row := domain.DailyBucket{AccountID: b.AccountID, Day: b.Day, Values: make(map[counter.Metric]int64, len(b.Values))}
		for k, v := range b.Values {
			row.Values[k] = v
		}
		s.rows = append(s.rows, row)
	case domain.Upsert:
		var stored []map[counter.Metric]int64
		kept := s.rows[:0]
		for _, r := range s.rows {
			if r.AccountID == b.AccountID && r.Day.Equal(b.Day) {
				stored = append(stored, r.Values)
				continue
			}
			kept = append(kept, r)
		}
		row := domain.DailyBucket{AccountID: b.AccountID, Day: b.Day, Values: domain.MergeValues(stored, b.Values)}
		s.rows = append(kept, row)
	default:
		return domain.ErrInvalidWriteMode
	}
	return nil
}

// Rows returns a copy of the stored buckets of one account ordered by day.
func (s *BucketStore) Rows(accountID string) []domain.DailyBucket {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.DailyBucket
	for _, r := range s.rows {
		if r.AccountID == accountID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out
}

func (s *BucketStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

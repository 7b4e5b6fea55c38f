package postgres

import (
	"context"
	"time"

	"github.com/lib/pq"

	"mastodon-analytics-service/internal/counter"
	"mastodon-analytics-service/internal/rollup/core/domain"
	"mastodon-analytics-service/internal/rollup/core/ports"
)

type SampleRepository struct {
	db DB
}

func NewSampleRepository(db DB) *SampleRepository {
	return &SampleRepository{db: db}
}

var _ ports.SampleReader = (*SampleRepository)(nil)

const findSamplesSQL = `
SELECT
    metric,
    COALESCE(item_id, ''),
    fetched_at,
    value
FROM counter_samples
WHERE account_id = $1
  AND metric = ANY($2)
  AND fetched_at >= $3
  AND fetched_at < $4
ORDER BY fetched_at;
`

func (r *SampleRepository) FindSamples(ctx context.Context, accountID string, metrics []counter.Metric, from, to time.Time) ([]domain.CounterSample, error) {
	names := make([]string, len(metrics))
	for i, m := range metrics {
		names[i] = string(m)
	}

	// zero from: open lower bound
	if from.IsZero() {
		from = time.Unix(0, 0).UTC()
	}

	rows, err := r.db.QueryContext(ctx, findSamplesSQL, accountID, pq.Array(names), from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CounterSample
	for rows.Next() {
		var (
			s      domain.CounterSample
			metric string
		)
		if err := rows.Scan(&metric, &s.ItemID, &s.FetchedAt, &s.Value); err != nil {
			return nil, err
		}
		s.AccountID = accountID
		s.Metric = counter.Metric(metric)
		out = append(out, s)
	}
	return out, rows.Err()
}

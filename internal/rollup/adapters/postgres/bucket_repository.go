package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"mastodon-analytics-service/internal/counter"
	"mastodon-analytics-service/internal/rollup/core/domain"
	"mastodon-analytics-service/internal/rollup/core/ports"
)

type BucketRepository struct {
	db DB
}

func NewBucketRepository(db DB) *BucketRepository {
	return &BucketRepository{db: db}
}

var _ ports.BucketWriter = (*BucketRepository)(nil)

// daily_buckets has no unique key on (account_id, day): insert mode is allowed
// to duplicate rows.
const insertBucketSQL = `
INSERT INTO daily_buckets (
    account_id,
    day,
    metrics
) VALUES (
    $1, $2, $3
);
`

const lockBucketSQL = `SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2));`

const deleteBucketSQL = `DELETE FROM daily_buckets WHERE account_id = $1 AND day = $2 RETURNING metrics;`

func (r *BucketRepository) WriteBucket(ctx context.Context, b *domain.DailyBucket, mode domain.WriteMode) error {
	day := b.Day.Format(time.DateOnly)

	switch mode {
	case domain.Insert:
		metricsJSON, err := json.Marshal(b.Values)
		if err != nil {
			return err
		}
		_, err = r.db.ExecContext(ctx, insertBucketSQL, b.AccountID, day, metricsJSON)
		return err
	case domain.Upsert:
		return r.merge(ctx, b.AccountID, day, b.Values)
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidWriteMode, mode)
	}
}

// merge serializes concurrent upserts of the same (account, day) with a
// transaction scoped advisory lock, then swaps every existing row for one that
// carries the stored metrics overlaid with values.
func (r *BucketRepository) merge(ctx context.Context, accountID, day string, values map[counter.Metric]int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, lockBucketSQL, accountID, day); err != nil {
		return fmt.Errorf("lock bucket: %w", err)
	}

	stored, err := deleteReturning(ctx, tx, accountID, day)
	if err != nil {
		return fmt.Errorf("delete bucket: %w", err)
	}

	metricsJSON, err := json.Marshal(domain.MergeValues(stored, values))
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, insertBucketSQL, accountID, day, metricsJSON); err != nil {
		return fmt.Errorf("insert bucket: %w", err)
	}

	return tx.Commit()
}

func deleteReturning(ctx context.Context, tx *sql.Tx, accountID, day string) ([]map[counter.Metric]int64, error) {
	rows, err := tx.QueryContext(ctx, deleteBucketSQL, accountID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stored []map[counter.Metric]int64
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		values := make(map[counter.Metric]int64)
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("decode stored metrics: %w", err)
		}
		stored = append(stored, values)
	}
	return stored, rows.Err()
}

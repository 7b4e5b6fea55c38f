package postgres

import (
	"context"
	"fmt"
	"time"

	"mastodon-analytics-service/internal/metrics/core/domain"
	"mastodon-analytics-service/internal/metrics/core/ports"
)

type ContentReader struct {
	db DB
}

func NewContentReader(db DB) *ContentReader {
	return &ContentReader{db: db}
}

var _ ports.ContentReader = (*ContentReader)(nil)

func (r *ContentReader) FindContentItems(ctx context.Context, accountID string, from, to *time.Time) ([]domain.ContentItem, error) {
	where := "account_id = $1"
	args := []any{accountID}
	argIndex := 2

	if from != nil {
		where += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, from.UTC())
		argIndex++
	}
	if to != nil {
		where += fmt.Sprintf(" AND created_at < $%d", argIndex)
		args = append(args, to.UTC())
	}

	query := `
SELECT
    id,
    account_id,
    created_at,
    replies_count,
    reblogs_count,
    favourites_count,
    COALESCE(content, ''),
    COALESCE(url, '')
FROM statuses
WHERE ` + where + `
ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ContentItem
	for rows.Next() {
		var it domain.ContentItem
		if err := rows.Scan(
			&it.ID,
			&it.AccountID,
			&it.CreatedAt,
			&it.Replies,
			&it.Boosts,
			&it.Favourites,
			&it.Content,
			&it.URL,
		); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

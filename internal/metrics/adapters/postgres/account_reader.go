package postgres

import (
	"context"
	"fmt"

	"mastodon-analytics-service/internal/metrics/core/domain"
	"mastodon-analytics-service/internal/metrics/core/ports"
)

type AccountReader struct {
	db DB
}

func NewAccountReader(db DB) *AccountReader {
	return &AccountReader{db: db}
}

var _ ports.AccountReader = (*AccountReader)(nil)

const findAccountSQL = `SELECT id, timezone FROM accounts WHERE id = $1`

func (r *AccountReader) FindAccount(ctx context.Context, id string) (*domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, findAccountSQL, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}

	var acc domain.Account
	if err := rows.Scan(&acc.ID, &acc.Timezone); err != nil {
		return nil, err
	}
	return &acc, nil
}

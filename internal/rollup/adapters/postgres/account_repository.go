package postgres

import (
	"context"

	"mastodon-analytics-service/internal/rollup/core/domain"
	"mastodon-analytics-service/internal/rollup/core/ports"
)

type AccountRepository struct {
	db DB
}

func NewAccountRepository(db DB) *AccountRepository {
	return &AccountRepository{db: db}
}

var _ ports.AccountLister = (*AccountRepository)(nil)

const listActiveAccountsSQL = `SELECT id, timezone FROM accounts WHERE active ORDER BY id;`

func (r *AccountRepository) ListActiveAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.QueryContext(ctx, listActiveAccountsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		var a domain.Account
		if err := rows.Scan(&a.ID, &a.Timezone); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

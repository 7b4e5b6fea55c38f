package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mastodon-analytics-service/internal/counter"
	"mastodon-analytics-service/internal/metrics/core/domain"
	"mastodon-analytics-service/internal/metrics/core/ports"
	"mastodon-analytics-service/internal/timeframe"
)

var (
	ErrInvalidQuery  = errors.New("invalid analytics query")
	ErrInvalidMetric = errors.New("invalid metric")
)

func parseMetric(s string) (counter.Metric, error) {
	m, err := counter.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMetric, s)
	}
	return m, nil
}

// loadAccount fetches the account and its location. A stored timezone that does
// not resolve is reported as timeframe.ErrInvalidTimezone, never defaulted.
func loadAccount(ctx context.Context, accounts ports.AccountReader, id string) (*domain.Account, *time.Location, error) {
	if id == "" {
		return nil, nil, fmt.Errorf("%w: account id is required", ErrInvalidQuery)
	}

	acc, err := accounts.FindAccount(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	loc, err := timeframe.LoadLocation(acc.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("account %s: %w", acc.ID, err)
	}
	return acc, loc, nil
}

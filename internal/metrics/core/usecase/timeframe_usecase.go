package usecase

import (
	"context"

	"mastodon-analytics-service/internal/metrics/core/ports"
	"mastodon-analytics-service/internal/timeframe"
)

// TimeframeUseCase resolves a timeframe token in an account's own timezone.
type TimeframeUseCase struct {
	accounts ports.AccountReader
	resolver *timeframe.Resolver
}

func NewTimeframeUseCase(accounts ports.AccountReader, resolver *timeframe.Resolver) *TimeframeUseCase {
	return &TimeframeUseCase{accounts: accounts, resolver: resolver}
}

func (uc *TimeframeUseCase) Execute(ctx context.Context, accountID, token string) (timeframe.Range, error) {
	acc, _, err := loadAccount(ctx, uc.accounts, accountID)
	if err != nil {
		return timeframe.Range{}, err
	}
	return uc.resolver.Resolve(acc.Timezone, token)
}

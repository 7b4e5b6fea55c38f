package usecase

import (
	"context"
	"fmt"

	"mastodon-analytics-service/internal/metrics/core/domain"
	"mastodon-analytics-service/internal/metrics/core/ports"
	"mastodon-analytics-service/internal/timeframe"
)

const maxTopLimit = 100

type TopContentInput struct {
	AccountID string
	Mode      string
	// Timeframe is optional; empty ranks over the whole history.
	Timeframe string
	Limit     int
}

type TopContentResult struct {
	Mode  domain.RankMode
	Range *timeframe.Range
	Items []domain.RankedItem
}

type TopContentUseCase struct {
	accounts ports.AccountReader
	content  ports.ContentReader
	resolver *timeframe.Resolver
}

func NewTopContentUseCase(accounts ports.AccountReader, content ports.ContentReader, resolver *timeframe.Resolver) *TopContentUseCase {
	return &TopContentUseCase{accounts: accounts, content: content, resolver: resolver}
}

func (uc *TopContentUseCase) Execute(ctx context.Context, in TopContentInput) (*TopContentResult, error) {
	mode, err := domain.ParseRankMode(in.Mode)
	if err != nil {
		return nil, err
	}
	if in.Limit < 0 || in.Limit > maxTopLimit {
		return nil, fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidQuery, maxTopLimit)
	}

	acc, loc, err := loadAccount(ctx, uc.accounts, in.AccountID)
	if err != nil {
		return nil, err
	}

	res := &TopContentResult{Mode: mode}

	var filter domain.RankFilter
	if in.Timeframe != "" {
		rng := timeframe.ResolveAt(loc, uc.resolver.Now(), in.Timeframe)
		res.Range = &rng
		filter = domain.RankFilter{From: &rng.DateFrom, To: &rng.DateTo}
	}

	items, err := uc.content.FindContentItems(ctx, acc.ID, filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	res.Items, err = domain.RankTopContent(items, mode, filter, in.Limit)
	if err != nil {
		return nil, err
	}
	return res, nil
}

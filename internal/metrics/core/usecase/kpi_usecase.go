package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"mastodon-analytics-service/internal/metrics/core/domain"
	"mastodon-analytics-service/internal/metrics/core/ports"
	"mastodon-analytics-service/internal/timeframe"
)

type KPIInput struct {
	AccountID string
	Metric    string
	Period    string // week, month, year
}

type KPIUseCase struct {
	accounts ports.AccountReader
	buckets  ports.BucketReader
	now      func() time.Time
}

func NewKPIUseCase(accounts ports.AccountReader, buckets ports.BucketReader, now func() time.Time) *KPIUseCase {
	if now == nil {
		now = time.Now
	}
	return &KPIUseCase{accounts: accounts, buckets: buckets, now: now}
}

// Execute compares the running period of a metric with the one before it.
//
// On the first day of a period there is nothing to show for the running one
// yet, so the just-completed period is reported instead with IsLastPeriod set.
func (uc *KPIUseCase) Execute(ctx context.Context, in KPIInput) (*domain.KPIResult, error) {
	metric, err := parseMetric(in.Metric)
	if err != nil {
		return nil, err
	}
	period, err := timeframe.ParsePeriod(in.Period)
	if err != nil {
		return nil, err
	}
	acc, loc, err := loadAccount(ctx, uc.accounts, in.AccountID)
	if err != nil {
		return nil, err
	}

	now := uc.now()

	modifier := 0
	if timeframe.DaysToPeriodBeginning(period, loc, now, 0) == 0 {
		modifier = 1
	}

	daysElapsed := timeframe.DaysToPeriodBeginning(period, loc, now, modifier)
	ki := domain.KPIInputs{
		DaysElapsed:       daysElapsed,
		IdealPeriodLength: timeframe.DaysToPeriodBeginning(period, loc, now, modifier+1) - daysElapsed,
		IsLastPeriod:      modifier == 1,
	}

	lookups := []struct {
		at  time.Time
		dst **int64
	}{
		{timeframe.PeriodStart(period, loc, now, modifier+1), &ki.AtLastPeriodStart},
		{timeframe.PeriodStart(period, loc, now, modifier), &ki.AtThisPeriodStart},
		{timeframe.Today(loc, now), &ki.AtToday},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range lookups {
		l := l
		g.Go(func() error {
			v, ok, err := uc.buckets.FindLatestAtOrBefore(gctx, acc.ID, metric, l.at)
			if err != nil {
				return err
			}
			if ok {
				*l.dst = &v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := domain.ComputeKPI(ki)
	return &res, nil
}

package usecase

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"mastodon-analytics-service/internal/counter"
	"mastodon-analytics-service/internal/metrics/core/domain"
	"mastodon-analytics-service/internal/metrics/core/ports"
	"mastodon-analytics-service/internal/timeframe"
)

type ChartInput struct {
	AccountID string
	Metric    string
	Timeframe string
}

type ChartSeries struct {
	AccountID string
	Metric    counter.Metric
	Range     timeframe.Range
	Points    []domain.ChartPoint
}

type ChartUseCase struct {
	accounts ports.AccountReader
	buckets  ports.BucketReader
	resolver *timeframe.Resolver
}

func NewChartUseCase(accounts ports.AccountReader, buckets ports.BucketReader, resolver *timeframe.Resolver) *ChartUseCase {
	return &ChartUseCase{accounts: accounts, buckets: buckets, resolver: resolver}
}

// Execute builds the per-day delta series of a metric over a timeframe. The
// bucket of the day before the range is read only to seed the first delta, and
// the bucket on DateTo closes the series.
func (uc *ChartUseCase) Execute(ctx context.Context, in ChartInput) (*ChartSeries, error) {
	metric, err := parseMetric(in.Metric)
	if err != nil {
		return nil, err
	}
	acc, loc, err := loadAccount(ctx, uc.accounts, in.AccountID)
	if err != nil {
		return nil, err
	}

	rng := timeframe.ResolveAt(loc, uc.resolver.Now(), in.Timeframe)

	rows, err := uc.buckets.FindRange(ctx, acc.ID, metric, timeframe.AddDays(rng.DateFrom, -1), rng.DateTo)
	if err != nil {
		return nil, err
	}

	return &ChartSeries{
		AccountID: acc.ID,
		Metric:    metric,
		Range:     rng,
		Points:    domain.BuildChartSeries(rows, func(b domain.BucketValue) int64 { return b.Value }),
	}, nil
}

// ExportCSV writes the chart series as "Date;<Label>" rows, dates in the
// account's calendar.
func (uc *ChartUseCase) ExportCSV(ctx context.Context, in ChartInput, w io.Writer) (*ChartSeries, error) {
	series, err := uc.Execute(ctx, in)
	if err != nil {
		return nil, err
	}

	loc := series.Range.DateFrom.Location()

	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write([]string{"Date", series.Metric.Label()}); err != nil {
		return nil, err
	}
	for _, p := range series.Points {
		row := []string{p.Date.In(loc).Format(time.DateOnly), strconv.FormatInt(p.Value, 10)}
		if err := cw.Write(row); err != nil {
			return nil, err
		}
	}
	cw.Flush()

	return series, cw.Error()
}

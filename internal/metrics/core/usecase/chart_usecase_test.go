package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"mastodon-analytics-service/internal/counter"
	"mastodon-analytics-service/internal/metrics/core/domain"
	"mastodon-analytics-service/internal/metrics/core/usecase"
	"mastodon-analytics-service/internal/timeframe"
)

func boostHistory(t *testing.T, loc *time.Location) *fakeBuckets {
	day := func(d int) time.Time { return time.Date(2023, 5, d, 0, 0, 0, 0, loc) }

	return &fakeBuckets{
		RangeFn: func(ctx context.Context, accountID string, metric counter.Metric, from, to time.Time) ([]domain.BucketValue, error) {
			if metric != counter.Boosts {
				t.Fatalf("expected boosts, got %s", metric)
			}
			if !from.Equal(day(14)) {
				t.Fatalf("expected seed day 2023-05-14, got %v", from)
			}
			if !to.Equal(day(18)) {
				t.Fatalf("expected range end 2023-05-18, got %v", to)
			}
			return []domain.BucketValue{
				{Day: day(14), Value: 5},
				{Day: day(15), Value: 15},
				{Day: day(16), Value: 20},
				{Day: day(17), Value: 20},
			}, nil
		},
	}
}

// Wednesday afternoon in Berlin
func wednesday() time.Time {
	return time.Date(2023, 5, 17, 15, 0, 0, 0, mustLoad("Europe/Berlin"))
}

// ------------------------------------------------------------
// CHART SERIES
// ------------------------------------------------------------
func TestChart_ThisWeek(t *testing.T) {
	berlin := mustLoad("Europe/Berlin")
	resolver := timeframe.NewResolver(timeframe.WithClock(wednesday))

	uc := usecase.NewChartUseCase(accountIn("Europe/Berlin"), boostHistory(t, berlin), resolver)

	series, err := uc.Execute(context.Background(), usecase.ChartInput{AccountID: "acc-1", Metric: "boosts", Timeframe: "thisweek"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if series.Range.Timeframe != timeframe.ThisWeek {
		t.Fatalf("expected thisweek, got %s", series.Range.Timeframe)
	}

	want := []int64{10, 5, 0}
	if len(series.Points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(series.Points))
	}
	for i, p := range series.Points {
		if p.Value != want[i] {
			t.Fatalf("point %d: expected %d, got %d", i, want[i], p.Value)
		}
	}
	if series.Points[0].Date.Day() != 15 {
		t.Fatalf("expected first point on the 15th, got %v", series.Points[0].Date)
	}
}

func TestChart_ExportCSV(t *testing.T) {
	berlin := mustLoad("Europe/Berlin")
	resolver := timeframe.NewResolver(timeframe.WithClock(wednesday))

	uc := usecase.NewChartUseCase(accountIn("Europe/Berlin"), boostHistory(t, berlin), resolver)

	var buf bytes.Buffer
	if _, err := uc.ExportCSV(context.Background(), usecase.ChartInput{AccountID: "acc-1", Metric: "boosts", Timeframe: "thisweek"}, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Date;Boosts\n2023-05-15;10\n2023-05-16;5\n2023-05-17;0\n"
	if buf.String() != want {
		t.Fatalf("unexpected csv:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestChart_LastMonthIncludesEndDay(t *testing.T) {
	berlin := mustLoad("Europe/Berlin")
	resolver := timeframe.NewResolver(timeframe.WithClock(wednesday))
	day := func(m time.Month, d int) time.Time { return time.Date(2023, m, d, 0, 0, 0, 0, berlin) }

	buckets := &fakeBuckets{
		RangeFn: func(ctx context.Context, accountID string, metric counter.Metric, from, to time.Time) ([]domain.BucketValue, error) {
			if !from.Equal(day(time.March, 31)) {
				t.Fatalf("expected seed day 2023-03-31, got %v", from)
			}
			if !to.Equal(timeframe.PeriodStart(timeframe.Month, berlin, wednesday(), 0)) {
				t.Fatalf("expected range end 2023-05-01, got %v", to)
			}
			return []domain.BucketValue{
				{Day: day(time.March, 31), Value: 100},
				{Day: day(time.April, 1), Value: 103},
				{Day: day(time.April, 30), Value: 120},
				{Day: day(time.May, 1), Value: 126},
			}, nil
		},
	}

	uc := usecase.NewChartUseCase(accountIn("Europe/Berlin"), buckets, resolver)

	series, err := uc.Execute(context.Background(), usecase.ChartInput{AccountID: "acc-1", Metric: "followers", Timeframe: "lastmonth"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series.Points))
	}
	last := series.Points[2]
	if !last.Date.Equal(day(time.May, 1)) || last.Value != 6 {
		t.Fatalf("expected closing point 2023-05-01 = 6, got %v = %d", last.Date, last.Value)
	}
}

func TestChart_NotEnoughHistory(t *testing.T) {
	uc := usecase.NewChartUseCase(accountIn("UTC"), &fakeBuckets{}, timeframe.NewResolver())

	series, err := uc.Execute(context.Background(), usecase.ChartInput{AccountID: "acc-1", Metric: "followers", Timeframe: "last7days"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Points == nil || len(series.Points) != 0 {
		t.Fatalf("expected empty non-nil series, got %v", series.Points)
	}
}

func TestChart_UnknownTimeframeFallsBack(t *testing.T) {
	uc := usecase.NewChartUseCase(accountIn("UTC"), &fakeBuckets{}, timeframe.NewResolver())

	series, err := uc.Execute(context.Background(), usecase.ChartInput{AccountID: "acc-1", Metric: "followers", Timeframe: "fortnight"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if series.Range.Timeframe != timeframe.Last30Days {
		t.Fatalf("expected last30days fallback, got %s", series.Range.Timeframe)
	}
}

func TestChart_Errors(t *testing.T) {
	uc := usecase.NewChartUseCase(accountIn("UTC"), &fakeBuckets{}, timeframe.NewResolver())
	if _, err := uc.Execute(context.Background(), usecase.ChartInput{AccountID: "acc-1", Metric: "likes"}); !errors.Is(err, usecase.ErrInvalidMetric) {
		t.Fatalf("expected ErrInvalidMetric, got %v", err)
	}

	failing := &fakeBuckets{
		RangeFn: func(ctx context.Context, accountID string, metric counter.Metric, from, to time.Time) ([]domain.BucketValue, error) {
			return nil, errors.New("db error")
		},
	}
	uc = usecase.NewChartUseCase(accountIn("UTC"), failing, timeframe.NewResolver())

	var buf bytes.Buffer
	if _, err := uc.ExportCSV(context.Background(), usecase.ChartInput{AccountID: "acc-1", Metric: "followers"}, &buf); err == nil {
		t.Fatalf("expected error, got nil")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written on error, got %q", buf.String())
	}
}

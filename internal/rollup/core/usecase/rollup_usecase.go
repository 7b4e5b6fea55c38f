package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"mastodon-analytics-service/internal/counter"
	"mastodon-analytics-service/internal/rollup/core/domain"
	"mastodon-analytics-service/internal/rollup/core/ports"
	"mastodon-analytics-service/internal/timeframe"
)

var (
	ErrInvalidRollup = errors.New("invalid rollup request")
	ErrFutureStart   = errors.New("rollup start cannot be in the future")
)

type RollupUseCase struct {
	accounts ports.AccountLister
	samples  ports.SampleReader
	buckets  ports.BucketWriter
	recorder ports.RunRecorder
	log      zerolog.Logger
	now      func() time.Time
}

type Option func(*RollupUseCase)

func WithLogger(l zerolog.Logger) Option {
	return func(uc *RollupUseCase) { uc.log = l }
}

func WithRecorder(r ports.RunRecorder) Option {
	return func(uc *RollupUseCase) { uc.recorder = r }
}

func WithClock(now func() time.Time) Option {
	return func(uc *RollupUseCase) { uc.now = now }
}

func NewRollupUseCase(accounts ports.AccountLister, samples ports.SampleReader, buckets ports.BucketWriter, opts ...Option) *RollupUseCase {
	uc := &RollupUseCase{
		accounts: accounts,
		samples:  samples,
		buckets:  buckets,
		recorder: nopRecorder{},
		log:      zerolog.Nop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type RunInput struct {
	Mode domain.WriteMode

	// From is a calendar date, read in each account's own timezone. The zero
	// value means "yesterday" unless AllHistory is set.
	From       time.Time
	AllHistory bool

	// Metrics restricts the run; empty means every known metric.
	Metrics []counter.Metric
}

type AccountFailure struct {
	AccountID string
	Err       error
}

type RunReport struct {
	RunID             string
	Mode              domain.WriteMode
	AccountsProcessed int
	AccountsFailed    int
	BucketsWritten    int
	Failures          []AccountFailure
}

// Execute rolls up every active account, one after the other. A failing account
// is logged, recorded in the report and skipped; only input validation and the
// account listing itself abort the run.
func (uc *RollupUseCase) Execute(ctx context.Context, in RunInput) (RunReport, error) {
	res := RunReport{RunID: uuid.NewString(), Mode: in.Mode}

	if err := uc.validateInput(in); err != nil {
		return res, err
	}
	if len(in.Metrics) == 0 {
		in.Metrics = counter.All()
	}

	accounts, err := uc.accounts.ListActiveAccounts(ctx)
	if err != nil {
		return res, fmt.Errorf("list accounts: %w", err)
	}

	log := uc.log.With().Str("run_id", res.RunID).Str("mode", string(in.Mode)).Logger()
	log.Info().Int("accounts", len(accounts)).Msg("rollup started")

	for _, acc := range accounts {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		n, err := uc.RollupAccount(ctx, acc, in)
		res.BucketsWritten += n
		if n > 0 {
			uc.recorder.BucketsWritten(in.Mode, n)
		}
		if err != nil {
			res.AccountsFailed++
			res.Failures = append(res.Failures, AccountFailure{AccountID: acc.ID, Err: err})
			uc.recorder.AccountFailed()
			log.Error().Err(err).Str("account_id", acc.ID).Int("buckets_written", n).Msg("account rollup failed")
			continue
		}

		res.AccountsProcessed++
		uc.recorder.AccountProcessed()
	}

	log.Info().
		Int("processed", res.AccountsProcessed).
		Int("failed", res.AccountsFailed).
		Int("buckets", res.BucketsWritten).
		Msg("rollup finished")

	return res, nil
}

// RollupAccount builds and writes the finalized buckets of one account. It
// returns how many buckets were written before an error, if any.
func (uc *RollupUseCase) RollupAccount(ctx context.Context, acc domain.Account, in RunInput) (int, error) {
	loc, err := timeframe.LoadLocation(acc.Timezone)
	if err != nil {
		return 0, err
	}

	today := timeframe.Today(loc, uc.now())

	var from time.Time
	switch {
	case in.AllHistory:
		// no lower bound
	case in.From.IsZero():
		from = timeframe.AddDays(today, -1)
	default:
		from = time.Date(in.From.Year(), in.From.Month(), in.From.Day(), 0, 0, 0, 0, loc)
	}

	metrics := in.Metrics
	if len(metrics) == 0 {
		metrics = counter.All()
	}

	samples, err := uc.samples.FindSamples(ctx, acc.ID, metrics, from, today)
	if err != nil {
		return 0, fmt.Errorf("read samples: %w", err)
	}

	written := 0
	for _, b := range domain.BuildBuckets(acc.ID, loc, today, samples) {
		if err := uc.buckets.WriteBucket(ctx, &b, in.Mode); err != nil {
			return written, fmt.Errorf("write bucket %s: %w", b.Day.Format(time.DateOnly), err)
		}
		written++
	}
	return written, nil
}

func (uc *RollupUseCase) validateInput(in RunInput) error {
	if _, err := domain.ParseWriteMode(string(in.Mode)); err != nil {
		return err
	}

	if in.AllHistory && !in.From.IsZero() {
		return fmt.Errorf("%w: from and all history are exclusive", ErrInvalidRollup)
	}

	// Compared in UTC; the widest timezone offset is a day at most.
	if !in.From.IsZero() && in.From.After(uc.now().AddDate(0, 0, 1)) {
		return ErrFutureStart
	}

	for _, m := range in.Metrics {
		if _, err := counter.Parse(string(m)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRollup, err)
		}
	}

	return nil
}

type nopRecorder struct{}

func (nopRecorder) AccountProcessed()                    {}
func (nopRecorder) AccountFailed()                       {}
func (nopRecorder) BucketsWritten(domain.WriteMode, int) {}

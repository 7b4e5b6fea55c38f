package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mastodon-analytics-service/internal/counter"
	"mastodon-analytics-service/internal/rollup/adapters/memory"
	"mastodon-analytics-service/internal/rollup/adapters/prom"
	"mastodon-analytics-service/internal/rollup/core/domain"
	"mastodon-analytics-service/internal/rollup/core/ports"
	"mastodon-analytics-service/internal/rollup/core/usecase"
)

// newRunCmd rolls up yesterday for every account.
func newRunCmd(factory runtimeFactory) *cobra.Command {
	var (
		mode    string
		metrics []string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Roll up yesterday for every active account",
		Long:  "Builds the buckets of each account's previous local day. Defaults to the configured write mode.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.RunInput{}
			if mode != "" {
				m, err := domain.ParseWriteMode(mode)
				if err != nil {
					return err
				}
				in.Mode = m
			}
			ms, err := parseMetrics(metrics)
			if err != nil {
				return err
			}
			in.Metrics = ms

			return execute(cmd, factory, in, dryRun)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "write mode: insert or upsert (default from config)")
	cmd.Flags().StringSliceVar(&metrics, "metrics", nil, "restrict the run to these metrics")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "build buckets without writing them")

	return cmd
}

// newRebuildCmd re-derives historical buckets with upserts.
func newRebuildCmd(factory runtimeFactory) *cobra.Command {
	var (
		from    string
		all     bool
		metrics []string
		dryRun  bool
	)

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild historical buckets",
		Long:  "Rebuilds every bucket from --from (a local calendar date) or from the first sample with --all. Existing rows are replaced.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (from == "") == !all {
				return errors.New("exactly one of --from or --all is required")
			}

			in := usecase.RunInput{Mode: domain.Upsert, AllHistory: all}
			if from != "" {
				d, err := parseDate(from)
				if err != nil {
					return err
				}
				in.From = d
			}
			ms, err := parseMetrics(metrics)
			if err != nil {
				return err
			}
			in.Metrics = ms

			return execute(cmd, factory, in, dryRun)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first local date to rebuild (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&all, "all", false, "rebuild the whole history")
	cmd.Flags().StringSliceVar(&metrics, "metrics", nil, "restrict the rebuild to these metrics")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "build buckets without writing them")

	return cmd
}

// newScheduleCmd runs the rollup on the configured cron schedule until
// interrupted.
func newScheduleCmd(factory runtimeFactory) *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the rollup on the configured cron schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := factory(ctx)
			if err != nil {
				return err
			}
			defer rt.close()

			mode, err := domain.ParseWriteMode(rt.cfg.Rollup.Mode)
			if err != nil {
				return err
			}
			uc := newUseCase(rt, rt.buckets)

			c := cron.New(
				cron.WithLocation(time.UTC),
				cron.WithLogger(cronLogger{log: rt.log}),
				cron.WithChain(cron.SkipIfStillRunning(cronLogger{log: rt.log})),
			)
			_, err = c.AddFunc(rt.cfg.Rollup.Schedule, func() {
				if _, err := uc.Execute(ctx, usecase.RunInput{Mode: mode}); err != nil {
					rt.log.Error().Err(err).Msg("scheduled rollup failed")
				}
			})
			if err != nil {
				return fmt.Errorf("invalid schedule %q: %w", rt.cfg.Rollup.Schedule, err)
			}

			var srv *http.Server
			if rt.cfg.Metrics.Enabled && metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle(rt.cfg.Metrics.Path, promhttp.HandlerFor(rt.reg, promhttp.HandlerOpts{Registry: rt.reg}))
				srv = &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						rt.log.Error().Err(err).Msg("metrics server stopped")
					}
				}()
			}

			c.Start()
			rt.log.Info().Str("schedule", rt.cfg.Rollup.Schedule).Str("mode", string(mode)).Msg("scheduler started")

			<-ctx.Done()
			rt.log.Info().Msg("stopping scheduler...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.cfg.Server.ShutdownTimeout)
			defer cancel()

			if srv != nil {
				_ = srv.Shutdown(shutdownCtx)
			}

			select {
			case <-c.Stop().Done():
			case <-shutdownCtx.Done():
				rt.log.Warn().Msg("rollup still running at shutdown")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9102", "listen address for the metrics endpoint, empty to disable")

	return cmd
}

// execute runs a single rollup and prints its report.
func execute(cmd *cobra.Command, factory runtimeFactory, in usecase.RunInput, dryRun bool) error {
	rt, err := factory(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.close()

	if in.Mode == "" {
		m, err := domain.ParseWriteMode(rt.cfg.Rollup.Mode)
		if err != nil {
			return err
		}
		in.Mode = m
	}

	buckets := rt.buckets
	var store *memory.BucketStore
	if dryRun {
		store = memory.NewBucketStore()
		buckets = store
	}

	report, err := newUseCase(rt, buckets).Execute(cmd.Context(), in)
	if err != nil {
		return err
	}

	printReport(cmd.OutOrStdout(), report)
	if store != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "dry run: %d buckets built, nothing written\n", store.Len())
	}
	if report.AccountsFailed > 0 {
		return fmt.Errorf("%d accounts failed", report.AccountsFailed)
	}
	return nil
}

func newUseCase(rt *runtime, buckets ports.BucketWriter) *usecase.RollupUseCase {
	now := rt.now
	if now == nil {
		now = time.Now
	}
	return usecase.NewRollupUseCase(rt.accounts, rt.samples, buckets,
		usecase.WithLogger(rt.log),
		usecase.WithRecorder(prom.NewRecorder(rt.reg)),
		usecase.WithClock(now),
	)
}

func parseMetrics(names []string) ([]counter.Metric, error) {
	var out []counter.Metric
	for _, n := range names {
		m, err := counter.Parse(n)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func printReport(w io.Writer, r usecase.RunReport) {
	fmt.Fprintf(w, "run %s mode=%s processed=%d failed=%d buckets=%d\n",
		r.RunID, r.Mode, r.AccountsProcessed, r.AccountsFailed, r.BucketsWritten)
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  %s: %v\n", f.AccountID, f.Err)
	}
}

// cronLogger adapts zerolog to cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

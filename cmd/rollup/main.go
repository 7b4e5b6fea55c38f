// Package main provides the rollup job: one-off runs, historical rebuilds and
// the long-running nightly scheduler.
package main

import (
	"context"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"mastodon-analytics-service/internal/config"
	"mastodon-analytics-service/internal/database"
	"mastodon-analytics-service/internal/logging"
	"mastodon-analytics-service/internal/rollup/adapters/postgres"
	"mastodon-analytics-service/internal/rollup/core/ports"
)

var version = "0.1.0"

func main() {
	if err := newRootCmd(connect).Execute(); err != nil {
		os.Exit(1)
	}
}

// runtime holds everything a command needs to build a rollup.
type runtime struct {
	cfg      *config.Config
	log      zerolog.Logger
	reg      *prometheus.Registry
	accounts ports.AccountLister
	samples  ports.SampleReader
	buckets  ports.BucketWriter
	now      func() time.Time
	close    func() error
}

type runtimeFactory func(ctx context.Context) (*runtime, error)

// connect loads configuration and opens the database.
func connect(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewDBStatsCollector(db, "analytics"),
	)

	return &runtime{
		cfg:      cfg,
		log:      log.With().Str("component", "rollup").Logger(),
		reg:      reg,
		accounts: postgres.NewAccountRepository(db),
		samples:  postgres.NewSampleRepository(db),
		buckets:  postgres.NewBucketRepository(db),
		now:      time.Now,
		close:    db.Close,
	}, nil
}

func newRootCmd(factory runtimeFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "rollup",
		Short:        "Roll raw counter samples up into daily buckets",
		Version:      version,
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate("rollup version {{.Version}}\n")

	rootCmd.AddCommand(newRunCmd(factory))
	rootCmd.AddCommand(newRebuildCmd(factory))
	rootCmd.AddCommand(newScheduleCmd(factory))

	return rootCmd
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return d, nil
}

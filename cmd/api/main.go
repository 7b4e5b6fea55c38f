package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"mastodon-analytics-service/internal/config"
	"mastodon-analytics-service/internal/database"
	"mastodon-analytics-service/internal/logging"
	"mastodon-analytics-service/internal/timeframe"

	metricsHttp "mastodon-analytics-service/internal/metrics/adapters/http/fiber"
	metricsRepoPg "mastodon-analytics-service/internal/metrics/adapters/postgres"
	metricsUsecase "mastodon-analytics-service/internal/metrics/core/usecase"

	rollupHttp "mastodon-analytics-service/internal/rollup/adapters/http/fiber"
	rollupRepoPg "mastodon-analytics-service/internal/rollup/adapters/postgres"
	rollupProm "mastodon-analytics-service/internal/rollup/adapters/prom"
	rollupUsecase "mastodon-analytics-service/internal/rollup/core/usecase"

	_ "mastodon-analytics-service/docs"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	// DB connection
	db, err := database.Open(context.Background(), cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db, "analytics"),
	)

	// Repositories
	metricsDB := metricsRepoPg.NewSQLDB(db)
	accountReader := metricsRepoPg.NewAccountReader(metricsDB)
	bucketReader := metricsRepoPg.NewBucketReader(metricsDB)
	contentReader := metricsRepoPg.NewContentReader(metricsDB)

	accountRepository := rollupRepoPg.NewAccountRepository(db)
	sampleRepository := rollupRepoPg.NewSampleRepository(db)
	bucketRepository := rollupRepoPg.NewBucketRepository(db)

	// Usecases
	resolver := timeframe.NewResolver()
	timeframeUC := metricsUsecase.NewTimeframeUseCase(accountReader, resolver)
	kpiUC := metricsUsecase.NewKPIUseCase(accountReader, bucketReader, resolver.Now)
	chartUC := metricsUsecase.NewChartUseCase(accountReader, bucketReader, resolver)
	topUC := metricsUsecase.NewTopContentUseCase(accountReader, contentReader, resolver)

	rollupUC := rollupUsecase.NewRollupUseCase(accountRepository, sampleRepository, bucketRepository,
		rollupUsecase.WithLogger(logger.With().Str("component", "rollup").Logger()),
		rollupUsecase.WithRecorder(rollupProm.NewRecorder(reg)),
	)

	// HTTP (Fiber) app + handlers
	app := fiber.New(fiber.Config{
		AppName:               "mastodon-analytics",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logging.RequestLogger(logger))

	// analytics endpoints
	metricsHttp.NewAnalyticsHandler(timeframeUC, kpiUC, chartUC, topUC).Register(app)

	// rollup endpoints
	rollupHandler := rollupHttp.NewRollupHandler(rollupUC)
	app.Post("/admin/rollups", rollupHandler.RunRollup)

	// Prometheus
	if cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	}

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.Server.Addr); err != nil {
			logger.Error().Err(err).Msg("fiber stopped")
		}
	}()

	logger.Info().Str("addr", cfg.Server.Addr).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	logger.Info().Msg("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("fiber shutdown error")
	}

	logger.Info().Msg("server exiting")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"freight/cmd"
	httpadapter "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/clock"
	"freight/internal/pkg/logging"
	"freight/internal/pkg/metrics"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(configs.LogLevel, configs.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err = run(configs, logger); err != nil {
		logger.Error("freight service stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(configs cmd.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := cmd.OpenDatabase(configs, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()

	if err = postgres.Migrate(ctx, db); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(registry)
	if err != nil {
		return err
	}

	ids, err := kernel.NewSnowflakeGenerator(configs.NodeID)
	if err != nil {
		return err
	}

	publisher := cmd.NewEventPublisher(configs, logger, m)
	defer func() {
		if closeErr := publisher.Close(); closeErr != nil {
			logger.Warn("close event publisher", zap.Error(closeErr))
		}
	}()

	app := cmd.NewCompositionRoot(configs, db, publisher, ids, clock.System{}, m, logger)

	if configs.SeedPricingRules {
		seeded, seedErr := app.SeedPricingRules(ctx)
		if seedErr != nil {
			return fmt.Errorf("seed pricing rules: %w", seedErr)
		}
		if seeded > 0 {
			logger.Info("pricing rules seeded", zap.Int("count", seeded))
		}
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := httpadapter.NewRouter(httpadapter.RouterConfig{
		Handlers:    app.CreateHTTPHandlers(),
		IDs:         ids,
		SystemActor: kernel.ID(configs.SystemActorID),
		Logger:      logger,
		Metrics:     m,
		Gatherer:    registry,
	})
	if err != nil {
		return err
	}
	e.Logger.SetLevel(echoLogLevel(configs.LogLevel))

	return startWebServer(ctx, e, configs.HTTPPort, logger)
}

type webServer interface {
	Start(address string) error
	Shutdown(ctx context.Context) error
}

func startWebServer(ctx context.Context, e webServer, port string, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("port", port))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func echoLogLevel(level string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error", "dpanic", "panic", "fatal":
		return log.ERROR
	default:
		return log.INFO
	}
}

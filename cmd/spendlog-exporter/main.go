// Command spendlog-exporter writes periodic CSV and JSON snapshots of the
// expense collection to the export directory. It shares the persistence
// backend with the web server and runs independently of it.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"spendlog/internal/backend"
	"spendlog/internal/config"
	"spendlog/internal/export"
	applog "spendlog/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		applog.New(applog.DefaultConfig()).Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	level, _ := config.ParseLogLevel(cfg.LogLevel)
	logger := applog.New(applog.Config{Level: level, Component: applog.ComponentExport})
	applog.SetDefault(logger)

	backendConfig, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Backend configuration failed", "error", err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger).CreateBackend(backendConfig)
	if err != nil {
		logger.Error("Backend initialization failed", "error", err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := result.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := export.NewScheduler(result.Repository, cfg.ExportDir, cfg.ExportInterval)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return scheduler.Run(ctx)
	})

	logger.Info("Exporter started",
		"dir", cfg.ExportDir,
		"interval", cfg.ExportInterval.String(),
		applog.FieldBackend, cfg.DataBackend)

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.Error("Exporter failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Exporter stopped")
}

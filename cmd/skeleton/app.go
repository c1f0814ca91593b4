package main

import (
	"context"
	"fmt"
	"os"

	"skeleton/internal/config"
	"skeleton/internal/logger"
	"skeleton/pkg/bootstrap"
	"skeleton/pkg/logging"
	"skeleton/pkg/tracing"
)

type App struct {
	config *config.Config
	logger logger.Logger
	base   *bootstrap.Base
	tracer *tracing.TracerProvider
}

// loadApp reads the configuration and builds the logger. Failures are
// reported through the early log since no structured logger exists yet.
func loadApp(opts *rootOptions) (*App, error) {
	earlyLog := logging.NewEarlyLog()

	configFile := opts.configFile
	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		earlyLog.Error("Failed to load config: %v", err)
		return nil, err
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		earlyLog.Error("Failed to init logger: %v", err)
		return nil, err
	}

	return &App{
		config: cfg,
		logger: log,
		base:   bootstrap.NewBase(cfg, log),
	}, nil
}

// initDatabase attaches the rules database when one is configured.
func (a *App) initDatabase(ctx context.Context) error {
	rec, err := bootstrap.NewDatabaseConnector(a.config, a.logger).InitPostgreSQL(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	a.base.DB = rec
	return nil
}

func (a *App) initTracing(ctx context.Context) error {
	tp, err := tracing.Init(ctx, a.config.Tracing, a.config.App)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.tracer = tp
	return nil
}

func (a *App) initRules(ctx context.Context) error {
	if err := a.base.InitRules(ctx); err != nil {
		return fmt.Errorf("failed to initialize rules: %w", err)
	}
	return nil
}

func (a *App) Close(ctx context.Context) error {
	defer a.logger.Sync()

	return a.base.Shutdown(ctx, func(ctx context.Context) []error {
		if a.tracer == nil {
			return nil
		}
		if err := a.tracer.Shutdown(ctx); err != nil {
			return []error{fmt.Errorf("tracer provider shutdown error: %w", err)}
		}
		return nil
	})
}

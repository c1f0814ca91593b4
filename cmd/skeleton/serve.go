package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"skeleton/internal/constants"
	"skeleton/internal/logger"
	"skeleton/internal/server"
	"skeleton/pkg/health"
	"skeleton/pkg/logging"
	"skeleton/pkg/metrics"
	"skeleton/pkg/ratelimit"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the validation API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(opts)
			if err != nil {
				return &ExitError{Code: constants.ExitFailure, Err: err}
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			ctx = logging.WithCommand(ctx, "serve")

			app.logger.InfowCtx(ctx, "Starting validation service")

			if err := app.Serve(ctx, nil); err != nil {
				app.logger.ErrorwCtx(ctx, "Application error", "error", err)
				return &ExitError{Code: constants.ExitFailure, Err: err}
			}
			return nil
		},
	}
}

// Serve boots rules and the database, then serves HTTP until ctx is done.
// A nil listener binds the configured port.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	metrics.RegisterValidationMetrics()
	metrics.RegisterServerMetrics()
	metrics.RegisterCircuitBreakerMetrics()
	metrics.RegisterDatabaseMetrics()

	if err := a.initTracing(ctx); err != nil {
		return err
	}
	if err := a.initDatabase(ctx); err != nil {
		a.Close(ctx)
		return err
	}
	if err := a.initRules(ctx); err != nil {
		a.Close(ctx)
		return err
	}

	if a.config.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	checks := health.NewCheckerRegistry()
	checks.Register(health.NewRulesChecker(a.base.Registry))
	if a.base.DB != nil {
		checks.Register(health.NewPostgreSQLChecker(a.base.DB))
	}
	if a.base.Breaker != nil {
		checks.Register(health.NewBreakerChecker(a.base.Breaker))
	}

	var limiter *ratelimit.PerClient
	if a.config.RateLimit.Enabled {
		limiter = ratelimit.NewPerClient(ratelimit.FromConfig(a.config.RateLimit))
		a.logger.InfowCtx(ctx, "Rate limiting enabled", "rps", a.config.RateLimit.RPS, "burst", a.config.RateLimit.Burst)
	}

	router := server.NewRouter(server.RouterOptions{
		ServiceName: constants.ServiceName,
		Tracing:     a.config.Tracing.Enabled,
		Handler:     server.NewHandler(a.base.Registry, a.base.DB, logger.WithComponent(a.logger, "api")),
		Health:      checks,
		RateLimit:   limiter,
		Logger:      a.logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      router,
		ReadTimeout:  a.config.Server.ReadTimeout(),
		WriteTimeout: a.config.Server.WriteTimeout(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.InfowCtx(ctx, "Server listening", "addr", srv.Addr)

		var err error
		if ln != nil {
			err = srv.Serve(ln)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if limiter != nil {
		g.Go(func() error {
			limiter.RunCleanup(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		a.logger.InfowCtx(ctx, "Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	serveErr := g.Wait()

	if err := a.Close(context.Background()); err != nil {
		return errors.Join(serveErr, err)
	}
	return serveErr
}

package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/lib/pq"

	"skeleton/internal/config"
	"skeleton/internal/constants"
	"skeleton/internal/logger"
	"skeleton/internal/querylog"
	"skeleton/pkg/metrics"
	"skeleton/pkg/retry"
)

type DatabaseConnector struct {
	Config *config.Config
	Logger logger.Logger
	Policy retry.Policy

	open func(driver, dsn string) (*sql.DB, error)
}

func NewDatabaseConnector(cfg *config.Config, log logger.Logger) *DatabaseConnector {
	return &DatabaseConnector{
		Config: cfg,
		Logger: log,
		Policy: retry.DefaultPolicy(),
		open:   sql.Open,
	}
}

// DSN renders the connection URL for the configured Postgres database.
func (dc *DatabaseConnector) DSN() string {
	pg := dc.Config.Database.Postgres

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(pg.User, pg.Password),
		Host:   fmt.Sprintf("%s:%d", pg.Host, pg.Port),
		Path:   "/" + pg.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", pg.SSLMode)
	u.RawQuery = q.Encode()

	return u.String()
}

// InitPostgreSQL opens the rules database and waits for it to answer a ping.
// It returns nil when no host is configured.
func (dc *DatabaseConnector) InitPostgreSQL(ctx context.Context) (*querylog.Recorder, error) {
	if !dc.Config.Database.Postgres.Enabled() {
		return nil, nil // PostgreSQL is optional
	}

	db, err := dc.open("postgres", dc.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = retry.Do(ctx, "postgres_connect", dc.Policy, func() error {
		pctx, cancel := context.WithTimeout(ctx, constants.HealthCheckTimeout)
		defer cancel()
		return db.PingContext(pctx)
	}, func(attempt int, err error, next time.Duration) {
		dc.Logger.WarnwCtx(ctx, "PostgreSQL not ready, retrying",
			"attempt", attempt,
			"error", err,
			"next_delay", next,
		)
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	metrics.SetDatabaseConnectionsActive(constants.ServiceName, "postgres", db.Stats().OpenConnections)
	dc.Logger.InfowCtx(ctx, "PostgreSQL connected successfully", "host", dc.Config.Database.Postgres.Host)
	return querylog.New(db, "postgres"), nil
}

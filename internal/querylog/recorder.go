// Package querylog records the SQL statements issued through a database
// handle while capture is enabled.
package querylog

import (
	"context"
	"database/sql"
	"slices"
	"sync"
	"time"

	"skeleton/internal/constants"
	"skeleton/pkg/metrics"
)

type Entry struct {
	Query    string        `json:"query"`
	Bindings []any         `json:"bindings"`
	Duration time.Duration `json:"duration"`
}

// Recorder wraps a *sql.DB. Every statement is counted in the database
// metrics. Statements are kept in the recorder-wide log while it is enabled,
// and in every Collector attached to the statement's context.
type Recorder struct {
	db       *sql.DB
	database string

	mu      sync.Mutex
	enabled bool
	entries []Entry
}

func New(db *sql.DB, database string) *Recorder {
	return &Recorder{db: db, database: database}
}

func (r *Recorder) DB() *sql.DB {
	return r.db
}

func (r *Recorder) Enable() {
	r.mu.Lock()
	r.enabled = true
	r.mu.Unlock()
}

func (r *Recorder) Disable() {
	r.mu.Lock()
	r.enabled = false
	r.mu.Unlock()
}

func (r *Recorder) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Flush drops the entries of the recorder-wide log.
func (r *Recorder) Flush() {
	r.mu.Lock()
	r.entries = nil
	r.mu.Unlock()
}

func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.entries)
}

func (r *Recorder) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := r.db.ExecContext(ctx, query, args...)
	r.record(ctx, "exec", query, args, time.Since(start), err)
	return res, err
}

func (r *Recorder) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := r.db.QueryContext(ctx, query, args...)
	r.record(ctx, "query", query, args, time.Since(start), err)
	return rows, err
}

func (r *Recorder) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := r.db.QueryRowContext(ctx, query, args...)
	r.record(ctx, "query_row", query, args, time.Since(start), row.Err())
	return row
}

func (r *Recorder) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Recorder) Close() error {
	return r.db.Close()
}

func (r *Recorder) record(ctx context.Context, operation, query string, args []any, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.IncDatabaseQuery(constants.ServiceName, r.database, operation, status)
	metrics.ObserveDatabaseQueryDuration(constants.ServiceName, r.database, operation, d)

	entry := Entry{Query: query, Bindings: slices.Clone(args), Duration: d}
	if c := collectorFrom(ctx); c != nil {
		c.add(entry)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.enabled {
		r.entries = append(r.entries, entry)
	}
}

type collectorKey struct{}

// Collector holds the statements issued with one capture context. A capture
// nested in another also reports to the outer one.
type Collector struct {
	parent *Collector

	mu      sync.Mutex
	entries []Entry
}

// WithCapture returns a context whose statements are collected by the
// returned Collector, independently of any other capture.
func WithCapture(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{parent: collectorFrom(ctx)}
	return context.WithValue(ctx, collectorKey{}, c), c
}

func collectorFrom(ctx context.Context) *Collector {
	if ctx == nil {
		return nil
	}
	c, _ := ctx.Value(collectorKey{}).(*Collector)
	return c
}

func (c *Collector) add(e Entry) {
	for ; c != nil; c = c.parent {
		c.mu.Lock()
		c.entries = append(c.entries, e)
		c.mu.Unlock()
	}
}

func (c *Collector) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.entries)
}

// Capture runs fn with a capture context and returns the statements issued
// through it. Entries are returned even when fn fails. Concurrent captures
// never see each other's statements.
func Capture(ctx context.Context, fn func(ctx context.Context) error) ([]Entry, error) {
	ctx, c := WithCapture(ctx)
	err := fn(ctx)
	return c.Entries(), err
}

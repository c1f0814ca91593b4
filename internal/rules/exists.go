package rules

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Querier is the subset of *sql.DB the exists rule needs.
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Breaker guards the lookup query, typically a circuit breaker.
type Breaker interface {
	ExecuteWithContext(ctx context.Context, fn func() (interface{}, error)) (interface{}, error)
}

// ExistsRule passes when a row with the value exists: exists:table[,column].
// The column defaults to the attribute name.
type ExistsRule struct {
	db      Querier
	breaker Breaker
	timeout time.Duration
}

type ExistsOption func(*ExistsRule)

func WithBreaker(b Breaker) ExistsOption {
	return func(r *ExistsRule) { r.breaker = b }
}

func WithQueryTimeout(d time.Duration) ExistsOption {
	return func(r *ExistsRule) { r.timeout = d }
}

func NewExistsRule(db Querier, opts ...ExistsOption) *ExistsRule {
	r := &ExistsRule{db: db, timeout: 3 * time.Second}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *ExistsRule) Name() string    { return "exists" }
func (r *ExistsRule) Message() string { return "The selected :attribute is invalid." }

func (r *ExistsRule) Passes(attribute string, value any, parameters []string, ctx Context) bool {
	if len(parameters) == 0 || parameters[0] == "" {
		return false
	}

	column := attribute
	if len(parameters) > 1 && parameters[1] != "" {
		column = parameters[1]
	}

	query := ExistsQuery(parameters[0], column)

	base := context.Background()
	if ctx != nil {
		base = ctx.Context()
	}
	qctx, cancel := context.WithTimeout(base, r.timeout)
	defer cancel()

	lookup := func() (interface{}, error) {
		var exists bool
		if err := r.db.QueryRowContext(qctx, query, value).Scan(&exists); err != nil {
			return false, fmt.Errorf("exists lookup on %s.%s: %w", parameters[0], column, err)
		}
		return exists, nil
	}

	var (
		result interface{}
		err    error
	)
	if r.breaker != nil {
		result, err = r.breaker.ExecuteWithContext(qctx, lookup)
	} else {
		result, err = lookup()
	}
	if err != nil {
		return false
	}

	exists, _ := result.(bool)
	return exists
}

// ExistsQuery builds the lookup statement with quoted identifiers. A table may
// be schema-qualified ("billing.invoices").
func ExistsQuery(table, column string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)",
		strings.Join(parts, "."), pq.QuoteIdentifier(column))
}

package health

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticChecker struct {
	name string
	err  error
}

func (c staticChecker) Name() string                { return c.name }
func (c staticChecker) Check(context.Context) error { return c.err }

type counter int

func (c counter) Len() int { return int(c) }

func TestCheckerRegistryStatus(t *testing.T) {
	tests := []struct {
		name     string
		checkers []Checker
		want     Status
	}{
		{
			name: "empty registry is healthy",
			want: StatusHealthy,
		},
		{
			name:     "all passing",
			checkers: []Checker{staticChecker{name: "a"}, staticChecker{name: "b"}},
			want:     StatusHealthy,
		},
		{
			name:     "degraded check",
			checkers: []Checker{staticChecker{name: "a"}, staticChecker{name: "b", err: Degraded{Reason: "slow"}}},
			want:     StatusDegraded,
		},
		{
			name: "unhealthy wins over degraded",
			checkers: []Checker{
				staticChecker{name: "a", err: errors.New("down")},
				staticChecker{name: "b", err: Degraded{Reason: "slow"}},
			},
			want: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewCheckerRegistry()
			for _, c := range tt.checkers {
				r.Register(c)
			}

			h := r.Check(context.Background())
			assert.Equal(t, tt.want, h.Status)
			assert.Len(t, h.Checks, len(tt.checkers))
		})
	}
}

func TestCheckResultMessage(t *testing.T) {
	r := NewCheckerRegistry()
	r.Register(staticChecker{name: "db", err: errors.New("connection refused")})

	h := r.Check(context.Background())

	require.Contains(t, h.Checks, "db")
	assert.Equal(t, StatusUnhealthy, h.Checks["db"].Status)
	assert.Equal(t, "connection refused", h.Checks["db"].Message)
}

func TestPostgreSQLChecker(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	c := NewPostgreSQLChecker(db)
	assert.Equal(t, "postgresql", c.Name())

	mock.ExpectPing()
	assert.NoError(t, c.Check(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	err = c.Check(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgresql ping failed")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRulesChecker(t *testing.T) {
	assert.NoError(t, NewRulesChecker(counter(3)).Check(context.Background()))

	err := NewRulesChecker(counter(0)).Check(context.Background())
	var degraded Degraded
	require.ErrorAs(t, err, &degraded)
	assert.Equal(t, "no validation rules registered", degraded.Reason)
}

type fakeBreaker bool

func (fakeBreaker) Name() string   { return "rules_db" }
func (b fakeBreaker) IsOpen() bool { return bool(b) }

func TestBreakerChecker(t *testing.T) {
	closed := NewBreakerChecker(fakeBreaker(false))
	assert.Equal(t, "circuit_breaker_rules_db", closed.Name())
	assert.NoError(t, closed.Check(context.Background()))

	reg := NewCheckerRegistry()
	reg.Register(NewBreakerChecker(fakeBreaker(true)))
	h := reg.Check(context.Background())
	assert.Equal(t, StatusDegraded, h.Status)
	assert.Equal(t, "circuit breaker rules_db is open", h.Checks["circuit_breaker_rules_db"].Message)
}

package health

import (
	"context"
	"fmt"
	"time"

	"skeleton/internal/constants"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

type Checker interface {
	Check(ctx context.Context) error
	Name() string
}

// Degraded marks a check failure that should not take the service down.
type Degraded struct {
	Reason string
}

func (d Degraded) Error() string {
	return d.Reason
}

type Health struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

type CheckResult struct {
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type CheckerRegistry struct {
	checkers []Checker
}

func NewCheckerRegistry() *CheckerRegistry {
	return &CheckerRegistry{
		checkers: make([]Checker, 0),
	}
}

func (r *CheckerRegistry) Register(checker Checker) {
	r.checkers = append(r.checkers, checker)
}

func (r *CheckerRegistry) Check(ctx context.Context) Health {
	results := make(map[string]CheckResult)
	allHealthy := true
	anyDegraded := false

	for _, checker := range r.checkers {
		err := checker.Check(ctx)
		result := CheckResult{
			Timestamp: time.Now(),
		}

		switch e := err.(type) {
		case nil:
			result.Status = StatusHealthy
		case Degraded:
			result.Status = StatusDegraded
			result.Message = e.Reason
			anyDegraded = true
		default:
			result.Status = StatusUnhealthy
			result.Message = err.Error()
			allHealthy = false
		}

		results[checker.Name()] = result
	}

	overallStatus := StatusHealthy
	if !allHealthy {
		overallStatus = StatusUnhealthy
	} else if anyDegraded {
		overallStatus = StatusDegraded
	}

	return Health{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Checks:    results,
	}
}

// Pinger is satisfied by *sql.DB and the query log recorder.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type PostgreSQLChecker struct {
	db Pinger
}

func NewPostgreSQLChecker(db Pinger) *PostgreSQLChecker {
	return &PostgreSQLChecker{db: db}
}

func (c *PostgreSQLChecker) Name() string {
	return "postgresql"
}

func (c *PostgreSQLChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, constants.HealthCheckTimeout)
	defer cancel()

	if err := c.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgresql ping failed: %w", err)
	}
	return nil
}

// RuleCounter reports how many rules a registry holds.
type RuleCounter interface {
	Len() int
}

// RulesChecker reports degraded when no validation rule is registered.
type RulesChecker struct {
	registry RuleCounter
}

func NewRulesChecker(registry RuleCounter) *RulesChecker {
	return &RulesChecker{registry: registry}
}

func (c *RulesChecker) Name() string {
	return "rules"
}

func (c *RulesChecker) Check(context.Context) error {
	if c.registry.Len() == 0 {
		return Degraded{Reason: "no validation rules registered"}
	}
	return nil
}

// OpenReporter is satisfied by circuitbreaker.Breaker.
type OpenReporter interface {
	Name() string
	IsOpen() bool
}

// BreakerChecker reports degraded while the breaker is open: lookups through
// it fail fast, the rest of the service keeps working.
type BreakerChecker struct {
	breaker OpenReporter
}

func NewBreakerChecker(b OpenReporter) *BreakerChecker {
	return &BreakerChecker{breaker: b}
}

func (c *BreakerChecker) Name() string {
	return "circuit_breaker_" + c.breaker.Name()
}

func (c *BreakerChecker) Check(context.Context) error {
	if c.breaker.IsOpen() {
		return Degraded{Reason: "circuit breaker " + c.breaker.Name() + " is open"}
	}
	return nil
}

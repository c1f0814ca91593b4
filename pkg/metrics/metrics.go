package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ValidationRuleEvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_rule_evaluations_total",
			Help: "Total number of validation rule evaluations (count)",
		},
		[]string{"rule", "result"},
	)

	ValidationRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "validation_runs_total",
			Help: "Total number of validator runs (count)",
		},
		[]string{"status"},
	)

	ValidationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "validation_duration_ms",
			Help:    "Duration of a validator run in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		},
		[]string{"status"},
	)

	RegisteredRules = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "validation_registered_rules",
			Help: "Number of rules registered with the validation registry (count)",
		},
	)

	OptimizeStepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "optimize_steps_total",
			Help: "Total number of optimize steps executed (count)",
		},
		[]string{"step", "status"},
	)

	OptimizeStepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "optimize_step_duration_ms",
			Help:    "Duration of optimize steps in milliseconds",
			Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		},
		[]string{"step"},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open) (state code)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker (count)",
		},
		[]string{"name", "state"},
	)

	CircuitBreakerFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of failures through circuit breaker (count)",
		},
		[]string{"name"},
	)

	RetryAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_attempts_total",
			Help: "Total number of retry attempts (count)",
		},
		[]string{"operation"},
	)

	RateLimitRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_limit_requests_total",
			Help: "Total number of requests checked against rate limit (count)",
		},
		[]string{"status"},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served (count)",
		},
		[]string{"method", "route", "status"},
	)

	DatabaseQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "database_queries_total",
			Help: "Total number of database queries (count)",
		},
		[]string{"service", "database", "operation", "status"},
	)

	DatabaseQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_query_duration_ms",
			Help:    "Duration of database queries in milliseconds",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		},
		[]string{"service", "database", "operation"},
	)

	DatabaseConnectionsActive = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections (count)",
		},
		[]string{"service", "database"},
	)
)

var (
	validationOnce     sync.Once
	optimizeOnce       sync.Once
	circuitBreakerOnce sync.Once
	serverOnce         sync.Once
	databaseOnce       sync.Once
)

func RegisterValidationMetrics() {
	validationOnce.Do(func() {
		prometheus.MustRegister(ValidationRuleEvaluationsTotal)
		prometheus.MustRegister(ValidationRunsTotal)
		prometheus.MustRegister(ValidationDuration)
		prometheus.MustRegister(RegisteredRules)
	})
}

func RegisterOptimizeMetrics() {
	optimizeOnce.Do(func() {
		prometheus.MustRegister(OptimizeStepsTotal)
		prometheus.MustRegister(OptimizeStepDuration)
	})
}

func RegisterCircuitBreakerMetrics() {
	circuitBreakerOnce.Do(func() {
		prometheus.MustRegister(CircuitBreakerState)
		prometheus.MustRegister(CircuitBreakerRequests)
		prometheus.MustRegister(CircuitBreakerFailures)
	})
}

func RegisterServerMetrics() {
	serverOnce.Do(func() {
		prometheus.MustRegister(RateLimitRequestsTotal)
		prometheus.MustRegister(HTTPRequestsTotal)
	})
}

func RegisterDatabaseMetrics() {
	databaseOnce.Do(func() {
		prometheus.MustRegister(RetryAttemptsTotal)
		prometheus.MustRegister(DatabaseQueriesTotal)
		prometheus.MustRegister(DatabaseQueryDuration)
		prometheus.MustRegister(DatabaseConnectionsActive)
	})
}

func IncValidationRuleEvaluation(rule, result string) {
	ValidationRuleEvaluationsTotal.WithLabelValues(rule, result).Inc()
}

func ObserveValidation(duration time.Duration, status string) {
	ValidationRunsTotal.WithLabelValues(status).Inc()
	ValidationDuration.WithLabelValues(status).Observe(float64(duration.Milliseconds()))
}

func SetRegisteredRules(count int) {
	RegisteredRules.Set(float64(count))
}

func ObserveOptimizeStep(step, status string, duration time.Duration) {
	OptimizeStepsTotal.WithLabelValues(step, status).Inc()
	OptimizeStepDuration.WithLabelValues(step).Observe(float64(duration.Milliseconds()))
}

func IncRetryAttempt(operation string) {
	RetryAttemptsTotal.WithLabelValues(operation).Inc()
}

func IncHTTPRequest(method, route, status string) {
	HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
}

func IncDatabaseQuery(service, database, operation, status string) {
	DatabaseQueriesTotal.WithLabelValues(service, database, operation, status).Inc()
}

func ObserveDatabaseQueryDuration(service, database, operation string, duration time.Duration) {
	DatabaseQueryDuration.WithLabelValues(service, database, operation).Observe(float64(duration.Milliseconds()))
}

func SetDatabaseConnectionsActive(service, database string, count int) {
	DatabaseConnectionsActive.WithLabelValues(service, database).Set(float64(count))
}

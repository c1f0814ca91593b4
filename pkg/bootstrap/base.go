package bootstrap

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker"

	"skeleton/internal/config"
	"skeleton/internal/logger"
	"skeleton/internal/provider"
	"skeleton/internal/querylog"
	"skeleton/internal/rules"
	"skeleton/internal/validation"
	celeval "skeleton/pkg/cel"
	"skeleton/pkg/circuitbreaker"
)

// Base holds what every command shares: configuration, the logger, the
// validation registry and the optional rules database.
type Base struct {
	Config   *config.Config
	Logger   logger.Logger
	Registry *validation.Registry
	DB       *querylog.Recorder
	Breaker  *circuitbreaker.Breaker
	Report   provider.Report
}

func NewBase(cfg *config.Config, log logger.Logger) *Base {
	return &Base{
		Config: cfg,
		Logger: log,
	}
}

// InitRules creates the registry and boots the rule provider. The exists rule
// is added when a database is attached.
func (b *Base) InitRules(ctx context.Context) error {
	evaluator, err := celeval.NewEvaluator()
	if err != nil {
		return fmt.Errorf("failed to create CEL evaluator: %w", err)
	}

	rc := b.Config.Rules
	ns := rules.Namespace{Root: rc.Path, Prefix: rc.Namespace, Ext: rc.Extension}

	registry := validation.NewRegistry(b.Logger)
	p := provider.New(registry, rules.NewCatalog(ns), evaluator, provider.Options{
		Path:      rc.Path,
		Namespace: rc.Namespace,
		Extension: rc.Extension,
		Pattern:   rc.Pattern,
		Exclude:   rc.Exclude,
	}, b.Logger)

	var extra []rules.Rule
	if b.DB != nil {
		extra = append(extra, b.existsRule())
	}

	report, err := p.Boot(ctx, extra...)
	if err != nil {
		registry.Close()
		return fmt.Errorf("failed to boot validation rules: %w", err)
	}

	b.Registry = registry
	b.Report = report
	return nil
}

func (b *Base) existsRule() *rules.ExistsRule {
	cbc := b.Config.CircuitBreaker
	if !cbc.Enabled {
		return rules.NewExistsRule(b.DB)
	}

	cfg := circuitbreaker.DefaultConfig("rules_db")
	if cbc.MaxRequests > 0 {
		cfg.MaxRequests = cbc.MaxRequests
	}
	if cbc.Interval > 0 {
		cfg.Interval = cbc.Interval
	}
	if cbc.Timeout > 0 {
		cfg.Timeout = cbc.Timeout
	}
	cfg.OnStateChange = func(name string, from, to gobreaker.State) {
		b.Logger.Warnw("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
	}
	b.Breaker = circuitbreaker.New(cfg)

	return rules.NewExistsRule(b.DB, rules.WithBreaker(b.Breaker))
}

func (b *Base) Shutdown(ctx context.Context, additionalShutdown func(ctx context.Context) []error) error {
	b.Logger.InfowCtx(ctx, "Shutting down application...")

	var errs []error

	if additionalShutdown != nil {
		errs = append(errs, additionalShutdown(ctx)...)
	}

	if b.Registry != nil {
		if err := b.Registry.Close(); err != nil {
			errs = append(errs, fmt.Errorf("registry close error: %w", err))
		}
	}

	if b.DB != nil {
		if err := b.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("postgres close error: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	b.Logger.InfowCtx(ctx, "Application exited successfully")
	return nil
}

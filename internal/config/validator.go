package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

func ValidateStatic(cfg *Config) error {
	var errors []error

	if err := validateApp(cfg.App); err != nil {
		errors = append(errors, err)
	}

	if err := validateServer(cfg.Server); err != nil {
		errors = append(errors, err)
	}

	if err := validateLogging(cfg.Logging); err != nil {
		errors = append(errors, err)
	}

	if err := validateRateLimit(cfg.RateLimit); err != nil {
		errors = append(errors, err)
	}

	if cfg.Database.Postgres.Enabled() {
		if err := validatePostgres(cfg.Database.Postgres); err != nil {
			errors = append(errors, err)
		}
	}

	if err := validateRules(cfg.Rules); err != nil {
		errors = append(errors, err)
	}

	if err := validateOptimize(cfg.Optimize); err != nil {
		errors = append(errors, err)
	}

	if err := validateTracing(cfg.Tracing); err != nil {
		errors = append(errors, err)
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errors)
	}

	return nil
}

func validateApp(cfg AppConfig) error {
	if strings.TrimSpace(cfg.Env) == "" {
		return &ValidationError{
			Field:   "app.env",
			Message: "environment name is required",
		}
	}
	return nil
}

func validateServer(cfg ServerConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return &ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", cfg.Port),
		}
	}

	if cfg.ReadTimeoutSeconds <= 0 {
		return &ValidationError{
			Field:   "server.read_timeout_seconds",
			Message: "read timeout must be positive",
		}
	}

	if cfg.WriteTimeoutSeconds <= 0 {
		return &ValidationError{
			Field:   "server.write_timeout_seconds",
			Message: "write timeout must be positive",
		}
	}

	return nil
}

func validateLogging(cfg LoggingConfig) error {
	validFormats := map[string]bool{"json": true, "console": true}
	if cfg.Format != "" && !validFormats[strings.ToLower(cfg.Format)] {
		return &ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid log format: %s (valid: json, console)", cfg.Format),
		}
	}
	return nil
}

func validateRateLimit(cfg RateLimitConfig) error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.RPS <= 0 {
		return &ValidationError{
			Field:   "rate_limit.rps",
			Message: "rps must be positive",
		}
	}

	if cfg.Burst < 1 {
		return &ValidationError{
			Field:   "rate_limit.burst",
			Message: "burst must be at least 1",
		}
	}

	if cfg.CleanupInterval <= 0 || cfg.MaxAge <= 0 {
		return &ValidationError{
			Field:   "rate_limit.cleanup_interval",
			Message: "cleanup_interval and max_age must be positive",
		}
	}

	return nil
}

func validatePostgres(cfg PostgresConfig) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return &ValidationError{
			Field:   "database.postgres.port",
			Message: fmt.Sprintf("port must be between 1 and 65535, got %d", cfg.Port),
		}
	}

	if cfg.User == "" {
		return &ValidationError{
			Field:   "database.postgres.user",
			Message: "PostgreSQL user is required",
		}
	}

	if cfg.DBName == "" {
		return &ValidationError{
			Field:   "database.postgres.dbname",
			Message: "PostgreSQL database name is required",
		}
	}

	validSSLModes := map[string]bool{
		"disable": true, "allow": true, "prefer": true,
		"require": true, "verify-ca": true, "verify-full": true,
	}
	if cfg.SSLMode != "" && !validSSLModes[strings.ToLower(cfg.SSLMode)] {
		return &ValidationError{
			Field:   "database.postgres.sslmode",
			Message: fmt.Sprintf("invalid SSL mode: %s (valid: disable, allow, prefer, require, verify-ca, verify-full)", cfg.SSLMode),
		}
	}

	return nil
}

func validateRules(cfg RulesConfig) error {
	if cfg.Namespace == "" {
		return &ValidationError{
			Field:   "rules.namespace",
			Message: "namespace prefix is required",
		}
	}

	if strings.HasPrefix(cfg.Namespace, ".") || strings.HasSuffix(cfg.Namespace, ".") {
		return &ValidationError{
			Field:   "rules.namespace",
			Message: fmt.Sprintf("namespace must not start or end with a dot, got %q", cfg.Namespace),
		}
	}

	if !strings.HasPrefix(cfg.Extension, ".") {
		return &ValidationError{
			Field:   "rules.extension",
			Message: fmt.Sprintf("extension must start with a dot, got %q", cfg.Extension),
		}
	}

	if cfg.Pattern == "" {
		return &ValidationError{
			Field:   "rules.pattern",
			Message: "file name pattern is required",
		}
	}

	return nil
}

func validateOptimize(cfg OptimizeConfig) error {
	if strings.TrimSpace(cfg.AutoloadCommand) == "" {
		return &ValidationError{
			Field:   "optimize.autoload_command",
			Message: "autoload command is required",
		}
	}

	if strings.TrimSpace(cfg.Artisan) == "" {
		return &ValidationError{
			Field:   "optimize.artisan",
			Message: "artisan command is required",
		}
	}

	return nil
}

func validateTracing(cfg TracingConfig) error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.OTLP.Endpoint == "" {
		return &ValidationError{
			Field:   "tracing.otlp.endpoint",
			Message: "OTLP endpoint is required when tracing is enabled",
		}
	}

	validSamplers := map[string]bool{
		"": true, "always_on": true, "always_off": true, "traceidratio": true,
		"parentbased_always_on": true, "parentbased_traceidratio": true,
	}
	if !validSamplers[cfg.Sampler.Type] {
		return &ValidationError{
			Field:   "tracing.sampler.type",
			Message: fmt.Sprintf("invalid sampler type: %s", cfg.Sampler.Type),
		}
	}

	if strings.HasSuffix(cfg.Sampler.Type, "traceidratio") && (cfg.Sampler.Param < 0 || cfg.Sampler.Param > 1) {
		return &ValidationError{
			Field:   "tracing.sampler.param",
			Message: fmt.Sprintf("sampler ratio must be between 0 and 1, got %v", cfg.Sampler.Param),
		}
	}

	return nil
}

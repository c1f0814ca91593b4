package config

import (
	"strings"
	"time"

	"skeleton/internal/constants"
)

type Config struct {
	App            AppConfig            `mapstructure:"app"`
	Server         ServerConfig         `mapstructure:"server"`
	Logging        LoggingConfig        `mapstructure:"logging"`
	RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
	Database       DatabaseConfig       `mapstructure:"database"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
	Rules          RulesConfig          `mapstructure:"rules"`
	Optimize       OptimizeConfig       `mapstructure:"optimize"`
	Tracing        TracingConfig        `mapstructure:"tracing"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	BasePath string `mapstructure:"base_path"`
}

// IsProduction reports whether the host environment is production.
func (c AppConfig) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Env))
	return env == constants.EnvProduction || env == constants.EnvProd
}

type ServerConfig struct {
	Port                int `mapstructure:"port"`
	ReadTimeoutSeconds  int `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int `mapstructure:"write_timeout_seconds"`
}

func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type RateLimitConfig struct {
	Enabled         bool    `mapstructure:"enabled"`
	RPS             float64 `mapstructure:"rps"`
	Burst           int     `mapstructure:"burst"`
	CleanupInterval int     `mapstructure:"cleanup_interval"`
	MaxAge          int     `mapstructure:"max_age"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// Enabled reports whether a PostgreSQL connection was configured at all.
func (c PostgresConfig) Enabled() bool {
	return c.Host != ""
}

type CircuitBreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxRequests uint32        `mapstructure:"max_requests"`
	Interval    time.Duration `mapstructure:"interval"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type RulesConfig struct {
	Path      string   `mapstructure:"path"`
	Namespace string   `mapstructure:"namespace"`
	Extension string   `mapstructure:"extension"`
	Pattern   string   `mapstructure:"pattern"`
	Exclude   []string `mapstructure:"exclude"`
}

type OptimizeConfig struct {
	WorkingDir      string `mapstructure:"working_dir"`
	AutoloadCommand string `mapstructure:"autoload_command"`
	Artisan         string `mapstructure:"artisan"`
}

func Load(configFile string) (*Config, error) {
	return LoadConfig(configFile)
}

type TracingConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	ServiceName string        `mapstructure:"service_name"`
	OTLP        OTLPConfig    `mapstructure:"otlp"`
	Sampler     SamplerConfig `mapstructure:"sampler"`
}

type OTLPConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Insecure bool   `mapstructure:"insecure"`
}

type SamplerConfig struct {
	Type  string  `mapstructure:"type"`
	Param float64 `mapstructure:"param"`
}

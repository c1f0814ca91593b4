package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"skeleton/internal/constants"
)

// LoadConfig reads an optional YAML file, applies environment overrides and
// validates the result. A .env file in the working directory is loaded first
// without overriding variables that are already set.
func LoadConfig(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvVariables(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(v, &cfg)

	if err := ValidateStatic(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", constants.ServiceName)
	v.SetDefault("app.env", constants.EnvProduction)
	v.SetDefault("app.base_path", ".")

	v.SetDefault("server.port", constants.DefaultServerPort)
	v.SetDefault("server.read_timeout_seconds", 10)
	v.SetDefault("server.write_timeout_seconds", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.rps", 10.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("rate_limit.cleanup_interval", 300)
	v.SetDefault("rate_limit.max_age", 600)

	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.sslmode", "disable")

	v.SetDefault("circuit_breaker.enabled", true)
	v.SetDefault("circuit_breaker.max_requests", 3)
	v.SetDefault("circuit_breaker.interval", "60s")
	v.SetDefault("circuit_breaker.timeout", "30s")

	v.SetDefault("rules.path", "")
	v.SetDefault("rules.namespace", constants.DefaultRulesNamespace)
	v.SetDefault("rules.extension", constants.DefaultRulesExtension)
	v.SetDefault("rules.pattern", constants.DefaultRulesPattern)
	v.SetDefault("rules.exclude", constants.DefaultRulesExclude)

	v.SetDefault("optimize.working_dir", ".")
	v.SetDefault("optimize.autoload_command", constants.DefaultAutoloadCommand)
	v.SetDefault("optimize.artisan", constants.DefaultArtisan)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.otlp.endpoint", "localhost:4317")
	v.SetDefault("tracing.otlp.insecure", true)
	v.SetDefault("tracing.sampler.type", "parentbased_always_on")
	v.SetDefault("tracing.sampler.param", 1.0)
}

func bindEnvVariables(v *viper.Viper) {
	v.BindEnv("app.name", "APP_NAME")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.base_path", "APP_BASE_PATH")

	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.read_timeout_seconds", "SERVER_READ_TIMEOUT_SECONDS")
	v.BindEnv("server.write_timeout_seconds", "SERVER_WRITE_TIMEOUT_SECONDS")

	v.BindEnv("logging.level", "LOGGING_LEVEL")
	v.BindEnv("logging.format", "LOGGING_FORMAT")

	v.BindEnv("database.postgres.host", "DATABASE_POSTGRES_HOST")
	v.BindEnv("database.postgres.port", "DATABASE_POSTGRES_PORT")
	v.BindEnv("database.postgres.user", "DATABASE_POSTGRES_USER")
	v.BindEnv("database.postgres.password", "DATABASE_POSTGRES_PASSWORD")
	v.BindEnv("database.postgres.dbname", "DATABASE_POSTGRES_DBNAME")
	v.BindEnv("database.postgres.sslmode", "DATABASE_POSTGRES_SSLMODE")

	v.BindEnv("rules.path", "RULES_PATH")
	v.BindEnv("rules.namespace", "RULES_NAMESPACE")

	v.BindEnv("optimize.working_dir", "OPTIMIZE_WORKING_DIR")
	v.BindEnv("optimize.autoload_command", "OPTIMIZE_AUTOLOAD_COMMAND")
	v.BindEnv("optimize.artisan", "OPTIMIZE_ARTISAN")

	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.otlp.endpoint", "TRACING_OTLP_ENDPOINT")
}

func applyEnvOverrides(v *viper.Viper, cfg *Config) {
	if excludeEnv := v.GetString("RULES_EXCLUDE"); excludeEnv != "" {
		exclude := strings.Split(excludeEnv, ",")
		for i := range exclude {
			exclude[i] = strings.TrimSpace(exclude[i])
		}
		cfg.Rules.Exclude = exclude
	}
}

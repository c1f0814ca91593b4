package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "skeleton", cfg.App.Name)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "app.rules", cfg.Rules.Namespace)
	assert.Equal(t, ".yaml", cfg.Rules.Extension)
	assert.Equal(t, []string{"Rule", "RegexRule", "ImplicitRule", "RegexImplicitRule"}, cfg.Rules.Exclude)
	assert.Equal(t, "composer dump-autoload --optimize --ansi", cfg.Optimize.AutoloadCommand)
	assert.Equal(t, "php artisan", cfg.Optimize.Artisan)
	assert.Equal(t, 60*time.Second, cfg.CircuitBreaker.Interval)
	assert.False(t, cfg.Database.Postgres.Enabled())
}

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "local")
	t.Setenv("OPTIMIZE_ARTISAN", "./artisan")
	t.Setenv("RULES_EXCLUDE", "Rule, BaseRule")

	path := writeConfig(t, `
app:
  name: portal
server:
  port: 9090
  read_timeout_seconds: 5
  write_timeout_seconds: 5
rules:
  path: app/Rules
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "portal", cfg.App.Name)
	assert.Equal(t, "local", cfg.App.Env)
	assert.False(t, cfg.App.IsProduction())
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout())
	assert.Equal(t, "app/Rules", cfg.Rules.Path)
	assert.Equal(t, "./artisan", cfg.Optimize.Artisan)
	assert.Equal(t, []string{"Rule", "BaseRule"}, cfg.Rules.Exclude)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("APP_ENV=testing\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("APP_ENV") })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "testing", cfg.App.Env)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestIsProduction(t *testing.T) {
	tests := []struct {
		env  string
		want bool
	}{
		{"production", true},
		{"prod", true},
		{" Production ", true},
		{"local", false},
		{"staging", false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, AppConfig{Env: tt.env}.IsProduction())
		})
	}
}

func validConfig() *Config {
	return &Config{
		App:    AppConfig{Name: "skeleton", Env: "production"},
		Server: ServerConfig{Port: 8080, ReadTimeoutSeconds: 10, WriteTimeoutSeconds: 10},
		Rules: RulesConfig{
			Namespace: "app.rules",
			Extension: ".yaml",
			Pattern:   "*Rule",
		},
		Optimize: OptimizeConfig{AutoloadCommand: "composer dump-autoload", Artisan: "php artisan"},
	}
}

func TestValidateStatic(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "empty env", mutate: func(c *Config) { c.App.Env = " " }, wantErr: "app.env"},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "logging.format"},
		{name: "rate limit without rps", mutate: func(c *Config) { c.RateLimit = RateLimitConfig{Enabled: true, Burst: 1} }, wantErr: "rate_limit.rps"},
		{name: "postgres without user", mutate: func(c *Config) {
			c.Database.Postgres = PostgresConfig{Host: "db", Port: 5432, DBName: "app"}
		}, wantErr: "database.postgres.user"},
		{name: "namespace with dot", mutate: func(c *Config) { c.Rules.Namespace = "app.rules." }, wantErr: "rules.namespace"},
		{name: "extension without dot", mutate: func(c *Config) { c.Rules.Extension = "yaml" }, wantErr: "rules.extension"},
		{name: "empty artisan", mutate: func(c *Config) { c.Optimize.Artisan = "" }, wantErr: "optimize.artisan"},
		{name: "tracing without endpoint", mutate: func(c *Config) { c.Tracing = TracingConfig{Enabled: true} }, wantErr: "tracing.otlp.endpoint"},
		{name: "tracing bad ratio", mutate: func(c *Config) {
			c.Tracing = TracingConfig{Enabled: true, OTLP: OTLPConfig{Endpoint: "collector:4317"}, Sampler: SamplerConfig{Type: "traceidratio", Param: 2}}
		}, wantErr: "tracing.sampler.param"},
		{name: "tracing disabled is not checked", mutate: func(c *Config) { c.Tracing = TracingConfig{Sampler: SamplerConfig{Type: "bogus"}} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := ValidateStatic(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

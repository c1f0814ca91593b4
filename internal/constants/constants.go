package constants

import "time"

const (
	ServiceName = "skeleton"
)

const (
	EnvProduction  = "production"
	EnvProd        = "prod"
	EnvDevelopment = "development"
	EnvLocal       = "local"
	EnvTesting     = "testing"
)

const (
	DefaultRulesNamespace = "app.rules"
	DefaultRulesExtension = ".yaml"
	DefaultRulesPattern   = "*Rule"
)

// DefaultRulesExclude lists base types that share the naming convention but
// are not registrable rules.
var DefaultRulesExclude = []string{"Rule", "RegexRule", "ImplicitRule", "RegexImplicitRule"}

const (
	DefaultAutoloadCommand = "composer dump-autoload --optimize --ansi"
	DefaultArtisan         = "php artisan"
)

// CacheSteps is the fixed order of framework cache refreshes run by
// optimize:all after the autoload index.
var CacheSteps = []string{"config:cache", "event:cache", "route:cache", "view:cache"}

const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitInvalid = 2
)

const (
	DefaultServerPort  = 8080
	ShutdownTimeout    = 5 * time.Second
	HealthCheckTimeout = 5 * time.Second
	RuleQueryTimeout   = 3 * time.Second
)

const (
	RuleDefault = "default"
	RuleExists  = "exists"
)

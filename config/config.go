package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: identity provider and session configuration
//   - http.go: HTTP server and route guard configuration
//   - database.go: optional Postgres and Redis configuration
type AppConfig struct {
	// IsDev controls development mode behavior (template hot reloading).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Authentication configuration
	Auth AuthConfig

	// HTTP server configuration
	HTTP HTTPConfig

	// Route guard configuration
	Guard GuardConfig `envPrefix:"GUARD_"`

	// Optional infrastructure
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// Notify configuration
	Notify NotifyConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.Guard.Sanitize()
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// NotifyConfig configures the optional auth outage webhook sink.
type NotifyConfig struct {
	// WebhookURL receives a JSON event whenever the identity provider is
	// unreachable. Empty disables outage notifications.
	WebhookURL string `env:"LOGIN_ALERT_WEBHOOK_URL"`
}

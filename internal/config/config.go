// ABOUTME: Configuration loader for the webcost client
// ABOUTME: Loads backend origins and client settings from environment variables

package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the externally supplied client configuration. Both backend
// origins must be provided; the binary ships with no hardcoded production
// origins.
type Config struct {
	// APIURL is the primary backend origin (auth, accounts, alerts,
	// settings, assistant).
	APIURL string `env:"WEBCOST_API_URL"`

	// AnalyticsURL is the analytics backend origin (cost data, free tier).
	AnalyticsURL string `env:"WEBCOST_ANALYTICS_URL"`

	// AnalyticsPrefixes overrides the logical path prefixes routed to the
	// analytics origin. Comma-separated, e.g. "/cost,/free-tier".
	AnalyticsPrefixes []string `env:"WEBCOST_ANALYTICS_PREFIXES" envSeparator:","`

	// TimeoutSeconds is the per-request HTTP timeout.
	TimeoutSeconds int `env:"WEBCOST_TIMEOUT" envDefault:"30"`

	// Debug enables the file-backed debug log in the config directory.
	Debug bool `env:"WEBCOST_DEBUG" envDefault:"false"`
}

// Load reads configuration from the environment, with an optional .env file
// in the working directory.
func Load() (*Config, error) {
	cfg, err := ParseEnv()
	if err != nil {
		return nil, err
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseEnv reads configuration without normalizing or validating, for callers
// that layer flag overrides on top before calling Finalize.
func ParseEnv() (*Config, error) {
	// Missing .env is the normal case; real env vars always win.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Finalize normalizes the origin URLs and validates the result.
func (c *Config) Finalize() error {
	c.APIURL = ensureScheme(strings.TrimRight(c.APIURL, "/"))
	c.AnalyticsURL = ensureScheme(strings.TrimRight(c.AnalyticsURL, "/"))
	return c.Validate()
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("WEBCOST_API_URL is required")
	}
	if c.AnalyticsURL == "" {
		return fmt.Errorf("WEBCOST_ANALYTICS_URL is required")
	}
	if c.TimeoutSeconds < 1 || c.TimeoutSeconds > 600 {
		return fmt.Errorf("WEBCOST_TIMEOUT must be between 1 and 600, got %d", c.TimeoutSeconds)
	}
	return nil
}

// ensureScheme adds https:// prefix if the URL has no scheme.
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable, e.g. VAULTLAUNCH_PORT.
	EnvPrefix = "vaultlaunch"

	// EnvProduction represents the production environment.
	EnvProduction = "production"
	// EnvDevelopment represents the development environment.
	EnvDevelopment = "development"
)

// Config holds all application configuration.
type Config struct {
	Env string `envconfig:"ENV" default:"production"`

	// Logging settings
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	// Server settings
	Port      string `envconfig:"PORT" default:"7421"`
	PublicDir string `envconfig:"PUBLIC_DIR"`

	// Security settings
	HSTSMaxAge int    `envconfig:"HSTS_MAX_AGE" default:"31536000"`
	CSPMode    string `envconfig:"CSP_MODE" default:"strict"`

	// Launch settings
	SettingsPath  string        `envconfig:"SETTINGS_PATH"`
	LaunchTimeout time.Duration `envconfig:"LAUNCH_TIMEOUT" default:"10s"`
	ExtraPaths    []string      `envconfig:"EXTRA_PATHS"`
}

// LoadConfig loads configuration from an optional .env file and
// VAULTLAUNCH_* environment variables.
func LoadConfig() (*Config, error) {
	// .env is optional outside development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Error loading .env file", "error", err)
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if cfg.LaunchTimeout <= 0 {
		return nil, fmt.Errorf("invalid VAULTLAUNCH_LAUNCH_TIMEOUT %s: must be positive", cfg.LaunchTimeout)
	}

	return &cfg, nil
}

// IsDevelopment reports whether debug defaults apply.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// BuildCSP constructs Content Security Policy based on mode.
func BuildCSP(mode string) string {
	if mode == "strict" {
		return "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self'; " +
			"img-src 'self' data:; " +
			"object-src 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
	}

	// Development/relaxed CSP
	return "default-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:"
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Session SessionConfig `mapstructure:"session"`
	Guard   GuardConfig   `mapstructure:"guard"`
	Stock   StockConfig   `mapstructure:"stock"`
	Web     WebConfig     `mapstructure:"web"`
	Log     LogConfig     `mapstructure:"log"`
	Display DisplayConfig `mapstructure:"display"`
}

// APIConfig locates the inventory API
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// AuthConfig holds login settings
type AuthConfig struct {
	LoginTimeout time.Duration `mapstructure:"login_timeout"`
}

// SessionConfig selects where the session is persisted
type SessionConfig struct {
	Backend string `mapstructure:"backend"` // "file", "keyring", "sqlite" or "memory"
	Slot    string `mapstructure:"slot"`
	Dir     string `mapstructure:"dir"`
}

// GuardConfig holds route guard settings
type GuardConfig struct {
	ForbiddenRedirect string `mapstructure:"forbidden_redirect"` // "/login" or "/forbidden"
}

// StockConfig holds stock classification settings
type StockConfig struct {
	LowThreshold int `mapstructure:"low_threshold"`
}

// WebConfig holds the local web server configuration
type WebConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // "development" or "production"
}

// LogConfig holds logging configuration
type LogConfig struct {
	Format string `mapstructure:"format"` // "console", "json" or "text"
	Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
}

// DisplayConfig controls how amounts are rendered
type DisplayConfig struct {
	Locale   string `mapstructure:"locale"`
	Currency string `mapstructure:"currency"`
}

// Dir returns the config directory (~/.config/stockdesk/ or platform equivalent).
// Can be overridden with STOCKDESK_CONFIG_DIR.
func Dir() (string, error) {
	if dir := os.Getenv("STOCKDESK_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "stockdesk"), nil
}

// Load reads configuration from file and environment variables. An
// explicit file must exist; otherwise config.yaml is looked up in the
// working directory and the config directory.
func Load(file string) (*Config, error) {
	v := viper.New()

	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("auth.login_timeout", "10s")
	v.SetDefault("session.backend", "file")
	v.SetDefault("session.slot", "auth")
	v.SetDefault("session.dir", dir)
	v.SetDefault("guard.forbidden_redirect", "/login")
	v.SetDefault("stock.low_threshold", 10)
	v.SetDefault("web.port", 8470)
	v.SetDefault("web.mode", "development")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.level", "info")
	v.SetDefault("display.locale", "fr")
	v.SetDefault("display.currency", "DH")

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, using defaults
	}

	// Environment variables override
	v.SetEnvPrefix("STOCKDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the rest of the program cannot work with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url must be set")
	}
	if c.Auth.LoginTimeout <= 0 {
		return fmt.Errorf("auth.login_timeout must be positive, got %s", c.Auth.LoginTimeout)
	}
	switch c.Session.Backend {
	case "file", "keyring", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown session.backend %q", c.Session.Backend)
	}
	switch c.Guard.ForbiddenRedirect {
	case "/login", "/forbidden":
	default:
		return fmt.Errorf("guard.forbidden_redirect must be /login or /forbidden, got %q", c.Guard.ForbiddenRedirect)
	}
	if c.Stock.LowThreshold <= 0 {
		return fmt.Errorf("stock.low_threshold must be positive, got %d", c.Stock.LowThreshold)
	}
	return nil
}

// Package config assembles the service configuration from an optional
// YAML file and environment variables. Environment variables win over
// file values, so deployments can override a checked-in config.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	pkgconfig "pressroom/pkg/config"
)

// Store names select the article persistence backend.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

const minJWTSecretLength = 32

// Config holds every runtime setting of the service.
type Config struct {
	Addr        string `yaml:"addr"`
	Store       string `yaml:"store"`
	DatabaseURL string `yaml:"database_url"`
	SQLitePath  string `yaml:"sqlite_path"`

	JWTSecret     string        `yaml:"jwt_secret"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	LoginCodeTTL  time.Duration `yaml:"login_code_ttl"`
	SecureCookies bool          `yaml:"secure_cookies"`

	MailWebhookURL string `yaml:"mail_webhook_url"`

	PaginationMaxLimit int `yaml:"pagination_max_limit"`

	AuthRateLimit  int           `yaml:"auth_rate_limit"`
	AuthRateWindow time.Duration `yaml:"auth_rate_window"`
}

func defaults() Config {
	return Config{
		Addr:               ":8080",
		Store:              StoreMemory,
		SQLitePath:         "pressroom.db",
		TokenTTL:           time.Hour,
		SessionTTL:         24 * time.Hour,
		LoginCodeTTL:       5 * time.Minute,
		PaginationMaxLimit: 100,
		AuthRateLimit:      10,
		AuthRateWindow:     time.Minute,
	}
}

// Load reads the optional file named by PRESSROOM_CONFIG, then applies
// environment overrides, then validates the result.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("PRESSROOM_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Addr = pkgconfig.GetEnvString("ADDR", cfg.Addr)
	cfg.Store = pkgconfig.GetEnvString("ARTICLE_STORE", cfg.Store)
	cfg.DatabaseURL = pkgconfig.GetEnvString("DATABASE_URL", cfg.DatabaseURL)
	cfg.SQLitePath = pkgconfig.GetEnvString("SQLITE_PATH", cfg.SQLitePath)
	cfg.JWTSecret = pkgconfig.GetEnvString("JWT_SECRET", cfg.JWTSecret)
	cfg.TokenTTL = pkgconfig.GetEnvDuration("TOKEN_TTL", cfg.TokenTTL)
	cfg.SessionTTL = pkgconfig.GetEnvDuration("SESSION_TTL", cfg.SessionTTL)
	cfg.LoginCodeTTL = pkgconfig.GetEnvDuration("LOGIN_CODE_TTL", cfg.LoginCodeTTL)
	cfg.SecureCookies = pkgconfig.GetEnvBool("SECURE_COOKIES", cfg.SecureCookies)
	cfg.MailWebhookURL = pkgconfig.GetEnvString("MAIL_WEBHOOK_URL", cfg.MailWebhookURL)
	cfg.PaginationMaxLimit = pkgconfig.GetEnvInt("PAGINATION_MAX_LIMIT", cfg.PaginationMaxLimit)
	cfg.AuthRateLimit = pkgconfig.GetEnvInt("AUTH_RATE_LIMIT", cfg.AuthRateLimit)
	cfg.AuthRateWindow = pkgconfig.GetEnvDuration("AUTH_RATE_WINDOW", cfg.AuthRateWindow)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// GetVersion returns the build version from the environment, or "dev".
func GetVersion() string {
	return pkgconfig.GetEnvString("VERSION", "dev")
}

func (c Config) validate() error {
	switch c.Store {
	case StoreMemory, StorePostgres, StoreSQLite:
	default:
		return fmt.Errorf("unknown article store %q", c.Store)
	}
	if c.Store == StorePostgres && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required for the postgres store")
	}
	if len(c.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if c.PaginationMaxLimit < 1 {
		return errors.New("pagination max limit must be positive")
	}
	if c.AuthRateLimit < 1 {
		return errors.New("auth rate limit must be positive")
	}
	return nil
}

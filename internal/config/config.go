package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration parsed from the environment and an optional .env file.
type Config struct {
	HTTPAddr        string
	Environment     string
	LogLevel        string
	DBConnString    string
	ShutdownTimeout time.Duration

	APIBaseURL string
	APITimeout time.Duration
	CatalogCSV string

	CORSOrigins   []string
	SessionTTL    time.Duration
	RedirectAfter time.Duration
}

// Load reads .env (if present) and the process environment. Environment
// variables win over .env values.
func Load() (*Config, error) {
	// Preload .env into the process so child tools see the same values.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("env")
	v.SetConfigName(".env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("API_TIMEOUT_SECONDS", 15)
	v.SetDefault("SESSION_TTL_MINUTES", 120)
	v.SetDefault("ORDER_REDIRECT_SECONDS", 3)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		HTTPAddr:        getEnvOrViper(v, "HTTP_ADDR", ":8080"),
		Environment:     getEnvOrViper(v, "ENVIRONMENT", "development"),
		LogLevel:        getEnvOrViper(v, "LOG_LEVEL", "info"),
		DBConnString:    strings.TrimSpace(getEnvOrViper(v, "DB_DSN", "")),
		ShutdownTimeout: time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
		APIBaseURL:      strings.TrimSpace(getEnvOrViper(v, "API_BASE_URL", "")),
		APITimeout:      time.Duration(v.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
		CatalogCSV:      strings.TrimSpace(getEnvOrViper(v, "CATALOG_CSV", "")),
		CORSOrigins:     splitList(getEnvOrViper(v, "CORS_ORIGINS", "")),
		SessionTTL:      time.Duration(v.GetInt("SESSION_TTL_MINUTES")) * time.Minute,
		RedirectAfter:   time.Duration(v.GetInt("ORDER_REDIRECT_SECONDS")) * time.Second,
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequireAPI reports an error when API_BASE_URL is unset. The API server needs
// it to place orders even when the catalog is read from CATALOG_CSV.
func (c *Config) RequireAPI() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required for order creation")
	}
	return nil
}

func (c *Config) validate() error {
	for name, d := range map[string]time.Duration{
		"SHUTDOWN_TIMEOUT_SECONDS": c.ShutdownTimeout,
		"API_TIMEOUT_SECONDS":      c.APITimeout,
		"SESSION_TTL_MINUTES":      c.SessionTTL,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	if c.RedirectAfter < 0 {
		return fmt.Errorf("ORDER_REDIRECT_SECONDS must not be negative")
	}
	return nil
}

func getEnvOrViper(v *viper.Viper, key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if v.IsSet(key) {
		if s := v.GetString(key); s != "" {
			return s
		}
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

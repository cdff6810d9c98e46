/*
Package config loads server configuration from the environment.

PURPOSE:
  One place that knows every environment variable the server reads, their
  defaults, and which combinations are invalid. A .env file in the working
  directory is loaded first when present; real environment variables win.

VARIABLES:
  APP_ENV               development | production (default development)
  HTTP_PORT             8080
  HTTP_READ_TIMEOUT     15s
  HTTP_WRITE_TIMEOUT    15s
  HTTP_IDLE_TIMEOUT     60s
  SHUTDOWN_TIMEOUT      30s
  CORS_ALLOWED_ORIGINS  comma separated (default localhost:5173, localhost:8080)
  DB_DRIVER             sqlite | postgres (default sqlite)
  SQLITE_PATH           academy.db (":memory:" allowed)
  DATABASE_URL          required when DB_DRIVER=postgres
  DB_MAX_CONNS          10
  UPSERT_MAX_ATTEMPTS   3
  APP_TIMEZONE          UTC (IANA name; decides course month buckets)
  LOG_LEVEL             debug | info | warn | error (default info)
  LOG_FORMAT            json | console (default json)

SEE ALSO:
  - cmd/server/main.go: flags that override these values
*/
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the complete server configuration.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Database DatabaseConfig
	Log      LogConfig
}

type AppConfig struct {
	Environment       string
	Timezone          string
	UpsertMaxAttempts int
}

type HTTPConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

type DatabaseConfig struct {
	Driver     string
	SQLitePath string
	URL        string
	MaxConns   int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads .env (if any) and the environment, then validates the result.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Environment:       getEnv("APP_ENV", EnvDevelopment),
			Timezone:          getEnv("APP_TIMEZONE", "UTC"),
			UpsertMaxAttempts: getEnvInt("UPSERT_MAX_ATTEMPTS", 3),
		},
		HTTP: HTTPConfig{
			Port:            getEnvInt("HTTP_PORT", 8080),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
			AllowedOrigins:  getEnvStringSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173", "http://localhost:8080"}),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			SQLitePath: getEnv("SQLITE_PATH", "academy.db"),
			URL:        getEnv("DATABASE_URL", ""),
			MaxConns:   getEnvInt("DB_MAX_CONNS", 10),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Format: strings.ToLower(getEnv("LOG_FORMAT", "json")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			errs = append(errs, "SQLITE_PATH is required when DB_DRIVER=sqlite")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, "DATABASE_URL is required when DB_DRIVER=postgres")
		}
	default:
		errs = append(errs, fmt.Sprintf("DB_DRIVER must be sqlite or postgres, got %q", c.Database.Driver))
	}

	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		errs = append(errs, "HTTP_PORT must be 1-65535")
	}
	if c.App.UpsertMaxAttempts < 1 {
		errs = append(errs, "UPSERT_MAX_ATTEMPTS must be at least 1")
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		errs = append(errs, fmt.Sprintf("APP_TIMEZONE %q is not a known location", c.App.Timezone))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, "LOG_LEVEL must be debug, info, warn or error")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		errs = append(errs, "LOG_FORMAT must be json or console")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// Location returns the configured time zone. Call after Validate.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Environment == EnvProduction
}

// --- Helper functions for environment variable parsing ---

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func getEnvStringSlice(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}

	parts := strings.Split(val, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

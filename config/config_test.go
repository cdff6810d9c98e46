package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "HTTP_PORT", "SQLITE_PATH", "APP_TIMEZONE", "LOG_LEVEL", "LOG_FORMAT", "UPSERT_MAX_ATTEMPTS", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "academy.db", cfg.Database.SQLitePath)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, 3, cfg.App.UpsertMaxAttempts)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Len(t, cfg.HTTP.AllowedOrigins, 2)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/academy")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("HTTP_READ_TIMEOUT", "2s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("APP_TIMEZONE", "Africa/Cairo")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 2*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "Africa/Cairo", cfg.Location().String())
}

func TestLoad_BadNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("HTTP_PORT", "eighty")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
}

func TestValidate_CollectsEveryError(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Timezone: "Mars/Olympus", UpsertMaxAttempts: 0},
		HTTP:     HTTPConfig{Port: 70000},
		Database: DatabaseConfig{Driver: DriverPostgres},
		Log:      LogConfig{Level: "loud", Format: "xml"},
	}

	err := cfg.Validate()

	require.Error(t, err)
	for _, want := range []string{"DATABASE_URL", "HTTP_PORT", "UPSERT_MAX_ATTEMPTS", "APP_TIMEZONE", "LOG_LEVEL", "LOG_FORMAT"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{
		App:      AppConfig{Timezone: "UTC", UpsertMaxAttempts: 1},
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "mysql"},
		Log:      LogConfig{Level: "info", Format: "json"},
	}

	assert.ErrorContains(t, cfg.Validate(), "DB_DRIVER")
}

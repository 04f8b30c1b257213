package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		JWT:       JWTConfig{Secret: "secret", AccessExpiration: "1h"},
		App:       AppConfig{Timezone: "UTC", LogLevel: "info"},
		Store:     StoreConfig{Backend: BackendMemory},
		RateLimit: RateLimitConfig{PerMinute: 10},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("memory backend needs no store urls", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.Secret = ""
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET_KEY")
	})

	t.Run("sheet backend requires both urls", func(t *testing.T) {
		cfg := validConfig()
		cfg.Store.Backend = BackendSheet
		cfg.Store.LogsURL = "https://sheet.example/logs"
		assert.ErrorContains(t, cfg.Validate(), "SHEET_TASKS_URL")
	})

	t.Run("postgres backend requires password", func(t *testing.T) {
		cfg := validConfig()
		cfg.Store.Backend = BackendPostgres
		assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := validConfig()
		cfg.Store.Backend = "excel"
		assert.Error(t, cfg.Validate())
	})

	t.Run("bad access expiration", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.AccessExpiration = "soon"
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_Location(t *testing.T) {
	cfg := validConfig()
	cfg.App.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.App.Timezone = "UTC"
	assert.Equal(t, "UTC", cfg.Location().String())
}

func TestConfig_SlogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.App.LogLevel = "DEBUG"
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	cfg.App.LogLevel = "bogus"
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestConfig_DatabaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Database = DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Name: "teamdesk", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/teamdesk?sslmode=disable", cfg.DatabaseURL())
}

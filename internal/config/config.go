package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Store     StoreConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port         int
	Env          string
	LogLevel     string
	Timezone     string
	FrontendURL  string
	IdentityFile string
}

// StoreConfig selects and configures the record store backend
type StoreConfig struct {
	Backend  string
	LogsURL  string
	TasksURL string
	APIToken string
	Timeout  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
}

type RateLimitConfig struct {
	PerMinute int
}

const (
	BackendSheet    = "sheet"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using process environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "teamdesk"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:         appPort,
		Env:          getEnv("APP_ENV", "development"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Timezone:     getEnv("APP_TIMEZONE", "Asia/Kolkata"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:5173"),
		IdentityFile: getEnv("IDENTITY_FILE", ""),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "8h"),
	}

	// Record store configuration
	storeTimeout, err := time.ParseDuration(getEnv("SHEET_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SHEET_TIMEOUT: %w", err)
	}

	config.Store = StoreConfig{
		Backend:  strings.ToLower(getEnv("STORE_BACKEND", BackendSheet)),
		LogsURL:  getEnv("SHEET_LOGS_URL", ""),
		TasksURL: getEnv("SHEET_TASKS_URL", ""),
		APIToken: getEnv("SHEET_API_TOKEN", ""),
		Timeout:  storeTimeout,
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
	}

	perMinute, err := strconv.Atoi(getEnv("RATE_LIMIT_PER_MIN", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MIN: %w", err)
	}
	config.RateLimit = RateLimitConfig{PerMinute: perMinute}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}

	switch c.Store.Backend {
	case BackendSheet:
		if c.Store.LogsURL == "" {
			return fmt.Errorf("SHEET_LOGS_URL is required")
		}
		if c.Store.TasksURL == "" {
			return fmt.Errorf("SHEET_TASKS_URL is required")
		}
	case BackendPostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unsupported STORE_BACKEND %q", c.Store.Backend)
	}

	if c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MIN must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// Location resolves the configured timezone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		slog.Warn("unknown APP_TIMEZONE, falling back to UTC", "timezone", c.App.Timezone, "error", err)
		return time.UTC
	}
	return loc
}

// SlogLevel maps LOG_LEVEL onto a slog level
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

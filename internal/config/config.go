package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

type Config struct {
	App      AppConfig
	Source   SourceConfig
	Database DatabaseConfig
	Cache    CacheConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string   `validate:"required"`
	Version        string   `validate:"required"`
	Port           int      `validate:"min=1,max=65535"`
	Env            string   `validate:"oneof=development staging production test"`
	LogLevel       string   `validate:"oneof=debug info warn warning error"`
	Timezone       string   `validate:"required"`
	AllowedOrigins []string `validate:"min=1,dive,required"`
}

// SourceConfig selects where attendance and employee data come from.
type SourceConfig struct {
	Type       string        `validate:"oneof=http postgres"`
	BaseURL    string        `validate:"required_if=Type http"`
	APITimeout time.Duration `validate:"gt=0"`
}

type DatabaseConfig struct {
	Host     string
	Port     int `validate:"min=1,max=65535"`
	User     string
	Password string
	Name     string
	SSLMode  string `validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns int32  `validate:"min=0"`
	MinConns int32  `validate:"min=0"`
}

// CacheConfig controls the month view cache. A zero TTL disables caching.
type CacheConfig struct {
	TTL           time.Duration `validate:"min=0"`
	PruneInterval time.Duration `validate:"gt=0"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	} else if err != nil {
		slog.Debug("No .env file found, using process environment")
	}

	config := &Config{}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "hrms-lite"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Timezone:       getEnv("APP_TIMEZONE", "Local"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
	}

	// Source configuration
	apiTimeout, err := time.ParseDuration(getEnv("HRMS_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HRMS_API_TIMEOUT: %w", err)
	}

	config.Source = SourceConfig{
		Type:       strings.ToLower(getEnv("SOURCE_TYPE", SourceHTTP)),
		BaseURL:    getEnv("HRMS_API_BASE_URL", "http://localhost:8000"),
		APITimeout: apiTimeout,
	}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.ParseInt(getEnv("DB_MAX_CONNS", "0"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.ParseInt(getEnv("DB_MIN_CONNS", "0"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hrms_lite"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	// Cache configuration
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}
	pruneInterval, err := time.ParseDuration(getEnv("CACHE_PRUNE_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_PRUNE_INTERVAL: %w", err)
	}

	config.Cache = CacheConfig{
		TTL:           cacheTTL,
		PruneInterval: pruneInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

var structValidator = playground.New(playground.WithRequiredStructEnabled())

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := structValidator.Struct(c); err != nil {
		var fieldErrs playground.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return errors.New(strings.Join(msgs, "; "))
		}
		return err
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	if c.Source.Type == SourcePostgres && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required when SOURCE_TYPE is postgres")
	}
	return nil
}

// Location resolves the calendar time zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.App.Timezone)
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback []string) []string {
	value := getEnv(env, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

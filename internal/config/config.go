package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Logging  LoggingConfig
	Alerts   AlertsConfig
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	RateLimit       float64
	RateBurst       int
	Environment     string
}

// SessionConfig contains session storage and cookie configuration
type SessionConfig struct {
	Driver     string // memory, redis or sqlite
	Cookie     string
	Lifetime   time.Duration
	Secret     string
	Secure     bool
	GCInterval time.Duration
	GCSchedule string // cron expression, takes precedence over GCInterval
}

// DatabaseConfig contains the SQLite session database location
type DatabaseConfig struct {
	Path string
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string
	Format     string // json or console
	OutputPath string
}

// AlertsConfig contains alert rendering and session key configuration
type AlertsConfig struct {
	Renderer     string
	Tags         []string
	Key          string
	Translations string
	Locale       string
	BaseURL      string
}

var (
	sessionDrivers = map[string]bool{"memory": true, "redis": true, "sqlite": true}
	renderers      = map[string]bool{"bootstrap": true, "tailwind": true}
)

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors as it's optional)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
			AllowedOrigins:  getEnvAsList("SERVER_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
			RateLimit:       getEnvAsFloat("SERVER_RATE_LIMIT", 20),
			RateBurst:       getEnvAsInt("SERVER_RATE_BURST", 40),
			Environment:     getEnv("ENVIRONMENT", "development"),
		},
		Session: SessionConfig{
			Driver:     getEnv("SESSION_DRIVER", "memory"),
			Cookie:     getEnv("SESSION_COOKIE", "flashalerts_session"),
			Lifetime:   getEnvAsDuration("SESSION_LIFETIME", 2*time.Hour),
			Secret:     getEnv("SESSION_SECRET", ""),
			Secure:     getEnvAsBool("SESSION_SECURE", false),
			GCInterval: getEnvAsDuration("SESSION_GC_INTERVAL", 10*time.Minute),
			GCSchedule: getEnv("SESSION_GC_SCHEDULE", ""),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./sessions.db"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "flashalerts:session:"),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "json"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
		Alerts: AlertsConfig{
			Renderer:     getEnv("ALERTS_RENDERER", "bootstrap"),
			Tags:         getEnvAsList("ALERTS_TAGS", []string{"default"}),
			Key:          getEnv("ALERTS_KEY", "_alerts"),
			Translations: getEnv("ALERTS_TRANSLATIONS", ""),
			Locale:       getEnv("ALERTS_LOCALE", "en"),
			BaseURL:      getEnv("ALERTS_BASE_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET must be set")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if !sessionDrivers[c.Session.Driver] {
		return fmt.Errorf("unsupported session driver: %s", c.Session.Driver)
	}

	if !renderers[c.Alerts.Renderer] {
		return fmt.Errorf("unsupported alerts renderer: %s", c.Alerts.Renderer)
	}

	if c.Alerts.Key == "" {
		return fmt.Errorf("ALERTS_KEY must not be empty")
	}

	if c.Alerts.BaseURL != "" {
		if _, err := url.Parse(c.Alerts.BaseURL); err != nil {
			return fmt.Errorf("invalid ALERTS_BASE_URL: %w", err)
		}
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Upload limits for spreadsheet ingestion
	Upload UploadConfig

	// Rate limiting configuration
	RateLimit RateLimitConfig

	// CORS configuration
	CORS CORSConfig

	// WebSocket configuration
	WebSocket WebSocketConfig

	// Analytics defaults applied until a user changes them
	Analytics AnalyticsConfig

	// Logging configuration
	Logging LoggingConfig

	// Application metadata
	App AppConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// UploadConfig holds spreadsheet upload limits
type UploadConfig struct {
	MaxBytes int64
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	UploadRPS         float64 // Stricter limit for spreadsheet uploads
	UploadBurst       int
}

// CORSConfig holds cross-origin configuration for the REST API
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         int
}

// WebSocketConfig holds WebSocket configuration
type WebSocketConfig struct {
	AllowedOrigins  []string
	ReadBufferSize  int
	WriteBufferSize int
}

// AnalyticsConfig holds the defaults the dashboard starts with. Dates use
// the YYYY-MM-DD form and are parsed during Load.
type AnalyticsConfig struct {
	DefaultStartDate   time.Time
	DefaultEndDate     time.Time
	DefaultSalaryL1    float64
	DefaultSalaryL2    float64
	DefaultSalaryL3    float64
	DefaultGrowthPct   float64
	CapacityPerAnalyst int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	startDate, err := getDateOrDefault("ANALYTICS_DEFAULT_START_DATE", time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}
	endDate, err := getDateOrDefault("ANALYTICS_DEFAULT_END_DATE", time.Date(2025, time.April, 17, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnvOrDefault("SERVER_PORT", ":8080"),
			ReadTimeout:     getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationOrDefault("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationOrDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Upload: UploadConfig{
			MaxBytes: getInt64OrDefault("UPLOAD_MAX_BYTES", 20<<20),
		},
		RateLimit: RateLimitConfig{
			Enabled:           getBoolOrDefault("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getFloatOrDefault("RATE_LIMIT_RPS", 10),
			BurstSize:         getIntOrDefault("RATE_LIMIT_BURST", 20),
			UploadRPS:         getFloatOrDefault("RATE_LIMIT_UPLOAD_RPS", 0.5),
			UploadBurst:       getIntOrDefault("RATE_LIMIT_UPLOAD_BURST", 3),
		},
		CORS: CORSConfig{
			AllowedOrigins: getStringSliceOrDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			MaxAge:         getIntOrDefault("CORS_MAX_AGE", 300),
		},
		WebSocket: WebSocketConfig{
			AllowedOrigins:  getStringSliceOrDefault("WS_ALLOWED_ORIGINS", []string{}),
			ReadBufferSize:  getIntOrDefault("WS_READ_BUFFER_SIZE", 1024),
			WriteBufferSize: getIntOrDefault("WS_WRITE_BUFFER_SIZE", 1024),
		},
		Analytics: AnalyticsConfig{
			DefaultStartDate:   startDate,
			DefaultEndDate:     endDate,
			DefaultSalaryL1:    getFloatOrDefault("ANALYTICS_DEFAULT_SALARY_L1", 3000),
			DefaultSalaryL2:    getFloatOrDefault("ANALYTICS_DEFAULT_SALARY_L2", 4500),
			DefaultSalaryL3:    getFloatOrDefault("ANALYTICS_DEFAULT_SALARY_L3", 6000),
			DefaultGrowthPct:   getFloatOrDefault("ANALYTICS_DEFAULT_GROWTH_PCT", 10),
			CapacityPerAnalyst: getIntOrDefault("ANALYTICS_CAPACITY_PER_ANALYST", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
		App: AppConfig{
			Name:        getEnvOrDefault("APP_NAME", "ticket-analytics"),
			Version:     getEnvOrDefault("APP_VERSION", "dev"),
			Environment: getEnvOrDefault("APP_ENV", "development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []string

	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, "UPLOAD_MAX_BYTES must be positive")
	}

	if c.Analytics.CapacityPerAnalyst <= 0 {
		errs = append(errs, "ANALYTICS_CAPACITY_PER_ANALYST must be positive")
	}

	if c.Analytics.DefaultSalaryL1 < 0 || c.Analytics.DefaultSalaryL2 < 0 || c.Analytics.DefaultSalaryL3 < 0 {
		errs = append(errs, "default salaries cannot be negative")
	}

	if c.App.Environment == "production" {
		if len(c.WebSocket.AllowedOrigins) == 0 {
			errs = append(errs, "WS_ALLOWED_ORIGINS must be set in production")
		}
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getDateOrDefault(key string, defaultValue time.Time) (time.Time, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: expected YYYY-MM-DD, got %q", key, value)
	}
	return parsed, nil
}

func getStringSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// String returns a string representation of the config (safe for logging)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Server: %s, UploadMaxBytes: %d, RateLimit: %v, Environment: %s}",
		c.Server.Port,
		c.Upload.MaxBytes,
		c.RateLimit.Enabled,
		c.App.Environment,
	)
}

// Package config provides application configuration loaded from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Port      string
	LogLevel  string
	LogFormat string

	// FeedbackFile is the CSV corpus, read on every request that needs it.
	FeedbackFile string

	// OpenAIAPIKey gates the summary rewrite; empty disables it.
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	RewriteModel   string
	RewriteTimeout time.Duration
	// RewriteRateLimit is the sustained rewrite calls per second.
	RewriteRateLimit float64

	MaxRequestBodyBytes int64

	// OtelMetricsExporter is "" (disabled) or "prometheus".
	OtelMetricsExporter string
	// OtelTracesExporter is "" (disabled), "otlp" or "stdout".
	OtelTracesExporter string

	ShutdownTimeout time.Duration
}

// RewriteEnabled reports whether a language model credential is configured.
func (c *Config) RewriteEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt64 retrieves an environment variable as an int64 or returns a default value.
func getEnvAsInt64(key string, defaultValue int64) (int64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// getEnvAsFloat retrieves an environment variable as a float64 or returns a default value.
func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}

// getEnvAsDuration retrieves an environment variable as a time.Duration or returns a default value.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration (e.g. 10s): %w", key, err)
	}
	return value, nil
}

// Load reads configuration from environment variables and returns a Config struct.
// It automatically loads .env file if it exists.
// Returns default values for any missing environment variables.
// OPENAI_API_KEY is optional; without it summaries are never rewritten.
func Load() (*Config, error) {
	// Load .env file if it exists. Skip logging when absent (e.g. env from secrets/parameter store).
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	rewriteTimeout, err := getEnvAsDuration("REWRITE_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	if rewriteTimeout <= 0 {
		return nil, errors.New("REWRITE_TIMEOUT must be positive")
	}

	rewriteRateLimit, err := getEnvAsFloat("REWRITE_RATE_LIMIT", 5)
	if err != nil {
		return nil, err
	}
	if rewriteRateLimit <= 0 {
		return nil, errors.New("REWRITE_RATE_LIMIT must be positive")
	}

	maxBodyBytes, err := getEnvAsInt64("MAX_REQUEST_BODY_BYTES", 1<<20)
	if err != nil {
		return nil, err
	}

	shutdownTimeout, err := getEnvAsDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	if shutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}

	cfg := &Config{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		FeedbackFile: getEnv("FEEDBACK_FILE", "data/feedback_raw.csv"),

		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		RewriteModel:     getEnv("REWRITE_MODEL", "gpt-4o-mini"),
		RewriteTimeout:   rewriteTimeout,
		RewriteRateLimit: rewriteRateLimit,

		MaxRequestBodyBytes: maxBodyBytes,

		OtelMetricsExporter: os.Getenv("OTEL_METRICS_EXPORTER"),
		OtelTracesExporter:  os.Getenv("OTEL_TRACES_EXPORTER"),

		ShutdownTimeout: shutdownTimeout,
	}

	return cfg, nil
}

package config

import (
	"os"
	"strconv"
	"time"

	"gotips/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Session   SessionConfig
	Dashboard DashboardConfig
	LogLevel  string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// SessionConfig controls the per-visitor filter selection store
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

// DashboardConfig holds presentation knobs for the aggregate battery
type DashboardConfig struct {
	TopN          int
	HistogramBins int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    *loadServerConfig(),
		Session:   *loadSessionConfig(),
		Dashboard: *loadDashboardConfig(),
		LogLevel:  getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadSessionConfig() *SessionConfig {
	return &SessionConfig{
		CookieName: getEnvOrDefault("SESSION_COOKIE", "gotips_session"),
		TTL:        getEnvDurationOrDefault("SESSION_TTL", 12*time.Hour),
	}
}

func loadDashboardConfig() *DashboardConfig {
	return &DashboardConfig{
		TopN:          getEnvIntOrDefault("TOP_N", 10),
		HistogramBins: getEnvIntOrDefault("HISTOGRAM_BINS", 20),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric")
	}
	switch config.Server.GinMode {
	case "debug", "release", "test":
	default:
		return errors.ConfigInvalid("GIN_MODE must be debug, release or test")
	}
	if config.Session.CookieName == "" {
		return errors.ConfigInvalid("session cookie name is required")
	}
	if config.Session.TTL <= 0 {
		return errors.ConfigInvalid("SESSION_TTL must be positive")
	}
	if config.Dashboard.TopN <= 0 {
		return errors.ConfigInvalid("TOP_N must be positive")
	}
	if config.Dashboard.HistogramBins <= 0 {
		return errors.ConfigInvalid("HISTOGRAM_BINS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the storefront gateway
type Config struct {
	Environment string
	Port        string

	// Remote escrow backend
	BackendAPIURL  string
	RequestTimeout time.Duration

	// Outbound rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Session storage
	SessionDB     string
	SessionCookie string

	// Escrow status watcher
	WatchInterval time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "3000"),

		BackendAPIURL:  getEnv("BACKEND_API_URL", "http://localhost:8000/api"),
		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),

		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 100),

		SessionDB:     getEnv("SESSION_DB", "sessions.db"),
		SessionCookie: getEnv("SESSION_COOKIE", "escrowmart_session"),

		WatchInterval: getEnvAsDuration("WATCH_INTERVAL", 10*time.Second),
	}
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BackendAPIURL == "" {
		return fmt.Errorf("backend API URL is required")
	}
	if c.SessionDB == "" {
		return fmt.Errorf("session database path is required")
	}
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}

	// Validate environment values
	validEnvs := map[string]bool{
		"development": true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s", c.Environment)
	}

	return nil
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Environment: %s, Port: %s, BackendAPIURL: %s}",
		c.Environment, c.Port, c.BackendAPIURL)
}

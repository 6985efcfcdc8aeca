package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort     int
	APIBaseURL     string
	WSURL          string
	SessionDBPath  string // Backing file for the persisted token/user pair
	LogLevel       string
	PollInterval   time.Duration
	ReconnectDelay time.Duration
	AllowedOrigins []string

	// Optional third-party keys. Each integration is a no-op when its key is empty.
	AnalyticsKey   string
	FeatureFlagKey string
	PaymentKey     string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	pollInterval, err := getEnvDuration("POLL_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	reconnectDelay, err := getEnvDuration("WS_RECONNECT_DELAY", 3*time.Second)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:     port,
		APIBaseURL:     strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:3001/api"), "/"),
		WSURL:          getEnv("WS_URL", "ws://localhost:3001/ws"),
		SessionDBPath:  getEnv("SESSION_DB_PATH", "./auctionlab.db"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		PollInterval:   pollInterval,
		ReconnectDelay: reconnectDelay,
		AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		AnalyticsKey:   getEnv("ANALYTICS_KEY", ""),
		FeatureFlagKey: getEnv("FEATURE_FLAG_KEY", ""),
		PaymentKey:     getEnv("PAYMENT_KEY", ""),
	}, nil
}

// Integrations reports which optional integrations are enabled.
func (c *Config) Integrations() map[string]bool {
	return map[string]bool{
		"analytics":     c.AnalyticsKey != "",
		"feature_flags": c.FeatureFlagKey != "",
		"payments":      c.PaymentKey != "",
	}
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, value)
	}
	return d, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Metrics
	MetricsNamespace string

	// Simulator
	FlightTickInterval time.Duration
	SimulatorSeed      uint64

	// Polling
	FlightPollInterval       time.Duration
	NotificationPollInterval time.Duration
	WatchFlight              string

	// Data
	SeedFile            string
	MonthlyAllowanceINR int64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MetricsNamespace: getEnv("METRICS_NAMESPACE", "crewlink"),

		FlightTickInterval: time.Duration(getEnvAsInt("FLIGHT_TICK_INTERVAL", 10)) * time.Second,
		SimulatorSeed:      uint64(getEnvAsInt64("SIMULATOR_SEED", 0)),

		FlightPollInterval:       time.Duration(getEnvAsInt("FLIGHT_POLL_INTERVAL", 5)) * time.Second,
		NotificationPollInterval: time.Duration(getEnvAsInt("NOTIFICATION_POLL_INTERVAL", 1)) * time.Second,
		WatchFlight:              getEnv("WATCH_FLIGHT", "DL287"),

		SeedFile:            getEnv("SEED_FILE", ""),
		MonthlyAllowanceINR: getEnvAsInt64("MONTHLY_ALLOWANCE_INR", 50000),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	intervals := map[string]time.Duration{
		"FLIGHT_TICK_INTERVAL":       c.FlightTickInterval,
		"FLIGHT_POLL_INTERVAL":       c.FlightPollInterval,
		"NOTIFICATION_POLL_INTERVAL": c.NotificationPollInterval,
	}
	for key, d := range intervals {
		if d <= 0 {
			return fmt.Errorf("invalid config: %s must be positive, got %s", key, d)
		}
	}
	if c.MonthlyAllowanceINR < 0 {
		return fmt.Errorf("invalid config: MONTHLY_ALLOWANCE_INR must not be negative")
	}
	return nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

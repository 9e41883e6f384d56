package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	Redis   RedisConfig
	Planner PlannerConfig
}

// RedisConfig holds Redis-specific configuration. An empty URL and Addr
// means documents are kept in memory only.
type RedisConfig struct {
	URL      string // takes precedence when set, parsed by redis.ParseURL
	Addr     string
	Password string
	DB       int
}

// PlannerConfig holds planner application configuration
type PlannerConfig struct {
	// HistoryCapacity bounds the event bus publish history
	HistoryCapacity int

	// AutosaveEnabled wires the persistence listener to mutation events
	AutosaveEnabled bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Redis: RedisConfig{
			URL:      os.Getenv("REDIS_URL"),
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
		},
		Planner: PlannerConfig{
			HistoryCapacity: getEnvAsIntOrDefault("DAYBOOK_HISTORY_CAPACITY", 100),
			AutosaveEnabled: getEnvAsBoolOrDefault("DAYBOOK_AUTOSAVE", true),
		},
	}

	if cfg.Planner.HistoryCapacity < 0 {
		return nil, fmt.Errorf("DAYBOOK_HISTORY_CAPACITY cannot be negative: %d", cfg.Planner.HistoryCapacity)
	}

	return cfg, nil
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

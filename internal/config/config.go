// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir               string // Base directory for the snapshot database (always absolute)
	Port                  int
	LogLevel              string
	DevMode               bool
	SnapshotRetentionDays int   // Snapshots older than this are pruned by the retention job
	CacheMaxEntries       int64 // Upper bound on memoized analyses
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Data directory: HEDGEWISE_DATA_DIR, defaulting to ./data, always
	// resolved to an absolute path and created up front.
	dataDir := getEnv("HEDGEWISE_DATA_DIR", "data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:               absDataDir,
		Port:                  getEnvAsInt("HEDGEWISE_PORT", 8080),
		LogLevel:              getEnv("HEDGEWISE_LOG_LEVEL", "info"),
		DevMode:               getEnvAsBool("HEDGEWISE_DEV_MODE", false),
		SnapshotRetentionDays: getEnvAsInt("HEDGEWISE_SNAPSHOT_RETENTION_DAYS", 90),
		CacheMaxEntries:       int64(getEnvAsInt("HEDGEWISE_CACHE_MAX_ENTRIES", 512)),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.SnapshotRetentionDays <= 0 {
		return fmt.Errorf("snapshot retention must be positive, got %d days", c.SnapshotRetentionDays)
	}
	if c.CacheMaxEntries <= 0 {
		return fmt.Errorf("cache max entries must be positive, got %d", c.CacheMaxEntries)
	}
	return nil
}

// SnapshotDBPath returns the snapshot database location under DataDir
func (c *Config) SnapshotDBPath() string {
	return filepath.Join(c.DataDir, "snapshots.db")
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
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

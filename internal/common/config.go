// Package common provides shared utilities for KI7MT PV Lab applications.
package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds common configuration for all applications.
type Config struct {
	ClickHouseHost     string
	ClickHousePort     int
	ClickHouseDatabase string
	ClickHouseTable    string
	ClickHouseUser     string
	ClickHousePassword string
	DataDir            string
	LogLevel           string
	ChartWidth         int
	ChartHeight        int
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ClickHouseHost:     getEnv("CLICKHOUSE_HOST", "localhost"),
		ClickHousePort:     getEnvInt("CLICKHOUSE_PORT", 9000),
		ClickHouseDatabase: getEnv("CLICKHOUSE_DATABASE", "pv"),
		ClickHouseTable:    getEnv("CLICKHOUSE_TABLE", "measurements"),
		ClickHouseUser:     getEnv("CLICKHOUSE_USER", "default"),
		ClickHousePassword: getEnv("CLICKHOUSE_PASSWORD", ""),
		DataDir:            getEnv("KI7MT_DATA_DIR", "/var/lib/ki7mt-pv-lab"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		ChartWidth:         getEnvInt("PV_CHART_WIDTH", 1200),
		ChartHeight:        getEnvInt("PV_CHART_HEIGHT", 800),
	}
}

// LoadConfig reads an optional env file before building the defaults.
// A missing file is not an error; an empty envFile tries ./.env.
func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}
	return DefaultConfig(), nil
}

// ClickHouseAddr returns host:port for the native protocol.
func (c *Config) ClickHouseAddr() string {
	return fmt.Sprintf("%s:%d", c.ClickHouseHost, c.ClickHousePort)
}

// TableFQN returns database.table.
func (c *Config) TableFQN() string {
	return fmt.Sprintf("%s.%s", c.ClickHouseDatabase, c.ClickHouseTable)
}

// ImportDir returns the raw measurement drop directory.
func (c *Config) ImportDir() string {
	return filepath.Join(c.DataDir, "import")
}

// ArchiveDir returns the archive output directory.
func (c *Config) ArchiveDir() string {
	return filepath.Join(c.DataDir, "archive")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

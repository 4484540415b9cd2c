// Package config loads the application settings.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultMaxBodySize  = 10 << 20 // 10MB request bodies
	defaultMaxImageSize = 5 << 20  // 5MB uploaded images
)

// Config holds the application settings.
type Config struct {
	RunAddr      string
	MaxBodySize  int64
	MaxImageSize int64
	LogLevel     string
}

// NewConfig reads settings from the environment, loading an optional .env
// file first.
func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		RunAddr:      getEnv("SERVER_ADDRESS", ":8080"),
		MaxBodySize:  getEnvAsInt64("MAX_BODY_SIZE", defaultMaxBodySize),
		MaxImageSize: getEnvAsInt64("MAX_IMAGE_SIZE", defaultMaxImageSize),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
	if !strings.Contains(cfg.RunAddr, ":") {
		cfg.RunAddr = ":" + cfg.RunAddr
	}
	return cfg
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt64 gets an environment variable as int64 or returns a default value.
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseInt(value, 10, 64); err == nil && v > 0 {
			return v
		}
	}
	return defaultValue
}

// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Recommendation artifacts. Paths may be local files or s3:// URIs.
	IndexPath      string
	CatalogPath    string
	EmbeddingModel string
	DataDir        string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Request handling
	CacheTTL           time.Duration
	RateLimitPerMinute int
	AllowedOrigins     []string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load creates a Config from environment variables, applying defaults and
// validating that the artifact paths are set.
func Load() (*Config, error) {
	cfg := &Config{
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		IndexPath:      os.Getenv("INDEX_PATH"),
		CatalogPath:    os.Getenv("CATALOG_PATH"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "hash-v1/256"),
		DataDir:        getEnv("DATA_DIR", "data"),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
	}

	cfg.RedisDB = getEnvInt("REDIS_DB", 0)
	cfg.CacheTTL = time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second
	cfg.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", 60)

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.IndexPath == "" {
		return fmt.Errorf("INDEX_PATH is required")
	}
	if cfg.CatalogPath == "" {
		return fmt.Errorf("CATALOG_PATH is required")
	}
	if cfg.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

// RedisAddr returns the host:port address of the Redis server.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

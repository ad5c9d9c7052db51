package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type StorageBackend string

const (
	StorageSQLite StorageBackend = "sqlite"
	StorageRedis  StorageBackend = "redis"
	StorageMemory StorageBackend = "memory"
)

type Config struct {
	Backend BackendConfig
	Storage StorageConfig
	Redis   RedisConfig
	Health  HealthConfig
	Logging LoggingConfig
}

type BackendConfig struct {
	URL    string
	Cookie string
}

type StorageConfig struct {
	Backend StorageBackend
	DataDir string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type HealthConfig struct {
	CheckInterval time.Duration
}

type LoggingConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Backend: BackendConfig{
			URL:    getEnv("BACKEND_URL", ""),
			Cookie: getEnv("BACKEND_COOKIE", ""),
		},
		Storage: StorageConfig{
			Backend: StorageBackend(getEnv("STORAGE_BACKEND", string(StorageSQLite))),
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Health: HealthConfig{
			CheckInterval: time.Duration(getEnvInt("HEALTH_CHECK_INTERVAL_SECONDS", 60)) * time.Second,
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return fmt.Errorf("BACKEND_URL is required")
	}
	switch c.Storage.Backend {
	case StorageSQLite, StorageRedis, StorageMemory:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of sqlite, redis, memory (got %q)", c.Storage.Backend)
	}
	if c.Storage.Backend == StorageSQLite && c.Storage.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required for the sqlite storage backend")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

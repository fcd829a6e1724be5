package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backend names accepted in configuration
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

// Config holds application configuration
type Config struct {
	BackendURL     string        `yaml:"backend_url"`
	APIToken       string        `yaml:"api_token"`
	HTTPTimeout    time.Duration `yaml:"http_timeout"`
	StorageBackend string        `yaml:"storage_backend"`
	StoragePath    string        `yaml:"storage_path"`
	RedisURL       string        `yaml:"redis_url"`
	FilterKey      string        `yaml:"filter_key"`
	RollbackDelay  time.Duration `yaml:"rollback_delay"`
	HealthInterval time.Duration `yaml:"health_interval"`
	RetryAttempts  int           `yaml:"retry_attempts"`
	RetryInterval  time.Duration `yaml:"retry_interval"`
	DebugMode      bool          `yaml:"debug_mode"`
}

// Load loads configuration from the optional YAML file at path, with
// environment variables taking precedence. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.BackendURL = getEnv("TASKDECK_BACKEND_URL", cfg.BackendURL)
	cfg.APIToken = getEnv("TASKDECK_API_TOKEN", cfg.APIToken)
	cfg.HTTPTimeout = getEnvDuration("TASKDECK_HTTP_TIMEOUT", cfg.HTTPTimeout)
	cfg.StorageBackend = getEnv("TASKDECK_STORAGE_BACKEND", cfg.StorageBackend)
	cfg.StoragePath = getEnv("TASKDECK_STORAGE_PATH", cfg.StoragePath)
	cfg.RedisURL = getEnv("TASKDECK_REDIS_URL", cfg.RedisURL)
	cfg.FilterKey = getEnv("TASKDECK_FILTER_KEY", cfg.FilterKey)
	cfg.RollbackDelay = getEnvDuration("TASKDECK_ROLLBACK_DELAY", cfg.RollbackDelay)
	cfg.HealthInterval = getEnvDuration("TASKDECK_HEALTH_INTERVAL", cfg.HealthInterval)
	cfg.RetryAttempts = getEnvInt("TASKDECK_RETRY_ATTEMPTS", cfg.RetryAttempts)
	cfg.RetryInterval = getEnvDuration("TASKDECK_RETRY_INTERVAL", cfg.RetryInterval)
	cfg.DebugMode = getEnvBool("TASKDECK_DEBUG", cfg.DebugMode)

	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("TASKDECK_BACKEND_URL is required")
	}

	switch cfg.StorageBackend {
	case StorageMemory, StorageFile, StorageSQLite, StorageRedis:
	default:
		return nil, fmt.Errorf("invalid storage backend %q (must be 'memory', 'file', 'sqlite', or 'redis')", cfg.StorageBackend)
	}

	if cfg.StorageBackend == StorageRedis && cfg.RedisURL == "" {
		return nil, fmt.Errorf("TASKDECK_REDIS_URL is required for the redis storage backend")
	}

	return cfg, nil
}

func defaults() *Config {
	// Without a resolvable home directory, state lands in the working directory
	statePath := filepath.Join(".taskdeck", "state.json")
	if home, err := os.UserHomeDir(); err == nil {
		statePath = filepath.Join(home, ".taskdeck", "state.json")
	}
	return &Config{
		HTTPTimeout:    15 * time.Second,
		StorageBackend: StorageFile,
		StoragePath:    statePath,
		FilterKey:      "taskdeck.filter",
		RollbackDelay:  300 * time.Millisecond,
		HealthInterval: 30 * time.Second,
		RetryAttempts:  3,
		RetryInterval:  500 * time.Millisecond,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

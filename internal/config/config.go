// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage backend names accepted by ACADEMIA_STORAGE.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ListenAddr string `yaml:"listen_addr" env:"ACADEMIA_LISTEN_ADDR" env-default:"127.0.0.1:8080"`
	Storage    string `yaml:"storage" env:"ACADEMIA_STORAGE" env-default:"sqlite"`
	DBPath     string `yaml:"db_path" env:"ACADEMIA_DB_PATH" env-default:"academia.db"`

	RedisAddr     string `yaml:"redis_addr" env:"ACADEMIA_REDIS_ADDR" env-default:"127.0.0.1:6379"`
	RedisPassword string `yaml:"redis_password" env:"ACADEMIA_REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"ACADEMIA_REDIS_DB" env-default:"0"`
	RedisPrefix   string `yaml:"redis_prefix" env:"ACADEMIA_REDIS_PREFIX"`

	// SessionKey signs session tokens. Empty means a random key per process.
	SessionKey string        `yaml:"session_key" env:"ACADEMIA_SESSION_KEY"`
	SessionTTL time.Duration `yaml:"session_ttl" env:"ACADEMIA_SESSION_TTL" env-default:"12h"`

	ProviderMinDelay time.Duration `yaml:"provider_min_delay" env:"ACADEMIA_PROVIDER_MIN_DELAY" env-default:"1s"`
	ProviderMaxDelay time.Duration `yaml:"provider_max_delay" env:"ACADEMIA_PROVIDER_MAX_DELAY" env-default:"3s"`
	TranslationDelay time.Duration `yaml:"translation_delay" env:"ACADEMIA_TRANSLATION_DELAY" env-default:"1500ms"`

	RateLimit float64 `yaml:"rate_limit" env:"ACADEMIA_RATE_LIMIT" env-default:"5"`
	RateBurst int     `yaml:"rate_burst" env:"ACADEMIA_RATE_BURST" env-default:"20"`

	LogLevel string `yaml:"log_level" env:"ACADEMIA_LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from environment variables and returns a validated Config.
// When ACADEMIA_CONFIG_FILE names a YAML file, it is read first and environment
// variables override its values.
func Load() (*Config, error) {
	var cfg Config

	if path, ok := os.LookupEnv("ACADEMIA_CONFIG_FILE"); ok && path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	cfg.Storage = strings.ToLower(strings.TrimSpace(cfg.Storage))

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	switch c.Storage {
	case StorageSQLite, StorageRedis, StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("ACADEMIA_STORAGE must be one of sqlite, redis, memory, got %q", c.Storage))
	}
	if c.Storage == StorageSQLite && c.DBPath == "" {
		errs = append(errs, errors.New("ACADEMIA_DB_PATH is required for sqlite storage"))
	}
	if c.ProviderMinDelay < 0 || c.ProviderMaxDelay < c.ProviderMinDelay {
		errs = append(errs, fmt.Errorf("provider delay range [%s, %s] is invalid", c.ProviderMinDelay, c.ProviderMaxDelay))
	}
	if c.TranslationDelay < 0 {
		errs = append(errs, fmt.Errorf("ACADEMIA_TRANSLATION_DELAY must not be negative, got %s", c.TranslationDelay))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("ACADEMIA_SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		errs = append(errs, fmt.Errorf("rate limit must be positive, got %g req/s burst %d", c.RateLimit, c.RateBurst))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// SlogLevel parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("ACADEMIA_LOG_LEVEL has invalid level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

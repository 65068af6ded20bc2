package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Redis RedisConfig
	Sheet SheetConfig
	Log   LogConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string `env:"REDIS_URL" envDefault:"redis://localhost:6379/0"`
}

// SheetConfig controls which record is tracked and how saves are batched
type SheetConfig struct {
	KeyPrefix    string        `env:"SHEET_KEY_PREFIX" envDefault:"character"`
	ID           string        `env:"SHEET_ID" envDefault:"default"`
	SaveDebounce time.Duration `env:"SHEET_SAVE_DEBOUNCE" envDefault:"150ms"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load reads env files into the environment and parses it. With no files
// given it reads ./.env when present; named files must exist.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values the env tags cannot
func (c *Config) Validate() error {
	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}
	if c.Sheet.ID == "" {
		return fmt.Errorf("SHEET_ID is required")
	}
	if c.Sheet.SaveDebounce <= 0 {
		return fmt.Errorf("SHEET_SAVE_DEBOUNCE must be positive, got %s", c.Sheet.SaveDebounce)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Log.Format)
	}
	return nil
}

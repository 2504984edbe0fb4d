package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML server configuration.
type Config struct {
	Addr     string `yaml:"addr"`
	LogLevel string `yaml:"log_level"`

	// Store selects the snapshot backend: memory, redis, or postgres.
	Store string `yaml:"store"`

	Redis struct {
		Addr     string        `yaml:"addr"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db"`
		Prefix   string        `yaml:"prefix"`
		TTL      time.Duration `yaml:"ttl"`
		// Lock enables distributed locking for multi-replica deployments.
		Lock bool `yaml:"lock"`
	} `yaml:"redis"`

	Postgres struct {
		DSN string `yaml:"dsn"`
	} `yaml:"postgres"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() Config {
	cfg := Config{
		Addr:     ":8080",
		LogLevel: "info",
		Store:    "memory",
	}
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.Prefix = "parcours:flow:"
	return cfg
}

// LoadConfig reads and merges a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

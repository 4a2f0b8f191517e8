// Package config loads runtime configuration for agent hosts from YAML with
// environment variable fallbacks for credentials.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration for one agent host process.
type Config struct {
	// Temporal connection
	Temporal TemporalConfig `yaml:"temporal"`

	// Platform backend (knowledge, document, messaging HTTP APIs)
	Platform PlatformConfig `yaml:"platform"`

	// Redis history store. Leave Addr empty to use the in-memory store.
	Redis RedisConfig `yaml:"redis"`

	// Retry overrides per operation category (knowledge, document,
	// messaging, history). Unset categories use the built-in defaults.
	Retry map[string]RetryConfig `yaml:"retry"`
}

// TemporalConfig holds the orchestration engine connection settings.
type TemporalConfig struct {
	HostPort  string `yaml:"host_port"`
	Namespace string `yaml:"namespace"`
}

// PlatformConfig holds the platform backend transport settings.
type PlatformConfig struct {
	BaseURL    string `yaml:"base_url"`
	AuthToken  string `yaml:"auth_token"`
	MaxRetries int    `yaml:"max_retries"`
}

// RedisConfig holds the Redis history store settings.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

// RetryConfig tunes the orchestrated retry policy of one operation category.
type RetryConfig struct {
	MaxAttempts         int           `yaml:"max_attempts"`
	InitialInterval     time.Duration `yaml:"initial_interval"`
	BackoffCoefficient  float64       `yaml:"backoff_coefficient"`
	MaximumInterval     time.Duration `yaml:"maximum_interval"`
	StartToCloseTimeout time.Duration `yaml:"start_to_close_timeout"`
}

// Load reads and parses the YAML config at path, applies defaults and pulls
// credentials from the environment when not set in the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Temporal.HostPort == "" {
		c.Temporal.HostPort = "localhost:7233"
	}
	if c.Temporal.Namespace == "" {
		c.Temporal.Namespace = "default"
	}
	if c.Platform.MaxRetries == 0 {
		c.Platform.MaxRetries = 3
	}
	if c.Platform.AuthToken == "" {
		c.Platform.AuthToken = os.Getenv("AGENTGRID_PLATFORM_TOKEN")
	}
	if c.Redis.Password == "" {
		c.Redis.Password = os.Getenv("AGENTGRID_REDIS_PASSWORD")
	}
}

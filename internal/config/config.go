// Package config holds the adapter's process configuration: where the
// engine listens and how long to wait for it. The endpoint is always passed
// explicitly to the transport rather than read from module state, so tests
// can swap in a fake without touching globals.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables honored by FromEnv. They take precedence over file
// values so a deployment can point at a different engine without editing
// tallygate.yaml.
const (
	EnvEndpoint = "TALLY_URL"
	EnvTimeout  = "TALLY_TIMEOUT_SECONDS"
)

// Config is the top-level tallygate.yaml configuration.
type Config struct {
	// Endpoint is the engine's XML gateway address.
	Endpoint string `yaml:"endpoint"`
	// TimeoutSeconds bounds one transport round trip.
	TimeoutSeconds int `yaml:"timeout_seconds"`
	// KeywordTable optionally points at a YAML classification keyword
	// table overriding the built-in one.
	KeywordTable string `yaml:"keyword_table,omitempty"`
}

// Timeout returns the round-trip timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default returns the configuration for a locally running engine.
func Default() *Config {
	return &Config{
		Endpoint:       "http://localhost:9000",
		TimeoutSeconds: 30,
	}
}

// Load reads a tallygate.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// FromEnv overlays environment variables onto cfg.
func FromEnv(cfg *Config) error {
	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvTimeout, err)
		}
		cfg.TimeoutSeconds = secs
	}
	return nil
}

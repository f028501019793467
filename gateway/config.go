package gateway

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/coalesced/batchkv/coalesce"
	"github.com/coalesced/batchkv/store"
)

const defaultListen = ":8080"

// Config holds initialization parameters for the gateway and the layers
// beneath it. Each section delegates to that package's config-driven
// constructor.
type Config struct {
	Listen   string          `json:"listen,omitempty"`
	Coalesce coalesce.Config `json:"coalesce"`
	Store    store.Config    `json:"store"`
}

// DefaultConfig returns a Config with sensible defaults for all layers.
func DefaultConfig() Config {
	return Config{
		Listen:   defaultListen,
		Coalesce: coalesce.DefaultConfig(),
		Store:    store.DefaultConfig(),
	}
}

// Merge applies non-zero values from source into c, delegating to each
// layer's Merge method.
func (c *Config) Merge(source *Config) {
	c.Coalesce.Merge(&source.Coalesce)
	c.Store.Merge(&source.Store)

	if source.Listen != "" {
		c.Listen = source.Listen
	}
}

// LoadConfig reads a JSON config file, merges it with defaults, and returns
// the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

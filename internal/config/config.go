// Package config holds the per-tool profiles that select the dedicated
// serializers for a simulation backend.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete tool configuration.
type Config struct {
	DefaultTool string                 `yaml:"default_tool"`
	Tools       map[string]ToolProfile `yaml:"tools"`
}

// ToolProfile configures script generation for one simulation tool key.
type ToolProfile struct {
	// BoundariesTopLevel selects whether the boundary list is also written
	// as a top-level "Boundaries = [...]" assignment (OpenEMS-style
	// scripts) in addition to the dict-style assignment.
	BoundariesTopLevel bool `yaml:"boundaries_top_level"`

	// KeywordsFile points to the fallback keyword description file.
	KeywordsFile string `yaml:"keywords_file,omitempty"`

	// ExcludedKeys extends the built-in set of keys that bypass the
	// generic settings writer.
	ExcludedKeys []string `yaml:"excluded_keys,omitempty"`
}

// Default returns the built-in configuration used when no config file is
// given.
func Default() *Config {
	return &Config{
		DefaultTool: "openems",
		Tools: map[string]ToolProfile{
			"openems": {
				BoundariesTopLevel: true,
				KeywordsFile:       "keywords/openems.csv",
			},
			"palace": {
				BoundariesTopLevel: false,
				KeywordsFile:       "keywords/palace.csv",
			},
		},
	}
}

// Load reads and parses a config file. An empty path yields the built-in
// defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration for required fields and consistency.
func (c *Config) Validate() error {
	if len(c.Tools) == 0 {
		return fmt.Errorf("tools section is required")
	}
	if c.DefaultTool == "" {
		return fmt.Errorf("default_tool is required")
	}
	if _, ok := c.Tools[strings.ToLower(c.DefaultTool)]; !ok {
		return fmt.Errorf("default_tool %q has no profile in tools", c.DefaultTool)
	}
	return nil
}

// Profile returns the profile for a tool key, falling back to the default
// tool when the key is empty. Lookup is case-insensitive.
func (c *Config) Profile(tool string) (ToolProfile, error) {
	if tool == "" {
		tool = c.DefaultTool
	}
	p, ok := c.Tools[strings.ToLower(tool)]
	if !ok {
		return ToolProfile{}, fmt.Errorf("unknown simulation tool %q", tool)
	}
	return p, nil
}

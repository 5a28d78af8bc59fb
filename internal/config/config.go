// Package config loads pyrite project configuration. A pyrite.json in
// the project root controls diagnostic filtering and can pin the tool
// version range the project expects.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	semver "github.com/Masterminds/semver/v3"

	"github.com/pyrite-dev/pyrite/internal/diagnostic"
)

// DefaultFilename is the config file looked up when none is given.
const DefaultFilename = "pyrite.json"

// Config is the on-disk project configuration.
type Config struct {
	Verbose          bool     `json:"verbose"`
	WarningsAsErrors bool     `json:"warnings_as_errors"`
	IgnoreCodes      []string `json:"ignore_codes,omitempty"`
	MaxErrors        int      `json:"max_errors,omitempty"`
	// Requires is a semver constraint the running tool version must
	// satisfy, e.g. ">=0.2.0, <1.0.0". Empty accepts any version.
	Requires string `json:"requires,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{}
}

// Load reads configuration from path. A missing file is not an error:
// defaults are returned, matching tools that treat the config file as
// optional.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultFilename
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// CheckToolVersion verifies that version satisfies the Requires
// constraint. An empty constraint always passes.
func (c *Config) CheckToolVersion(version string) error {
	if c.Requires == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(c.Requires)
	if err != nil {
		return fmt.Errorf("invalid requires constraint %q: %w", c.Requires, err)
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid tool version %q: %w", version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("pyrite %s does not satisfy project requirement %q", version, c.Requires)
	}
	return nil
}

// DiagnosticConfig translates the project config into engine settings.
func (c *Config) DiagnosticConfig() diagnostic.Config {
	return diagnostic.Config{
		IgnoreCodes:      c.IgnoreCodes,
		MaxErrors:        c.MaxErrors,
		WarningsAsErrors: c.WarningsAsErrors,
	}
}

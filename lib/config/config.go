// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/nikstur/bootspec-1/lib/bootspec"
	"github.com/nikstur/bootspec-1/lib/nix"
)

// EnvironmentVariable names the environment variable [Load] reads the
// config file path from.
const EnvironmentVariable = "BOOTSPEC_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production image builds.
	Staging Environment = "staging"
	// Production is for installers running on real machines.
	Production Environment = "production"
)

// Config is the master configuration for the bootspec tool.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Policy configures the deployment rules applied by "validate".
	Policy PolicyConfig `yaml:"policy"`

	// Log configures structured logging.
	Log LogConfig `yaml:"log"`

	// Per-environment overrides, applied after the base config is loaded.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Policy *PolicyConfig `yaml:"policy,omitempty"`
	Log    *LogConfig    `yaml:"log,omitempty"`
}

// PolicyConfig configures bootspec deployment rules.
type PolicyConfig struct {
	// StoreDir is the Nix store root.
	// Default: /nix/store
	StoreDir string `yaml:"store_dir"`

	// RequireStorePaths requires every bootspec path to lie in a
	// store entry under StoreDir.
	// Default: false (development), true (production)
	RequireStorePaths bool `yaml:"require_store_paths"`

	// Systems lists the accepted Nix system doubles. Empty accepts
	// any system.
	Systems []string `yaml:"systems"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the default configuration. These defaults are used
// as a base before loading the config file.
func Default() *Config {
	return &Config{
		Environment: Development,
		Policy: PolicyConfig{
			StoreDir: nix.DefaultStoreDir,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by BOOTSPEC_CONFIG.
// Fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your bootspec.yaml config file, or use --config flag", EnvironmentVariable)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The only
// expansion performed is ${VAR} substitution in policy.store_dir.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()

	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the environment-specific overrides.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		// Production defaults: bootspecs must point into the store.
		if overrides == nil {
			overrides = &ConfigOverrides{
				Policy: &PolicyConfig{RequireStorePaths: true},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Policy != nil {
		if overrides.Policy.StoreDir != "" {
			c.Policy.StoreDir = overrides.Policy.StoreDir
		}
		// RequireStorePaths is a bool, so we always apply it from overrides.
		c.Policy.RequireStorePaths = overrides.Policy.RequireStorePaths
		if len(overrides.Policy.Systems) > 0 {
			c.Policy.Systems = overrides.Policy.Systems
		}
	}

	if overrides.Log != nil && overrides.Log.Level != "" {
		c.Log.Level = overrides.Log.Level
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Policy.StoreDir = expandVars(c.Policy.StoreDir, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		// Check provided vars first, then environment.
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// logLevels maps config level names to slog levels.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if c.Policy.StoreDir == "" {
		errs = append(errs, fmt.Errorf("policy.store_dir is required"))
	} else if c.Policy.StoreDir[0] != '/' {
		errs = append(errs, fmt.Errorf("policy.store_dir must be an absolute path, got %q", c.Policy.StoreDir))
	}

	if slices.Contains(c.Policy.Systems, "") {
		errs = append(errs, fmt.Errorf("policy.systems must not contain empty entries"))
	}

	if _, ok := logLevels[c.Log.Level]; !ok {
		errs = append(errs, fmt.Errorf("log.level must be one of: debug, info, warn, error (got %q)", c.Log.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// LogLevel returns the configured slog level, or slog.LevelInfo for an
// unrecognized name.
func (c *Config) LogLevel() slog.Level {
	if level, ok := logLevels[c.Log.Level]; ok {
		return level
	}
	return slog.LevelInfo
}

// BootspecPolicy converts the policy section into a bootspec.Policy.
func (c *Config) BootspecPolicy() bootspec.Policy {
	return bootspec.Policy{
		StoreDir:          c.Policy.StoreDir,
		RequireStorePaths: c.Policy.RequireStorePaths,
		Systems:           slices.Clone(c.Policy.Systems),
	}
}

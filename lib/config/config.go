// Copyright 2026 The Agentgate Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for the agentgate CLI.
type Config struct {
	// Paths configures file and directory locations.
	Paths PathsConfig `yaml:"paths"`

	// Gateway configures how the managed gateway service is addressed.
	Gateway GatewayConfig `yaml:"gateway"`

	// Health configures the restart verification loop.
	Health HealthConfig `yaml:"health"`

	// Catalog configures the remote provider catalog lookup.
	Catalog CatalogConfig `yaml:"catalog"`

	// Validation configures model validation behavior.
	Validation ValidationConfig `yaml:"validation"`
}

// PathsConfig configures file and directory locations.
type PathsConfig struct {
	// GatewayConfig is the gateway's live configuration document.
	GatewayConfig string `yaml:"gateway_config"`

	// Backups is the directory that receives pre-switch backups.
	Backups string `yaml:"backups"`

	// Registry is the model registry document.
	Registry string `yaml:"registry"`

	// AliasOverrides is the flat alias → canonical id override document.
	// Optional; resolution works from the registry alone when absent.
	AliasOverrides string `yaml:"alias_overrides"`

	// LogDir is where the gateway writes its day-stamped log files.
	LogDir string `yaml:"log_dir"`

	// Policy is the authorization allow-list document. Optional; when
	// empty, mutating commands are refused for every identity.
	Policy string `yaml:"policy"`
}

// GatewayConfig configures how the managed gateway service is addressed.
type GatewayConfig struct {
	// Unit is the systemd unit name of the gateway service.
	Unit string `yaml:"unit"`

	// UserScope selects systemctl --user rather than the system manager.
	UserScope bool `yaml:"user_scope"`

	// DefaultModel is the model id that `agentgate model reset`
	// switches back to.
	DefaultModel string `yaml:"default_model"`
}

// HealthConfig configures the restart verification loop. Durations are
// strings in time.ParseDuration syntax ("2s", "22s").
type HealthConfig struct {
	// PollInterval is the sleep between log inspections.
	PollInterval string `yaml:"poll_interval"`

	// Deadline bounds the whole verification loop.
	Deadline string `yaml:"deadline"`

	// SettleDelay is the pause after a rollback restart before the
	// command reports, giving the gateway time to come up.
	SettleDelay string `yaml:"settle_delay"`
}

// CatalogConfig configures the remote provider catalog lookup.
type CatalogConfig struct {
	// BaseURL is the catalog API root (OpenRouter-compatible).
	BaseURL string `yaml:"base_url"`

	// Timeout is the string-form bound on a single catalog query.
	Timeout string `yaml:"timeout"`
}

// ValidationConfig configures model validation behavior.
type ValidationConfig struct {
	// DefaultMode is used when --validate is not given: "local",
	// "remote", or "none".
	DefaultMode string `yaml:"default_mode"`
}

// Default returns the built-in configuration. A fresh installation
// runs entirely on these values.
func Default() *Config {
	homeDirectory, _ := os.UserHomeDir()
	root := filepath.Join(homeDirectory, ".agentgate")

	return &Config{
		Paths: PathsConfig{
			GatewayConfig:  filepath.Join(root, "agentgate.json"),
			Backups:        filepath.Join(root, "backups"),
			Registry:       filepath.Join(root, "models.json"),
			AliasOverrides: filepath.Join(root, "model-aliases.json"),
			LogDir:         "/tmp/agentgate",
			Policy:         filepath.Join(root, "policy.yaml"),
		},
		Gateway: GatewayConfig{
			Unit:         "agentgate-gateway",
			UserScope:    true,
			DefaultModel: "anthropic/claude-sonnet-4-6",
		},
		Health: HealthConfig{
			PollInterval: "2s",
			Deadline:     "22s",
			SettleDelay:  "3s",
		},
		Catalog: CatalogConfig{
			BaseURL: "https://openrouter.ai/api/v1",
			Timeout: "20s",
		},
		Validation: ValidationConfig{
			DefaultMode: "local",
		},
	}
}

// Load resolves the configuration for a command invocation. flagPath
// (from --config) wins over AGENTGATE_CONFIG, which wins over the
// default location. A missing file at the default location is not an
// error — the defaults apply. A missing file at an explicitly
// requested location is.
func Load(flagPath string) (*Config, error) {
	path := flagPath
	explicit := path != ""
	if path == "" {
		path = os.Getenv("AGENTGATE_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		homeDirectory, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDirectory, ".agentgate", "config.yaml")
		}
	}

	configuration := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, configuration); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// Default location absent: run on defaults.
		default:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	configuration.expandVariables()

	if err := configuration.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return configuration, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	variables := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Paths.GatewayConfig = expandVars(c.Paths.GatewayConfig, variables)
	c.Paths.Backups = expandVars(c.Paths.Backups, variables)
	c.Paths.Registry = expandVars(c.Paths.Registry, variables)
	c.Paths.AliasOverrides = expandVars(c.Paths.AliasOverrides, variables)
	c.Paths.LogDir = expandVars(c.Paths.LogDir, variables)
	c.Paths.Policy = expandVars(c.Paths.Policy, variables)
}

// expandVars expands ${VAR} and ${VAR:-default} patterns.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, variables map[string]string) string {
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

		if value, ok := variables[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.GatewayConfig == "" {
		errs = append(errs, fmt.Errorf("paths.gateway_config is required"))
	}
	if c.Paths.Backups == "" {
		errs = append(errs, fmt.Errorf("paths.backups is required"))
	}
	if c.Paths.Registry == "" {
		errs = append(errs, fmt.Errorf("paths.registry is required"))
	}
	if c.Gateway.Unit == "" {
		errs = append(errs, fmt.Errorf("gateway.unit is required"))
	}

	modes := []string{"local", "remote", "none"}
	if !contains(modes, c.Validation.DefaultMode) {
		errs = append(errs, fmt.Errorf("validation.default_mode must be one of: %v", modes))
	}

	for _, duration := range []struct {
		name  string
		value string
	}{
		{"health.poll_interval", c.Health.PollInterval},
		{"health.deadline", c.Health.Deadline},
		{"health.settle_delay", c.Health.SettleDelay},
		{"catalog.timeout", c.Catalog.Timeout},
	} {
		if _, err := time.ParseDuration(duration.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", duration.name, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// PollInterval returns the parsed health.poll_interval. Call Validate
// first; an unparseable value falls back to 2s here rather than
// panicking mid-switch.
func (c *Config) PollInterval() time.Duration {
	return parseDurationOr(c.Health.PollInterval, 2*time.Second)
}

// Deadline returns the parsed health.deadline.
func (c *Config) Deadline() time.Duration {
	return parseDurationOr(c.Health.Deadline, 22*time.Second)
}

// SettleDelay returns the parsed health.settle_delay.
func (c *Config) SettleDelay() time.Duration {
	return parseDurationOr(c.Health.SettleDelay, 3*time.Second)
}

// CatalogTimeout returns the parsed catalog.timeout.
func (c *Config) CatalogTimeout() time.Duration {
	return parseDurationOr(c.Catalog.Timeout, 20*time.Second)
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

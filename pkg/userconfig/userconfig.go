// Package userconfig provides user-level configuration for serverless.
// This configuration is stored in ~/.config/serverless/config.yml and carries
// the anonymous framework id plus the tracking preference.
package userconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/natefinch/atomic"

	"github.com/golden-eagle-it-technologies/serverless/pkg/fsutil"
	"github.com/golden-eagle-it-technologies/serverless/pkg/paths"
)

// Config represents the user-level serverless configuration.
type Config struct {
	// FrameworkID is the anonymous per-installation identifier, generated on
	// first run.
	FrameworkID string `yaml:"frameworkId"`
	// TrackingDisabled suppresses all usage-statistics emission.
	TrackingDisabled bool `yaml:"trackingDisabled"`
	// UserID is the stable platform identifier, set when the user is signed
	// in to the dashboard. Empty for anonymous installations.
	UserID string `yaml:"userId,omitempty"`
}

// Path returns the path to the config file.
func Path() string {
	return filepath.Join(paths.GetConfigDir(), "config.yml")
}

// Load reads the user configuration, reflecting the current on-disk state.
//
// Load never fails: a missing file yields a freshly initialized config (with
// a new frameworkId persisted best-effort), while an unreadable or malformed
// file yields a config with tracking disabled so that no telemetry leaves
// the machine on a broken installation.
func Load() *Config {
	return loadFrom(Path())
}

func loadFrom(configPath string) *Config {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			config := &Config{FrameworkID: fsutil.ShortID()}
			// Best-effort persist; a read-only home still gets a usable
			// config for this invocation.
			_ = config.saveTo(configPath)
			return config
		}
		return &Config{TrackingDisabled: true}
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return &Config{TrackingDisabled: true}
	}

	if config.FrameworkID == "" {
		config.FrameworkID = fsutil.ShortID()
		_ = config.saveTo(configPath)
	}

	return config
}

// IsTrackingDisabled reports whether usage statistics must not be emitted.
func (c *Config) IsTrackingDisabled() bool {
	return c.TrackingDisabled
}

// CurrentUserID returns the stable platform identifier, or an empty string.
func (c *Config) CurrentUserID() string {
	return c.UserID
}

// SetTrackingDisabled updates the tracking preference and persists it.
func (c *Config) SetTrackingDisabled(disabled bool) error {
	c.TrackingDisabled = disabled
	return c.Save()
}

// Save saves the configuration to the config file.
func (c *Config) Save() error {
	return c.saveTo(Path())
}

func (c *Config) saveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return atomic.WriteFile(path, bytes.NewReader(data))
}

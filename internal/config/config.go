// Package config provides configuration management for bindery.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/tidwall/sjson"
)

const appName = "bindery"

// Config is the top-level configuration structure.
type Config struct {
	Bus     *BusOptions  `json:"bus,omitempty"`
	Edit    *EditOptions `json:"edit,omitempty"`
	Options *Options     `json:"options,omitempty"`
}

// BusOptions configures the process-wide bus.
//
//nolint:govet // Field order is intentional for JSON readability.
type BusOptions struct {
	Name          string `json:"name,omitempty"`
	RecoverPanics bool   `json:"recover_panics,omitempty"`
}

// EditOptions configures edit sessions.
type EditOptions struct {
	// ExcludedProperties are ignored by the dirty check in addition to the
	// built-in state properties.
	ExcludedProperties []string `json:"excluded_properties,omitempty"`
}

// Options holds optional configuration settings.
//
//nolint:govet // Field order is intentional for JSON readability.
type Options struct {
	DataDir string `json:"data_directory,omitempty"`
	Debug   bool   `json:"debug,omitempty"`
}

// NewConfig creates a new Config with initialized sections.
func NewConfig() *Config {
	return &Config{
		Bus:     &BusOptions{},
		Edit:    &EditOptions{},
		Options: &Options{},
	}
}

// BusName returns the configured bus name.
func (c *Config) BusName() string {
	if c.Bus != nil {
		return c.Bus.Name
	}
	return ""
}

// RecoverPanics reports whether synchronous publishes swallow callback panics.
func (c *Config) RecoverPanics() bool {
	return c.Bus != nil && c.Bus.RecoverPanics
}

// ExcludedProperties returns the extra properties ignored by the dirty check.
func (c *Config) ExcludedProperties() []string {
	if c.Edit == nil {
		return nil
	}
	return c.Edit.ExcludedProperties
}

// DataDir returns the data directory path from configuration.
func (c *Config) DataDir() string {
	if c.Options != nil && c.Options.DataDir != "" {
		return c.Options.DataDir
	}
	return filepath.Join(xdg.DataHome, appName)
}

// DebugLogPath returns where the debug log is written.
func (c *Config) DebugLogPath() string {
	return filepath.Join(c.DataDir(), "debug.log")
}

// SetConfigField updates a single field in the global config file using JSON
// path notation. Only the specified field is modified.
func (c *Config) SetConfigField(key string, value any) error {
	return setConfigField(GlobalConfigPath(), key, value)
}

func setConfigField(configPath, key string, value any) error {
	//nolint:gosec // G304: configPath is from trusted GlobalConfigPath(), not user input.
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	newData, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("setting config field %q: %w", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	//nolint:gosec // 0o600 is intentionally restrictive for security.
	if err := os.WriteFile(configPath, []byte(newData), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the configuration to the global config file.
func Save(cfg *Config) error {
	return SaveToFile(cfg, GlobalConfigPath())
}

// SaveToFile writes cfg to path. Sections left at their zero value are
// omitted, so a saved default config stays small and project files can
// override only what they set.
func SaveToFile(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(pruned(cfg), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil { //nolint:gosec // Restrictive permissions for security.
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func pruned(cfg *Config) *Config {
	out := &Config{}
	if b := cfg.Bus; b != nil && (b.Name != "" || b.RecoverPanics) {
		out.Bus = b
	}
	if e := cfg.Edit; e != nil && len(e.ExcludedProperties) > 0 {
		out.Edit = e
	}
	if o := cfg.Options; o != nil && (o.DataDir != "" || o.Debug) {
		out.Options = o
	}
	return out
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const configFileName = "bindery.json"

// Load finds and loads configuration from standard locations.
// It merges global config with project config (project takes precedence).
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	return load(GlobalConfigPath(), cwd)
}

func load(globalPath, cwd string) (*Config, error) {
	cfg := NewConfig()
	if err := loadFile(globalPath, cfg); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	if projectPath := findProjectConfig(cwd); projectPath != "" {
		projectCfg := NewConfig()
		if err := loadFile(projectPath, projectCfg); err != nil {
			return nil, fmt.Errorf("loading project config: %w", err)
		}
		mergeConfig(cfg, projectCfg)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	cfg := NewConfig()
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	//nolint:gosec // G304: Path is from trusted config locations, not user input.
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func findProjectConfig(start string) string {
	if start == "" {
		return ""
	}

	dir := start
	for {
		// Check for bindery.json.
		path := filepath.Join(dir, configFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}

		// Check for .bindery.json (hidden).
		hiddenPath := filepath.Join(dir, "."+configFileName)
		if _, err := os.Stat(hiddenPath); err == nil {
			return hiddenPath
		}

		// Move to parent directory.
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func mergeConfig(dst, src *Config) {
	if src.Bus != nil {
		if dst.Bus == nil {
			dst.Bus = &BusOptions{}
		}
		if src.Bus.Name != "" {
			dst.Bus.Name = src.Bus.Name
		}
		if src.Bus.RecoverPanics {
			dst.Bus.RecoverPanics = true
		}
	}

	if src.Edit != nil && len(src.Edit.ExcludedProperties) > 0 {
		if dst.Edit == nil {
			dst.Edit = &EditOptions{}
		}
		dst.Edit.ExcludedProperties = src.Edit.ExcludedProperties
	}

	if src.Options != nil {
		if dst.Options == nil {
			dst.Options = &Options{}
		}
		if src.Options.DataDir != "" {
			dst.Options.DataDir = src.Options.DataDir
		}
		if src.Options.Debug {
			dst.Options.Debug = true
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Bus == nil {
		cfg.Bus = &BusOptions{}
	}
	if cfg.Bus.Name == "" {
		cfg.Bus.Name = "default"
	}
	if cfg.Edit == nil {
		cfg.Edit = &EditOptions{}
	}
	if cfg.Options == nil {
		cfg.Options = &Options{}
	}
	if cfg.Options.DataDir == "" {
		cfg.Options.DataDir = filepath.Join(xdg.DataHome, appName)
	}
}

// GlobalConfigPath returns the path to the global configuration file.
func GlobalConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configFileName)
}

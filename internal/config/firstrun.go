package config

import (
	"os"
)

// IsFirstRun reports whether no global config file exists yet.
func IsFirstRun() bool {
	return isFirstRun(GlobalConfigPath())
}

func isFirstRun(path string) bool {
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}

// EnsureDefaults writes a default global config when none exists.
func EnsureDefaults() error {
	return ensureDefaults(GlobalConfigPath())
}

func ensureDefaults(path string) error {
	if !isFirstRun(path) {
		return nil
	}
	cfg := NewConfig()
	cfg.Bus.Name = "default"
	return SaveToFile(cfg, path)
}

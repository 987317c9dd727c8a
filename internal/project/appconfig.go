package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/RollCut/internal/model"
)

const (
	configDirName  = ".rollcut"
	configFileName = "config.json"
)

// DefaultConfigDir returns ~/.rollcut, or .rollcut in the working directory
// when the home directory is unknown. The inventory lives next to the config.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), configFileName)
}

// SaveAppConfig validates the config and writes it as JSON, creating the
// directory when needed. An invalid config is never written.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("refusing to save config: %w", err)
	}
	return writeJSON(path, config)
}

// LoadAppConfig reads the config at path on top of DefaultAppConfig, so keys
// missing from the file keep their defaults and a missing file yields the
// defaults. The optimizer defaults are validated: a config naming an unknown
// pricing method or a non-positive roll width or epsilon is an error that
// wraps model.ErrInvalidSettings.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return config, nil
	}
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	if err := config.Validate(); err != nil {
		return model.AppConfig{}, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

// writeJSON is the single writer behind config, inventory, project and
// backup files: indented JSON, 0644, parent directories created.
func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", filepath.Base(path), err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

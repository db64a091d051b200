package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/DoorBeading/internal/model"
)

// DefaultConfigDir is ~/.doorbeading, or ./.doorbeading when there is no
// home directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".doorbeading")
}

// DefaultConfigPath is config.json in DefaultConfigDir.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig writes the application config as JSON.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads the application config. A missing file gives the
// defaults; keys absent from the file keep their default values. The saved
// default door must pass DoorConfig.Validate.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	if err := readJSON(path, &config); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, fmt.Errorf("config: %w", err)
	}
	if err := config.DefaultDoor.Validate(); err != nil {
		return model.AppConfig{}, fmt.Errorf("config %s: default door: %w", path, err)
	}
	if config.RecentJobs == nil {
		config.RecentJobs = []string{}
	}
	return config, nil
}

package project

import (
	"errors"
	"fmt"
	"time"

	"github.com/piwi3910/DoorBeading/internal/model"
)

// BackupVersion is written into every backup file.
const BackupVersion = "1.0.0"

// BackupData is a single-file copy of the application config and the
// beading inventory.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Inventory model.Inventory `json:"inventory"`
}

// ExportAllData writes config and inv to one backup file.
func ExportAllData(path string, config model.AppConfig, inv model.Inventory) error {
	backup := BackupData{
		Version:   BackupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Inventory: inv,
	}
	if err := writeJSON(path, backup); err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	return nil
}

// ImportAllData reads a backup file. Saving the restored config and
// inventory is left to the caller.
func ImportAllData(path string) (BackupData, error) {
	var backup BackupData
	if err := readJSON(path, &backup); err != nil {
		return BackupData{}, fmt.Errorf("backup: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, errors.New("invalid backup file: missing version field")
	}
	if backup.Config.RecentJobs == nil {
		backup.Config.RecentJobs = []string{}
	}
	return backup, nil
}

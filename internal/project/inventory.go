package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/DoorBeading/internal/model"
)

// DefaultInventoryPath is inventory.json in DefaultConfigDir.
func DefaultInventoryPath() string {
	return filepath.Join(DefaultConfigDir(), "inventory.json")
}

// SaveInventory writes the inventory as JSON.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the inventory. On first use, when the file is
// missing, the default inventory is written there and returned.
func LoadInventory(path string) (model.Inventory, error) {
	var inv model.Inventory
	if err := readJSON(path, &inv); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			inv = model.DefaultInventory()
			return inv, SaveInventory(path, inv)
		}
		return model.Inventory{}, fmt.Errorf("inventory: %w", err)
	}
	return inv, nil
}

// ImportInventory reads another inventory file and merges it into
// existing.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	var imported model.Inventory
	if err := readJSON(path, &imported); err != nil {
		return existing, fmt.Errorf("import inventory: %w", err)
	}
	return MergeInventory(existing, imported), nil
}

// MergeInventory appends the profiles of imported that existing does not
// already hold, matched by ID.
func MergeInventory(existing, imported model.Inventory) model.Inventory {
	ids := make(map[string]bool, len(existing.Beadings))
	for _, b := range existing.Beadings {
		ids[b.ID] = true
	}
	for _, b := range imported.Beadings {
		if !ids[b.ID] {
			existing.Beadings = append(existing.Beadings, b)
			ids[b.ID] = true
		}
	}
	return existing
}

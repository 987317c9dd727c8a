package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/RollCut/internal/model"
)

const inventoryFileName = "inventory.json"

// InventoryPath returns the inventory file kept next to the given config file.
func InventoryPath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), inventoryFileName)
}

// DefaultInventoryPath returns ~/.rollcut/inventory.json.
func DefaultInventoryPath() string {
	return InventoryPath(DefaultConfigPath())
}

// SaveInventory writes the inventory as JSON, creating parent directories.
func SaveInventory(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadInventory reads the inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadInventory(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SaveInventory(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, err
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, err
	}
	if inv.Rolls == nil {
		inv.Rolls = []model.RollPreset{}
	}
	return inv, nil
}

// LoadOrCreateInventory loads the inventory belonging to the config at
// configPath. If the file does not exist, it creates one with default entries.
func LoadOrCreateInventory(configPath string) (model.Inventory, string, error) {
	path := InventoryPath(configPath)
	inv, err := LoadInventory(path)
	return inv, path, err
}

// ImportInventory imports roll presets from a user-specified JSON file,
// merging them into the existing inventory. Duplicate IDs are skipped.
func ImportInventory(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, err
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, err
	}

	ids := make(map[string]bool, len(existing.Rolls))
	for _, r := range existing.Rolls {
		ids[r.ID] = true
	}
	for _, r := range imported.Rolls {
		if !ids[r.ID] {
			existing.Rolls = append(existing.Rolls, r)
			ids[r.ID] = true
		}
	}

	return existing, nil
}

package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RollCut/internal/model"
)

func TestDefaultInventoryPath(t *testing.T) {
	path := DefaultInventoryPath()
	if filepath.Base(path) != "inventory.json" {
		t.Errorf("expected filename inventory.json, got %s", filepath.Base(path))
	}
	dir := filepath.Base(filepath.Dir(path))
	if dir != ".rollcut" {
		t.Errorf("expected parent dir .rollcut, got %s", dir)
	}
}

func TestInventoryPathFollowsConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "profiles", "config.json")

	if got := InventoryPath(configPath); got != filepath.Join(dir, "profiles", "inventory.json") {
		t.Errorf("unexpected inventory path %s", got)
	}

	inv, path, err := LoadOrCreateInventory(configPath)
	if err != nil {
		t.Fatalf("LoadOrCreateInventory failed: %v", err)
	}
	if filepath.Dir(path) != filepath.Dir(configPath) {
		t.Errorf("inventory %s not next to config %s", path, configPath)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default inventory was not created: %v", err)
	}
	if len(inv.Rolls) == 0 {
		t.Error("expected default roll presets")
	}
}

func TestSaveAndLoadInventory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test_inventory.json")

	inv := model.Inventory{
		Rolls: []model.RollPreset{
			model.NewRollPresetWithPrice("Kraft 1000", 1000, 40, "Kraft", 12.5),
		},
	}

	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("inventory file was not created")
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(loaded.Rolls) != 1 {
		t.Fatalf("expected 1 roll preset, got %d", len(loaded.Rolls))
	}
	r := loaded.Rolls[0]
	if r.Name != "Kraft 1000" {
		t.Errorf("expected name 'Kraft 1000', got %q", r.Name)
	}
	if r.Width != 1000 || r.Available != 40 {
		t.Errorf("expected 1000 mm x 40, got %d mm x %d", r.Width, r.Available)
	}
	if r.PricePerRoll != 12.5 {
		t.Errorf("expected price 12.5, got %f", r.PricePerRoll)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nonexistent", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}

	if len(inv.Rolls) == 0 {
		t.Error("expected default roll presets, got none")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("expected default inventory file to be created")
	}
}

func TestLoadInventoryInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")
	if err := os.WriteFile(path, []byte("[broken"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInventory(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestImportInventory(t *testing.T) {
	tmpDir := t.TempDir()

	existing := model.Inventory{
		Rolls: []model.RollPreset{
			{ID: "roll-001", Name: "Existing Kraft", Width: 1000},
		},
	}

	imported := model.Inventory{
		Rolls: []model.RollPreset{
			{ID: "roll-001", Name: "Duplicate Kraft", Width: 1000}, // same ID, should be skipped
			{ID: "roll-002", Name: "New Film", Width: 2400},        // new, should be added
		},
	}

	importPath := filepath.Join(tmpDir, "import.json")
	data, _ := json.MarshalIndent(imported, "", "  ")
	if err := os.WriteFile(importPath, data, 0644); err != nil {
		t.Fatalf("failed to write import file: %v", err)
	}

	merged, err := ImportInventory(importPath, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}

	if len(merged.Rolls) != 2 {
		t.Fatalf("expected 2 rolls after merge, got %d", len(merged.Rolls))
	}
	if merged.Rolls[0].Name != "Existing Kraft" {
		t.Errorf("expected first roll to be 'Existing Kraft', got %q", merged.Rolls[0].Name)
	}
	if merged.Rolls[1].Name != "New Film" {
		t.Errorf("expected second roll to be 'New Film', got %q", merged.Rolls[1].Name)
	}
}

func TestImportInventoryMissingFile(t *testing.T) {
	existing := model.DefaultInventory()
	merged, err := ImportInventory(filepath.Join(t.TempDir(), "missing.json"), existing)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if len(merged.Rolls) != len(existing.Rolls) {
		t.Errorf("existing inventory should be returned unchanged")
	}
}

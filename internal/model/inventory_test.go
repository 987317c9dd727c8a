package model

import (
	"testing"
)

func TestNewRollPresetWithPrice(t *testing.T) {
	rp := NewRollPresetWithPrice("Kraft 1000", 1000, 40, "Kraft", 12.5)
	if rp.PricePerRoll != 12.5 {
		t.Errorf("expected price 12.5, got %.2f", rp.PricePerRoll)
	}
	if rp.Name != "Kraft 1000" {
		t.Errorf("expected name 'Kraft 1000', got %s", rp.Name)
	}
	if rp.ID == "" {
		t.Error("expected generated ID")
	}
}

func TestRollPresetApplyToOrder(t *testing.T) {
	rp := NewRollPreset("Coil", 1250, 12, "Steel")
	o := NewOrder("x", 100, []int{50}, []int{3})
	rp.ApplyToOrder(&o)
	if o.RollWidth != 1250 {
		t.Errorf("expected roll width 1250, got %d", o.RollWidth)
	}
	if o.AvailableRolls != 12 || !o.HasCapacity() {
		t.Errorf("expected capacity 12, got %d", o.AvailableRolls)
	}
}

func TestDefaultInventoryLookups(t *testing.T) {
	inv := DefaultInventory()
	if len(inv.Rolls) == 0 {
		t.Fatal("expected default rolls")
	}
	names := inv.RollNames()
	if len(names) != len(inv.Rolls) {
		t.Fatalf("expected %d names, got %d", len(inv.Rolls), len(names))
	}

	byName := inv.FindRollByName("Demo 100")
	if byName == nil || byName.Width != 100 {
		t.Fatalf("expected Demo 100 preset, got %+v", byName)
	}
	if inv.FindRollByID(byName.ID) != byName {
		t.Error("FindRollByID should return the same preset")
	}
	if inv.FindRollByName("missing") != nil {
		t.Error("expected nil for unknown preset")
	}
}

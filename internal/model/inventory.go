package model

import "github.com/google/uuid"

// RollPreset represents a reusable master roll definition.
type RollPreset struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Width        int     `json:"width"`     // mm
	Available    int     `json:"available"` // Rolls in stock, 0 = unlimited
	Material     string  `json:"material"`
	PricePerRoll float64 `json:"price_per_roll"`
}

// NewRollPreset creates a new RollPreset with a generated ID.
func NewRollPreset(name string, width, available int, material string) RollPreset {
	return RollPreset{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Width:     width,
		Available: available,
		Material:  material,
	}
}

// NewRollPresetWithPrice creates a RollPreset with a per-roll price.
func NewRollPresetWithPrice(name string, width, available int, material string, price float64) RollPreset {
	rp := NewRollPreset(name, width, available, material)
	rp.PricePerRoll = price
	return rp
}

// ApplyToOrder copies the roll width and stock level into an order.
func (rp RollPreset) ApplyToOrder(o *Order) {
	o.RollWidth = rp.Width
	o.AvailableRolls = rp.Available
}

// Inventory holds the user's saved master roll presets.
type Inventory struct {
	Rolls []RollPreset `json:"rolls"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	return Inventory{
		Rolls: []RollPreset{
			NewRollPreset("Demo 100", 100, 0, "Paper"),
			NewRollPreset("Kraft 1000mm", 1000, 0, "Kraft"),
			NewRollPreset("Kraft 1600mm", 1600, 0, "Kraft"),
			NewRollPreset("Steel coil 1250mm", 1250, 0, "Steel"),
			NewRollPreset("Film 2400mm", 2400, 0, "PE film"),
		},
	}
}

// FindRollByID returns a pointer to the roll preset with the given ID, or nil.
func (inv *Inventory) FindRollByID(id string) *RollPreset {
	for i := range inv.Rolls {
		if inv.Rolls[i].ID == id {
			return &inv.Rolls[i]
		}
	}
	return nil
}

// FindRollByName returns a pointer to the first roll preset with the given name, or nil.
func (inv *Inventory) FindRollByName(name string) *RollPreset {
	for i := range inv.Rolls {
		if inv.Rolls[i].Name == name {
			return &inv.Rolls[i]
		}
	}
	return nil
}

// RollNames returns the preset names in inventory order.
func (inv *Inventory) RollNames() []string {
	names := make([]string, len(inv.Rolls))
	for i, r := range inv.Rolls {
		names[i] = r.Name
	}
	return names
}

package model

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrInvalidOrder is returned by Order.Validate for orders that cannot be cut.
var ErrInvalidOrder = errors.New("invalid order")

// ErrInvalidSettings is returned by Settings.Validate and AppConfig.Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Piece is one ordered width together with how many pieces of it are needed.
// Its position in Order.Pieces is the width index used by patterns and duals.
type Piece struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Width  int    `json:"width"`  // mm
	Demand int    `json:"demand"` // pieces
}

func NewPiece(label string, width, demand int) Piece {
	return Piece{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  width,
		Demand: demand,
	}
}

// Order describes a cutting-stock instance: master rolls of a single width
// cut into the ordered pieces.
type Order struct {
	Name           string  `json:"name"`
	RollWidth      int     `json:"roll_width"`                // mm
	AvailableRolls int     `json:"available_rolls,omitempty"` // 0 = unlimited
	Pieces         []Piece `json:"pieces"`
}

// NewOrder builds an order from parallel width and demand slices.
// Labels are derived from the widths.
func NewOrder(name string, rollWidth int, widths, demands []int) Order {
	o := Order{Name: name, RollWidth: rollWidth}
	for i, w := range widths {
		d := 0
		if i < len(demands) {
			d = demands[i]
		}
		o.Pieces = append(o.Pieces, NewPiece(fmt.Sprintf("W%d", w), w, d))
	}
	return o
}

// HasCapacity reports whether the number of master rolls is capped.
func (o Order) HasCapacity() bool {
	return o.AvailableRolls > 0
}

// Widths returns the piece widths in width-index order.
func (o Order) Widths() []int {
	out := make([]int, len(o.Pieces))
	for i, p := range o.Pieces {
		out[i] = p.Width
	}
	return out
}

// Demands returns the piece demands in width-index order.
func (o Order) Demands() []int {
	out := make([]int, len(o.Pieces))
	for i, p := range o.Pieces {
		out[i] = p.Demand
	}
	return out
}

// TotalDemand returns the number of pieces ordered across all widths.
func (o Order) TotalDemand() int {
	total := 0
	for _, p := range o.Pieces {
		total += p.Demand
	}
	return total
}

// Validate checks the invariants the optimizer relies on: every width is
// positive and fits on a master roll, and no demand is negative.
func (o Order) Validate() error {
	if o.RollWidth <= 0 {
		return errors.Wrapf(ErrInvalidOrder, "roll width must be positive, got %d", o.RollWidth)
	}
	if len(o.Pieces) == 0 {
		return errors.Wrap(ErrInvalidOrder, "no pieces ordered")
	}
	for i, p := range o.Pieces {
		if p.Width <= 0 {
			return errors.Wrapf(ErrInvalidOrder, "piece %d (%s): width must be positive, got %d", i, p.Label, p.Width)
		}
		if p.Width > o.RollWidth {
			return errors.Wrapf(ErrInvalidOrder, "piece %d (%s): width %d exceeds roll width %d", i, p.Label, p.Width, o.RollWidth)
		}
		if p.Demand < 0 {
			return errors.Wrapf(ErrInvalidOrder, "piece %d (%s): demand must not be negative, got %d", i, p.Label, p.Demand)
		}
	}
	return nil
}

// Backend names a solver implementation.
type Backend string

const (
	BackendSimplex Backend = "simplex" // Pure Go simplex with branch-and-bound
	BackendGLPK    Backend = "glpk"    // GNU Linear Programming Kit (cgo, build tag glpk)
)

// PricingMethod selects how new patterns are searched for.
type PricingMethod string

const (
	PricingDP  PricingMethod = "knapsack-dp"  // Dynamic programme over the roll width
	PricingMIP PricingMethod = "knapsack-mip" // Integer knapsack model handed to the solver
)

// Settings holds the optimizer configuration of a run.
type Settings struct {
	Backend       Backend       `json:"backend"`
	Pricing       PricingMethod `json:"pricing"`
	Epsilon       float64       `json:"epsilon"`        // Reduced costs above -Epsilon end generation
	MaxIterations int           `json:"max_iterations"` // 0 = unlimited
	MaxDuplicates int           `json:"max_duplicates"` // Consecutive duplicate patterns tolerated
	NodeLimit     int           `json:"node_limit"`     // Branch-and-bound nodes, 0 = backend default
	SeedOnly      bool          `json:"seed_only"`      // Skip column generation
	SnapshotDir   string        `json:"snapshot_dir"`   // Empty = no model snapshots
}

func DefaultSettings() Settings {
	return Settings{
		Backend:       BackendSimplex,
		Pricing:       PricingDP,
		Epsilon:       1e-9,
		MaxIterations: 0,
		MaxDuplicates: 3,
		NodeLimit:     0,
		SeedOnly:      false,
		SnapshotDir:   "",
	}
}

// Validate rejects settings a run cannot honour. An empty pricing method
// selects the dynamic programme and a zero epsilon the default tolerance.
func (s Settings) Validate() error {
	switch s.Pricing {
	case "", PricingDP, PricingMIP:
	default:
		return errors.Wrapf(ErrInvalidSettings, "unknown pricing method %q", s.Pricing)
	}
	if s.Epsilon < 0 {
		return errors.Wrapf(ErrInvalidSettings, "epsilon must not be negative, got %g", s.Epsilon)
	}
	if s.MaxIterations < 0 {
		return errors.Wrapf(ErrInvalidSettings, "max iterations must not be negative, got %d", s.MaxIterations)
	}
	if s.NodeLimit < 0 {
		return errors.Wrapf(ErrInvalidSettings, "node limit must not be negative, got %d", s.NodeLimit)
	}
	return nil
}

// Project ties an order, its settings and the latest plan together for save/load.
type Project struct {
	Name     string   `json:"name"`
	Order    Order    `json:"order"`
	Settings Settings `json:"settings"`
	Plan     *Plan    `json:"plan,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Order:    Order{Pieces: []Piece{}},
		Settings: DefaultSettings(),
	}
}

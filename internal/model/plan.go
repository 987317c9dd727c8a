package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// PatternUsage pairs a pattern with the number of rolls cut with it in the
// relaxed and in the integer master problem.
type PatternUsage struct {
	Pattern      Pattern `json:"pattern"`
	RelaxedRolls float64 `json:"relaxed_rolls"`
	Rolls        int     `json:"rolls"`
}

// Iteration records one pass of column generation.
type Iteration struct {
	Index       int     `json:"index"`
	Objective   float64 `json:"objective"`    // Relaxed master objective before pricing
	ReducedCost float64 `json:"reduced_cost"` // Best reduced cost found by pricing
	PatternID   int     `json:"pattern_id"`   // -1 when no pattern was added
	Duplicate   bool    `json:"duplicate"`    // Priced pattern already existed in the catalog
}

// Plan is the outcome of an optimization run.
type Plan struct {
	ID           string         `json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	Order        Order          `json:"order"`
	Patterns     []PatternUsage `json:"patterns"`
	RelaxedWaste float64        `json:"relaxed_waste"`
	Waste        float64        `json:"waste"`
	Iterations   []Iteration    `json:"iterations"`
	Converged    bool           `json:"converged"`
	Backend      Backend        `json:"backend"`
	Pricing      PricingMethod  `json:"pricing"`
}

func NewPlan(order Order) *Plan {
	return &Plan{
		ID:        uuid.New().String()[:8],
		CreatedAt: time.Now().UTC(),
		Order:     order,
	}
}

// RollsUsed returns the number of master rolls cut in the integer solution.
func (p *Plan) RollsUsed() int {
	total := 0
	for _, u := range p.Patterns {
		total += u.Rolls
	}
	return total
}

// RelaxedRolls returns the fractional number of rolls of the relaxed solution.
func (p *Plan) RelaxedRolls() float64 {
	var total float64
	for _, u := range p.Patterns {
		total += u.RelaxedRolls
	}
	return total
}

// UsedPatterns returns the patterns cut at least once in the integer solution.
func (p *Plan) UsedPatterns() []PatternUsage {
	var out []PatternUsage
	for _, u := range p.Patterns {
		if u.Rolls > 0 {
			out = append(out, u)
		}
	}
	return out
}

// GeneratedPatterns returns how many patterns pricing added beyond the seeds.
func (p *Plan) GeneratedPatterns() int {
	n := 0
	for _, u := range p.Patterns {
		if !u.Pattern.Seed {
			n++
		}
	}
	return n
}

// Produced returns the number of pieces cut per width index.
func (p *Plan) Produced() []int {
	out := make([]int, len(p.Order.Pieces))
	for _, u := range p.Patterns {
		for i, c := range u.Pattern.Counts {
			if i < len(out) {
				out[i] += c * u.Rolls
			}
		}
	}
	return out
}

// Overproduction returns, per width index, the pieces cut beyond demand.
func (p *Plan) Overproduction() []int {
	produced := p.Produced()
	out := make([]int, len(produced))
	for i, n := range produced {
		if extra := n - p.Order.Pieces[i].Demand; extra > 0 {
			out[i] = extra
		}
	}
	return out
}

// Efficiency returns the share of cut roll width that ends up in pieces, in percent.
func (p *Plan) Efficiency() float64 {
	total := float64(p.RollsUsed() * p.Order.RollWidth)
	if total == 0 {
		return 0
	}
	return (total - p.Waste) / total * 100.0
}

// Gap returns the integer objective minus the relaxed bound.
func (p *Plan) Gap() float64 {
	return math.Max(0, p.Waste-p.RelaxedWaste)
}

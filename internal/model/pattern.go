package model

import (
	"fmt"
	"strings"
)

// Pattern is one way of cutting a master roll: Counts[i] pieces of the
// order's width i. Waste is the roll width left unused.
type Pattern struct {
	ID     int   `json:"id"`
	Counts []int `json:"counts"`
	Waste  int   `json:"waste"`
	Seed   bool  `json:"seed"` // Created by greedy seeding rather than pricing
}

// NewPattern builds a pattern and computes its waste for the given roll.
func NewPattern(id int, counts []int, pieces []Piece, rollWidth int) Pattern {
	cp := make([]int, len(counts))
	copy(cp, counts)
	p := Pattern{ID: id, Counts: cp}
	p.Waste = rollWidth - p.Used(pieces)
	return p
}

// Used returns the roll width consumed by the pattern's cuts.
func (p Pattern) Used(pieces []Piece) int {
	used := 0
	for i, c := range p.Counts {
		if i < len(pieces) {
			used += c * pieces[i].Width
		}
	}
	return used
}

// Fits reports whether the cuts fit on a roll of the given width.
func (p Pattern) Fits(pieces []Piece, rollWidth int) bool {
	return p.Used(pieces) <= rollWidth
}

// Pieces returns the number of pieces cut from one roll.
func (p Pattern) Pieces() int {
	n := 0
	for _, c := range p.Counts {
		n += c
	}
	return n
}

// Equal reports whether two patterns cut the same pieces.
func (p Pattern) Equal(other Pattern) bool {
	return sameCounts(p.Counts, other.Counts)
}

func sameCounts(a, b []int) bool {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		if x != y {
			return false
		}
	}
	return true
}

// Describe renders the pattern as "2×6 + 5×17" using the piece widths.
func (p Pattern) Describe(pieces []Piece) string {
	var parts []string
	for i, c := range p.Counts {
		if c == 0 || i >= len(pieces) {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d×%d", c, pieces[i].Width))
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " + ")
}

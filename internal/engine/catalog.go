package engine

import "github.com/piwi3910/RollCut/internal/model"

// SeedPatterns returns one pattern per piece width, each cutting as many
// pieces of that width as fit on a roll. Pattern i has ID i.
func SeedPatterns(pieces []model.Piece, rollWidth int) []model.Pattern {
	out := make([]model.Pattern, len(pieces))
	for i, p := range pieces {
		counts := make([]int, len(pieces))
		if p.Width > 0 {
			counts[i] = rollWidth / p.Width
		}
		out[i] = model.NewPattern(i, counts, pieces, rollWidth)
		out[i].Seed = true
	}
	return out
}

// Catalog stores every pattern known to a run, seeds first, in ID order.
// Registered patterns are never deduplicated.
type Catalog struct {
	pieces    []model.Piece
	rollWidth int
	patterns  []model.Pattern
}

// NewCatalog creates a catalog holding the seed patterns of the order.
func NewCatalog(order model.Order) *Catalog {
	return &Catalog{
		pieces:    order.Pieces,
		rollWidth: order.RollWidth,
		patterns:  SeedPatterns(order.Pieces, order.RollWidth),
	}
}

// Register stores counts as a new pattern with the next sequential ID. The
// second result reports whether an identical pattern was already known.
func (c *Catalog) Register(counts []int) (model.Pattern, bool) {
	p := model.NewPattern(len(c.patterns), counts, c.pieces, c.rollWidth)
	duplicate := false
	for _, q := range c.patterns {
		if q.Equal(p) {
			duplicate = true
			break
		}
	}
	c.patterns = append(c.patterns, p)
	return p, duplicate
}

// Patterns returns a copy of the stored patterns in ID order.
func (c *Catalog) Patterns() []model.Pattern {
	return append([]model.Pattern(nil), c.patterns...)
}

// Len returns the number of stored patterns, which is also the next ID.
func (c *Catalog) Len() int {
	return len(c.patterns)
}

// Pattern returns the pattern with the given ID.
func (c *Catalog) Pattern(id int) (model.Pattern, bool) {
	if id < 0 || id >= len(c.patterns) {
		return model.Pattern{}, false
	}
	return c.patterns[id], true
}

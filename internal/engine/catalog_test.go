package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RollCut/internal/model"
)

func exampleOrder() model.Order {
	return model.NewOrder("example", 100, []int{6, 11, 17}, []int{9, 6, 20})
}

func TestSeedPatterns_MaximallyPacked(t *testing.T) {
	order := exampleOrder()
	seeds := SeedPatterns(order.Pieces, order.RollWidth)

	require.Len(t, seeds, 3)
	assert.Equal(t, []int{16, 0, 0}, seeds[0].Counts)
	assert.Equal(t, []int{0, 9, 0}, seeds[1].Counts)
	assert.Equal(t, []int{0, 0, 5}, seeds[2].Counts)
	assert.Equal(t, 4, seeds[0].Waste)
	assert.Equal(t, 1, seeds[1].Waste)
	assert.Equal(t, 15, seeds[2].Waste)
	for i, p := range seeds {
		assert.Equal(t, i, p.ID)
		assert.True(t, p.Seed)
		assert.True(t, p.Fits(order.Pieces, order.RollWidth))
	}
}

func TestSeedPatterns_Deterministic(t *testing.T) {
	order := exampleOrder()
	assert.Equal(t, SeedPatterns(order.Pieces, 100), SeedPatterns(order.Pieces, 100))
}

func TestCatalog_RegisterAssignsSequentialIDs(t *testing.T) {
	c := NewCatalog(exampleOrder())
	require.Equal(t, 3, c.Len())

	p, dup := c.Register([]int{2, 0, 5})
	assert.False(t, dup)
	assert.Equal(t, 3, p.ID)
	assert.Equal(t, 3, p.Waste)
	assert.False(t, p.Seed)

	q, _ := c.Register([]int{0, 1, 5})
	assert.Equal(t, 4, q.ID)
	assert.Equal(t, 5, c.Len())
}

func TestCatalog_RegisterKeepsDuplicates(t *testing.T) {
	c := NewCatalog(exampleOrder())

	p, dup := c.Register([]int{16, 0, 0})
	assert.True(t, dup, "same cuts as the first seed")
	assert.Equal(t, 3, p.ID)
	assert.Equal(t, 4, c.Len(), "duplicates are stored, not merged")
}

func TestCatalog_PatternLookup(t *testing.T) {
	c := NewCatalog(exampleOrder())

	p, ok := c.Pattern(1)
	require.True(t, ok)
	assert.Equal(t, []int{0, 9, 0}, p.Counts)

	_, ok = c.Pattern(3)
	assert.False(t, ok)
	_, ok = c.Pattern(-1)
	assert.False(t, ok)
}

func TestCatalog_PatternsReturnsCopy(t *testing.T) {
	c := NewCatalog(exampleOrder())
	ps := c.Patterns()
	ps[0].Waste = 99

	p, _ := c.Pattern(0)
	assert.Equal(t, 4, p.Waste)
}

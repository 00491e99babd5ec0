package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/formrunner/internal/core"
)

func TestClassifyTable(t *testing.T) {
	tests := []struct {
		kind   TileKind
		solid  bool
		hazard bool
		liquid bool
	}{
		{Empty, false, false, false},
		{Solid, true, false, false},
		{Diggable, true, false, false},
		{Breakable, true, false, false},
		{Spike, false, true, false},
		{Lava, false, true, false},
		{Liquid, false, false, true},
		{Exit, false, false, false},
	}

	require.Len(t, tests, len(Kinds()), "every kind needs a row")
	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			tr := Classify(tc.kind)
			assert.Equal(t, tc.solid, tr.Solid, "solid")
			assert.Equal(t, tc.hazard, tr.Hazard, "hazard")
			assert.Equal(t, tc.liquid, tr.Liquid, "liquid")

			parsed, ok := ParseKind(tc.kind.String())
			assert.True(t, ok)
			assert.Equal(t, tc.kind, parsed)
		})
	}

	assert.True(t, Classify(TileKind(200)).Solid, "unknown kinds are solid")
}

func TestOutOfBoundsIsSolid(t *testing.T) {
	g := NewGrid(4, 3, 32)
	cells := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {-5, -5}, {100, 100}}
	for _, c := range cells {
		assert.Equal(t, Solid, g.Kind(c[0], c[1]), "Kind(%d, %d)", c[0], c[1])
		assert.True(t, g.IsSolid(c[0], c[1]))
	}

	g.Set(-1, 0, Liquid)
	g.Set(4, 2, Liquid)
	assert.Equal(t, 0, g.Count(Liquid), "out of bounds writes are ignored")
}

func TestDigAndBreak(t *testing.T) {
	g := NewGrid(3, 1, 32)
	g.Set(0, 0, Diggable)
	g.Set(1, 0, Breakable)
	g.Set(2, 0, Solid)

	assert.False(t, g.Break(0, 0), "fire does not clear diggable")
	assert.False(t, g.Dig(1, 0), "dig does not clear breakable")
	assert.False(t, g.Dig(2, 0))
	assert.False(t, g.Dig(-1, 0))

	assert.True(t, g.Dig(0, 0))
	assert.True(t, g.Break(1, 0))
	assert.Equal(t, Empty, g.Kind(0, 0))
	assert.Equal(t, Empty, g.Kind(1, 0))
	assert.False(t, g.Dig(0, 0), "second dig is a no-op")
}

func TestTileAtFloorsNegatives(t *testing.T) {
	g := NewGrid(2, 2, 32)
	g.Set(1, 1, Exit)
	assert.Equal(t, Exit, g.TileAt(32, 63.9))
	assert.Equal(t, Empty, g.TileAt(31.9, 0))
	assert.Equal(t, Solid, g.TileAt(-0.5, 0), "-0.5 is column -1")
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewGrid(2, 1, 32)
	c := g.Clone()
	c.Set(0, 0, Lava)
	assert.Equal(t, Empty, g.Kind(0, 0))
	assert.Equal(t, Lava, c.Kind(0, 0))
}

func TestRegionMatches(t *testing.T) {
	g := NewGrid(4, 4, 32)
	g.Set(2, 2, Spike)

	assert.True(t, g.Touches(core.NewRectF(60, 60, 8, 8), HazardTrait))
	// Flush against the cell's left edge from outside.
	assert.False(t, g.Touches(core.NewRectF(40, 64, 24, 24), HazardTrait))
	assert.False(t, g.Touches(core.NewRectF(0, 0, 24, 24), LiquidTrait))
}

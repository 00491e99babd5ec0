package world

import (
	"math"

	"github.com/vovakirdan/formrunner/internal/core"
)

// Body is an axis-aligned rectangle moved through the grid.
type Body struct {
	X, Y     float64
	W, H     float64
	VX, VY   float64
	OnGround bool
}

// Rect returns the body's bounds.
func (b *Body) Rect() core.RectF {
	return core.NewRectF(b.X, b.Y, b.W, b.H)
}

// Center returns the body's center point.
func (b *Body) Center() core.Vec {
	return b.Rect().Center()
}

// span returns the inclusive cell range covered by [start, start+size).
// The trailing edge is pulled in by one pixel so a body flush with a
// boundary does not claim the next cell.
func (g *Grid) span(start, size float64) (int, int) {
	return g.Cell(start), g.Cell(start + size - 1)
}

// edgeEps keeps a flush edge out of the neighbouring cell while any real
// overlap of a solid cell still counts as a hit.
const edgeEps = 1e-6

// solidSpan is span for collision: every cell the body overlaps at all.
func (g *Grid) solidSpan(start, size float64) (int, int) {
	return g.Cell(start), g.Cell(start + size - edgeEps)
}

// MoveHorizontal advances b along x and resolves against solid cells.
// It reports whether a wall was hit; on a hit the body is clamped flush and VX is zeroed.
func (g *Grid) MoveHorizontal(b *Body, dt float64) bool {
	b.X += b.VX * dt
	startY, endY := g.solidSpan(b.Y, b.H)

	switch {
	case b.VX > 0:
		tx := g.Cell(b.X + b.W - edgeEps)
		for ty := startY; ty <= endY; ty++ {
			if g.IsSolid(tx, ty) {
				b.X = float64(tx)*g.TileSize - b.W
				b.VX = 0
				return true
			}
		}
	case b.VX < 0:
		tx := g.Cell(b.X)
		for ty := startY; ty <= endY; ty++ {
			if g.IsSolid(tx, ty) {
				b.X = float64(tx+1) * g.TileSize
				b.VX = 0
				return true
			}
		}
	}
	return false
}

// MoveVertical advances b along y and resolves against solid cells.
// OnGround is cleared first and only set again by a downward hit, or by
// resting flush on solid ground with no vertical velocity.
func (g *Grid) MoveVertical(b *Body, dt float64) bool {
	b.OnGround = false
	b.Y += b.VY * dt
	startX, endX := g.solidSpan(b.X, b.W)

	switch {
	case b.VY > 0:
		ty := g.Cell(b.Y + b.H - edgeEps)
		for tx := startX; tx <= endX; tx++ {
			if g.IsSolid(tx, ty) {
				b.Y = float64(ty)*g.TileSize - b.H
				b.VY = 0
				b.OnGround = true
				return true
			}
		}
	case b.VY < 0:
		ty := g.Cell(b.Y)
		for tx := startX; tx <= endX; tx++ {
			if g.IsSolid(tx, ty) {
				b.Y = float64(ty+1) * g.TileSize
				b.VY = 0
				return true
			}
		}
	case b.VY == 0:
		b.OnGround = g.restingOn(b, startX, endX)
	}
	return false
}

func (g *Grid) restingOn(b *Body, startX, endX int) bool {
	bottom := b.Y + b.H
	ty := g.Cell(bottom)
	if float64(ty)*g.TileSize != bottom {
		return false
	}
	for tx := startX; tx <= endX; tx++ {
		if g.IsSolid(tx, ty) {
			return true
		}
	}
	return false
}

// RegionMatches reports whether any cell under r satisfies pred.
func (g *Grid) RegionMatches(r core.RectF, pred func(kind TileKind) bool) bool {
	startX, endX := g.span(r.X, r.W)
	startY, endY := g.span(r.Y, r.H)
	for ty := startY; ty <= endY; ty++ {
		for tx := startX; tx <= endX; tx++ {
			if pred(g.Kind(tx, ty)) {
				return true
			}
		}
	}
	return false
}

// Touches reports whether r covers any cell with the given trait set.
func (g *Grid) Touches(r core.RectF, want func(Traits) bool) bool {
	return g.RegionMatches(r, func(k TileKind) bool { return want(Classify(k)) })
}

// LineOfSight samples the segment from a to b every step pixels, skipping
// both endpoints, and fails on the first sample inside a solid cell.
func (g *Grid) LineOfSight(a, b core.Vec, step float64) bool {
	d := b.Sub(a)
	steps := int(math.Floor(d.Len() / step))
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		p := a.Add(d.Scale(t))
		if g.IsSolid(g.Cell(p.X), g.Cell(p.Y)) {
			return false
		}
	}
	return true
}

// Predicates for Touches.

func SolidTrait(t Traits) bool  { return t.Solid }
func HazardTrait(t Traits) bool { return t.Hazard }
func LiquidTrait(t Traits) bool { return t.Liquid }

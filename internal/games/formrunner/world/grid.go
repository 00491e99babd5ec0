// Package world holds the tile grid terrain and the collision queries run against it.
package world

import (
	"math"
)

// TileKind is the closed set of terrain cell types.
type TileKind uint8

const (
	Empty TileKind = iota
	Solid
	Diggable
	Breakable
	Spike
	Lava
	Liquid
	Exit

	tileKindCount
)

// Traits describes how a tile kind interacts with bodies.
type Traits struct {
	Solid  bool // blocks movement
	Hazard bool // costs a life on contact
	Liquid bool // swimmable, drowns most forms
}

var traits = [tileKindCount]Traits{
	Empty:     {},
	Solid:     {Solid: true},
	Diggable:  {Solid: true},
	Breakable: {Solid: true},
	Spike:     {Hazard: true},
	Lava:      {Hazard: true},
	Liquid:    {Liquid: true},
	Exit:      {},
}

var kindNames = [tileKindCount]string{
	Empty:     "empty",
	Solid:     "solid",
	Diggable:  "diggable",
	Breakable: "breakable",
	Spike:     "spike",
	Lava:      "lava",
	Liquid:    "liquid",
	Exit:      "exit",
}

// Classify returns the traits of a tile kind. Unknown kinds classify as Solid.
func Classify(k TileKind) Traits {
	if k >= tileKindCount {
		return traits[Solid]
	}
	return traits[k]
}

// String returns the lower-case name of the kind.
func (k TileKind) String() string {
	if k >= tileKindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds returns every tile kind in declaration order.
func Kinds() []TileKind {
	out := make([]TileKind, 0, tileKindCount)
	for k := Empty; k < tileKindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind resolves a kind from its String name.
func ParseKind(name string) (TileKind, bool) {
	for k := Empty; k < tileKindCount; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return Empty, false
}

// Grid is a mutable width x height terrain of square cells.
// Queries outside the grid always see Solid.
type Grid struct {
	Width    int
	Height   int
	TileSize float64

	cells []TileKind
}

// NewGrid creates an all-Empty grid.
func NewGrid(width, height int, tileSize float64) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		cells:    make([]TileKind, width*height),
	}
}

// InBounds reports whether a cell lies inside the grid.
func (g *Grid) InBounds(tx, ty int) bool {
	return tx >= 0 && ty >= 0 && tx < g.Width && ty < g.Height
}

// Kind returns the cell kind, or Solid outside the grid.
func (g *Grid) Kind(tx, ty int) TileKind {
	if !g.InBounds(tx, ty) {
		return Solid
	}
	return g.cells[ty*g.Width+tx]
}

// Set writes a cell. Writes outside the grid are ignored.
func (g *Grid) Set(tx, ty int, kind TileKind) {
	if !g.InBounds(tx, ty) {
		return
	}
	g.cells[ty*g.Width+tx] = kind
}

// IsSolid reports whether the cell blocks movement.
func (g *Grid) IsSolid(tx, ty int) bool {
	return Classify(g.Kind(tx, ty)).Solid
}

// Dig clears a Diggable cell and reports whether it did.
func (g *Grid) Dig(tx, ty int) bool {
	return g.clear(tx, ty, Diggable)
}

// Break clears a Breakable cell and reports whether it did.
func (g *Grid) Break(tx, ty int) bool {
	return g.clear(tx, ty, Breakable)
}

func (g *Grid) clear(tx, ty int, want TileKind) bool {
	if !g.InBounds(tx, ty) || g.cells[ty*g.Width+tx] != want {
		return false
	}
	g.cells[ty*g.Width+tx] = Empty
	return true
}

// Cell converts a pixel coordinate to a cell index.
func (g *Grid) Cell(p float64) int {
	return int(math.Floor(p / g.TileSize))
}

// TileAt returns the kind of the cell containing a pixel position.
func (g *Grid) TileAt(px, py float64) TileKind {
	return g.Kind(g.Cell(px), g.Cell(py))
}

// PixelWidth returns the grid width in pixels.
func (g *Grid) PixelWidth() float64 {
	return float64(g.Width) * g.TileSize
}

// PixelHeight returns the grid height in pixels.
func (g *Grid) PixelHeight() float64 {
	return float64(g.Height) * g.TileSize
}

// Count returns how many cells hold the given kind.
func (g *Grid) Count(kind TileKind) int {
	n := 0
	for _, c := range g.cells {
		if c == kind {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	c.cells = append([]TileKind(nil), g.cells...)
	return &c
}

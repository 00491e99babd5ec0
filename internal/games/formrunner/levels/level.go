// Package levels authors tile grids and entity rosters from paint descriptions.
// The sim package depends on levels; levels only depends on world.
package levels

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/formrunner/internal/games/formrunner/world"
)

var (
	// ErrUnknownLevel is returned when no level has the requested ID.
	ErrUnknownLevel = errors.New("unknown level")
	// ErrInvalidBlueprint is wrapped by every authoring failure.
	ErrInvalidBlueprint = errors.New("invalid blueprint")
)

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Level is a built grid plus the cells where entities start.
// Entity sizes and pixel offsets are applied by the simulation.
type Level struct {
	ID   string
	Name string

	Grid    *world.Grid
	Spawn   Point
	Fruits  []Point
	Enemies []Point
	Hooks   []Point
}

type marker uint8

const (
	markFruit marker = iota + 1
	markEnemy
	markHook
)

// Builder paints a grid and places markers. Markers occupy one cell each;
// placing a second marker on a cell replaces the first.
type Builder struct {
	width, height int

	cells    []world.TileKind
	markers  map[Point]marker
	spawn    Point
	hasSpawn bool
}

// NewBuilder creates an all-Empty canvas.
func NewBuilder(width, height int) *Builder {
	return &Builder{
		width:   width,
		height:  height,
		cells:   make([]world.TileKind, max(0, width*height)),
		markers: make(map[Point]marker),
	}
}

func (b *Builder) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.width && y < b.height
}

// Set paints one cell. Cells outside the canvas are ignored.
func (b *Builder) Set(x, y int, kind world.TileKind) {
	if b.inBounds(x, y) {
		b.cells[y*b.width+x] = kind
	}
}

// Fill paints a w x h rectangle with its top-left corner at (x, y).
func (b *Builder) Fill(x, y, w, h int, kind world.TileKind) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			b.Set(xx, yy, kind)
		}
	}
}

// Exit paints an exit cell.
func (b *Builder) Exit(x, y int) { b.Set(x, y, world.Exit) }

// Spawn sets the player start cell.
func (b *Builder) Spawn(x, y int) {
	b.spawn = Point{x, y}
	b.hasSpawn = true
}

// Fruit places a pickup.
func (b *Builder) Fruit(x, y int) { b.mark(x, y, markFruit) }

// Enemy places a patrol walker.
func (b *Builder) Enemy(x, y int) { b.mark(x, y, markEnemy) }

// Hook places a hook anchor.
func (b *Builder) Hook(x, y int) { b.mark(x, y, markHook) }

func (b *Builder) mark(x, y int, m marker) {
	b.markers[Point{x, y}] = m
}

// Build validates the canvas and produces a Level. Marker cells are cleared
// to Empty and rosters are ordered row by row, left to right.
func (b *Builder) Build(id, name string, tileSize float64) (*Level, error) {
	if b.width <= 0 || b.height <= 0 {
		return nil, fmt.Errorf("levels: %s: size %dx%d: %w", id, b.width, b.height, ErrInvalidBlueprint)
	}
	if !b.hasSpawn {
		return nil, fmt.Errorf("levels: %s: no spawn point: %w", id, ErrInvalidBlueprint)
	}
	if !b.inBounds(b.spawn.X, b.spawn.Y) {
		return nil, fmt.Errorf("levels: %s: spawn %v outside the grid: %w", id, b.spawn, ErrInvalidBlueprint)
	}

	grid := world.NewGrid(b.width, b.height, tileSize)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			grid.Set(x, y, b.cells[y*b.width+x])
		}
	}
	if grid.Count(world.Exit) == 0 {
		return nil, fmt.Errorf("levels: %s: no exit: %w", id, ErrInvalidBlueprint)
	}

	lvl := &Level{ID: id, Name: name, Grid: grid, Spawn: b.spawn}
	grid.Set(b.spawn.X, b.spawn.Y, world.Empty)

	points := make([]Point, 0, len(b.markers))
	for p := range b.markers {
		if !b.inBounds(p.X, p.Y) {
			return nil, fmt.Errorf("levels: %s: marker %v outside the grid: %w", id, p, ErrInvalidBlueprint)
		}
		points = append(points, p)
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})

	for _, p := range points {
		grid.Set(p.X, p.Y, world.Empty)
		switch b.markers[p] {
		case markFruit:
			lvl.Fruits = append(lvl.Fruits, p)
		case markEnemy:
			lvl.Enemies = append(lvl.Enemies, p)
		case markHook:
			lvl.Hooks = append(lvl.Hooks, p)
		}
	}
	return lvl, nil
}

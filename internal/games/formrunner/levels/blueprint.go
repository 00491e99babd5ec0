package levels

import (
	"fmt"

	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels/formats"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/world"
)

// Blueprint is a declarative level: paint operations, then ASCII rows,
// then explicit markers, applied in that order.
type Blueprint struct {
	ID       string
	Name     string
	Metadata map[string]string
	FilePath string

	src formats.YAMLBlueprint
}

// ParseBlueprint decodes a YAML blueprint.
func ParseBlueprint(data []byte) (Blueprint, error) {
	src, err := formats.ParseYAML(data)
	if err != nil {
		return Blueprint{}, fmt.Errorf("levels: %v: %w", err, ErrInvalidBlueprint)
	}
	name := src.Name
	if name == "" {
		name = src.ID
	}
	return Blueprint{ID: src.ID, Name: name, Metadata: src.Metadata, src: src}, nil
}

// Size returns the declared size, falling back to the ASCII rows' extent.
func (bp Blueprint) Size() (int, int) {
	w, h := bp.src.Size.W, bp.src.Size.H
	rw, rh := RowsSize(bp.src.Rows)
	if w == 0 {
		w = rw
	}
	if h == 0 {
		h = rh
	}
	return w, h
}

// Build paints a fresh Level. Each call returns an independent grid, so a
// restart simply builds again.
func (bp Blueprint) Build(tileSize float64) (*Level, error) {
	w, h := bp.Size()
	b := NewBuilder(w, h)

	for i, op := range bp.src.Paint {
		kind, ok := world.ParseKind(op.Tile)
		if !ok {
			return nil, fmt.Errorf("levels: %s: paint[%d]: unknown tile %q: %w", bp.ID, i, op.Tile, ErrInvalidBlueprint)
		}
		switch op.Op {
		case "fill":
			b.Fill(op.X, op.Y, op.W, op.H, kind)
		case "set":
			b.Set(op.X, op.Y, kind)
		default:
			return nil, fmt.Errorf("levels: %s: paint[%d]: unknown op %q: %w", bp.ID, i, op.Op, ErrInvalidBlueprint)
		}
	}

	if rw, _ := RowsSize(bp.src.Rows); rw > w || len(bp.src.Rows) > h {
		return nil, fmt.Errorf("levels: %s: rows exceed size %dx%d: %w", bp.ID, w, h, ErrInvalidBlueprint)
	}
	if err := b.Rows(0, 0, bp.src.Rows); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", bp.ID, err)
	}

	if s := bp.src.Spawn; s != nil {
		b.Spawn(s.X, s.Y)
	}
	for _, p := range bp.src.Exits {
		if !b.inBounds(p.X, p.Y) {
			return nil, fmt.Errorf("levels: %s: exit %v outside the grid: %w", bp.ID, p, ErrInvalidBlueprint)
		}
		b.Exit(p.X, p.Y)
	}
	for _, p := range bp.src.Fruits {
		b.Fruit(p.X, p.Y)
	}
	for _, p := range bp.src.Enemies {
		b.Enemy(p.X, p.Y)
	}
	for _, p := range bp.src.Hooks {
		b.Hook(p.X, p.Y)
	}

	return b.Build(bp.ID, bp.Name, tileSize)
}

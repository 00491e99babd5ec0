package levels

import (
	"fmt"

	"github.com/vovakirdan/formrunner/internal/games/formrunner/world"
)

// Glyphs used by ASCII rows:
//
//	. or space  empty      # solid      D diggable   B breakable
//	S spike     L lava     W liquid     E exit
//	P spawn     C fruit    M enemy      H hook anchor
var tileGlyphs = map[rune]world.TileKind{
	'.': world.Empty,
	' ': world.Empty,
	'#': world.Solid,
	'D': world.Diggable,
	'B': world.Breakable,
	'S': world.Spike,
	'L': world.Lava,
	'W': world.Liquid,
	'E': world.Exit,
}

// Glyph returns the ASCII row character for a tile kind.
func Glyph(kind world.TileKind) rune {
	switch kind {
	case world.Empty:
		return '.'
	case world.Solid:
		return '#'
	case world.Diggable:
		return 'D'
	case world.Breakable:
		return 'B'
	case world.Spike:
		return 'S'
	case world.Lava:
		return 'L'
	case world.Liquid:
		return 'W'
	case world.Exit:
		return 'E'
	default:
		return '?'
	}
}

// Rows paints ASCII rows with their top-left corner at (x, y).
func (b *Builder) Rows(x, y int, rows []string) error {
	for dy, row := range rows {
		dx := 0
		for _, r := range row {
			cx, cy := x+dx, y+dy
			dx++

			if kind, ok := tileGlyphs[r]; ok {
				b.Set(cx, cy, kind)
				continue
			}
			switch r {
			case 'P':
				b.Spawn(cx, cy)
			case 'C':
				b.Fruit(cx, cy)
			case 'M':
				b.Enemy(cx, cy)
			case 'H':
				b.Hook(cx, cy)
			default:
				return fmt.Errorf("levels: row %d col %d: unknown glyph %q: %w", dy, dx-1, r, ErrInvalidBlueprint)
			}
		}
	}
	return nil
}

// RowsSize returns the width of the widest row and the row count.
func RowsSize(rows []string) (int, int) {
	w := 0
	for _, row := range rows {
		w = max(w, len([]rune(row)))
	}
	return w, len(rows)
}

// FromRows builds a level entirely from ASCII rows.
func FromRows(id string, tileSize float64, rows ...string) (*Level, error) {
	w, h := RowsSize(rows)
	b := NewBuilder(w, h)
	if err := b.Rows(0, 0, rows); err != nil {
		return nil, err
	}
	return b.Build(id, id, tileSize)
}

// MustFromRows is FromRows that panics on error, for tests and built-ins.
func MustFromRows(id string, tileSize float64, rows ...string) *Level {
	lvl, err := FromRows(id, tileSize, rows...)
	if err != nil {
		panic(err)
	}
	return lvl
}

package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels/formats"
)

// Loader handles loading blueprints from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all blueprint files.
// Unparseable files are reported in skipped; the result is sorted by ID.
func (l *Loader) LoadAll() (levels []Blueprint, skipped []error, err error) {
	err = filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsBlueprintFile(path) {
			return nil
		}

		bp, err := LoadFile(path)
		if err != nil {
			skipped = append(skipped, err)
			return nil
		}
		levels = append(levels, bp)
		return nil
	})
	if err != nil {
		return nil, skipped, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, skipped, nil
}

// LoadByID loads a specific blueprint by ID.
func (l *Loader) LoadByID(id string) (Blueprint, error) {
	levels, _, err := l.LoadAll()
	if err != nil {
		return Blueprint{}, err
	}
	for _, bp := range levels {
		if bp.ID == id {
			return bp, nil
		}
	}
	return Blueprint{}, fmt.Errorf("levels: %q in %s: %w", id, l.Root, ErrUnknownLevel)
}

// LoadFile loads a single blueprint file.
func LoadFile(path string) (Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Blueprint{}, fmt.Errorf("levels: reading file %s: %w", path, err)
	}
	bp, err := ParseBlueprint(data)
	if err != nil {
		return Blueprint{}, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	bp.FilePath = path
	return bp, nil
}

// IsBlueprintFile reports whether the path has a supported extension.
func IsBlueprintFile(path string) bool {
	return slices.Contains(formats.FormatExtensions(), strings.ToLower(filepath.Ext(path)))
}

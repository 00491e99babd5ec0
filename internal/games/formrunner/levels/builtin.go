package levels

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultLevel is played when no level is named.
const DefaultLevel = "trail"

// Builtin returns every embedded blueprint sorted by ID.
func Builtin() []Blueprint {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		panic(fmt.Sprintf("levels: reading embedded levels: %v", err))
	}

	var out []Blueprint
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := path.Join("builtin", e.Name())
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("levels: reading %s: %v", name, err))
		}
		bp, err := ParseBlueprint(data)
		if err != nil {
			panic(fmt.Sprintf("levels: parsing %s: %v", name, err))
		}
		bp.FilePath = name
		out = append(out, bp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup finds a blueprint by ID among the built-ins and extra sets.
// Later sets shadow earlier ones.
func Lookup(id string, extra ...[]Blueprint) (Blueprint, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = DefaultLevel
	}
	sets := append([][]Blueprint{Builtin()}, extra...)
	for i := len(sets) - 1; i >= 0; i-- {
		for _, bp := range sets[i] {
			if bp.ID == id {
				return bp, nil
			}
		}
	}
	return Blueprint{}, fmt.Errorf("levels: %q: %w", id, ErrUnknownLevel)
}

// Package formats provides level blueprint file parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLBlueprint represents the YAML structure of a blueprint file.
type YAMLBlueprint struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Size     YAMLSize          `yaml:"size,omitempty"`
	Paint    []YAMLOp          `yaml:"paint,omitempty"`
	Rows     []string          `yaml:"rows,omitempty"`
	Spawn    *YAMLPoint        `yaml:"spawn,omitempty"`
	Exits    []YAMLPoint       `yaml:"exits,omitempty"`
	Fruits   []YAMLPoint       `yaml:"fruits,omitempty"`
	Enemies  []YAMLPoint       `yaml:"enemies,omitempty"`
	Hooks    []YAMLPoint       `yaml:"hooks,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions in cells.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLOp is one paint operation. Op is "fill" (default) or "set";
// W and H default to 1.
type YAMLOp struct {
	Op   string `yaml:"op,omitempty"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
	W    int    `yaml:"w,omitempty"`
	H    int    `yaml:"h,omitempty"`
	Tile string `yaml:"tile"`
}

// YAMLPoint is a cell coordinate.
type YAMLPoint struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// ParseYAML decodes a blueprint file. Semantic checks happen when the
// blueprint is built.
func ParseYAML(data []byte) (YAMLBlueprint, error) {
	var bp YAMLBlueprint
	if err := yaml.Unmarshal(data, &bp); err != nil {
		return YAMLBlueprint{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if bp.ID == "" {
		return YAMLBlueprint{}, fmt.Errorf("yaml: missing id")
	}
	for i := range bp.Paint {
		op := &bp.Paint[i]
		if op.Op == "" {
			op.Op = "fill"
		}
		if op.W == 0 {
			op.W = 1
		}
		if op.H == 0 {
			op.H = 1
		}
	}
	return bp, nil
}

// EncodeYAML writes a blueprint back out.
func EncodeYAML(bp YAMLBlueprint) ([]byte, error) {
	return yaml.Marshal(bp)
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}

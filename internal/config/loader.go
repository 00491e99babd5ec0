package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched for in the config directories.
const ConfigFile = "formrunner.yaml"

// LoadFormRunner loads the simulation tuning.
// Search order: customPath -> ~/.formrunner/configs/formrunner.yaml -> ./configs/formrunner.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial file only overrides the keys it names.
func LoadFormRunner(customPath string) (FormRunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultFormRunnerConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultFormRunnerConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := UserConfigPath(ConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", ConfigFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultFormRunnerYAML)
	if err != nil {
		return DefaultFormRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the hard-coded defaults and validates the result.
func Parse(data []byte) (FormRunnerConfig, error) {
	cfg := DefaultFormRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	dir := UserDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// UserDir returns ~/.formrunner, or empty if home is unavailable.
func UserDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".formrunner")
}

// Preset is a named difficulty adjustment applied after loading.
type Preset string

const (
	PresetEasy   Preset = "easy"
	PresetNormal Preset = "normal"
	PresetHard   Preset = "hard"
)

// ParsePreset converts a flag value to a Preset.
func ParsePreset(s string) (Preset, error) {
	switch p := Preset(strings.ToLower(strings.TrimSpace(s))); p {
	case PresetEasy, PresetNormal, PresetHard:
		return p, nil
	case "":
		return PresetNormal, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyFormRunnerPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyFormRunnerPreset(cfg *FormRunnerConfig, preset Preset) {
	switch preset {
	case PresetEasy:
		cfg.Session.Lives += 2
		cfg.Session.Timer *= 1.25
		cfg.Enemies.PatrolSpeed *= 0.8
		cfg.Enemies.WaterPatrolSpeed *= 0.8
	case PresetHard:
		cfg.Session.Lives = max(1, cfg.Session.Lives-2)
		cfg.Session.Timer *= 0.75
		cfg.Enemies.PatrolSpeed *= 1.25
		cfg.Enemies.WaterPatrolSpeed *= 1.25
	}
}

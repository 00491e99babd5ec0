package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(defaultFormRunnerYAML)
	if err != nil {
		t.Fatalf("Parse(embedded) error = %v", err)
	}
	def := DefaultFormRunnerConfig()

	if cfg.World != def.World {
		t.Errorf("World = %+v, expected %+v", cfg.World, def.World)
	}
	if cfg.Session != def.Session {
		t.Errorf("Session = %+v, expected %+v", cfg.Session, def.Session)
	}
	if cfg.Scoring != def.Scoring {
		t.Errorf("Scoring = %+v, expected %+v", cfg.Scoring, def.Scoring)
	}
	if cfg.Hook != def.Hook {
		t.Errorf("Hook = %+v, expected %+v", cfg.Hook, def.Hook)
	}
	if cfg.Enemies != def.Enemies {
		t.Errorf("Enemies = %+v, expected %+v", cfg.Enemies, def.Enemies)
	}
	if cfg.Projectile != def.Projectile {
		t.Errorf("Projectile = %+v, expected %+v", cfg.Projectile, def.Projectile)
	}
	if cfg.Player.JumpImpulse != def.Player.JumpImpulse || cfg.Player.DrownLimit != def.Player.DrownLimit {
		t.Errorf("Player = %+v, expected %+v", cfg.Player, def.Player)
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("session:\n  lives: 9\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Session.Lives != 9 {
		t.Errorf("Lives = %d, expected 9", cfg.Session.Lives)
	}
	if cfg.Session.Timer != 240 {
		t.Errorf("Timer = %v, expected default 240", cfg.Session.Timer)
	}
	if cfg.World.TileSize != 32 {
		t.Errorf("TileSize = %v, expected default 32", cfg.World.TileSize)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FormRunnerConfig)
		valid  bool
	}{
		{"defaults", func(*FormRunnerConfig) {}, true},
		{"zero tile", func(c *FormRunnerConfig) { c.World.TileSize = 0 }, false},
		{"negative dt", func(c *FormRunnerConfig) { c.World.MaxDT = -1 }, false},
		{"no lives", func(c *FormRunnerConfig) { c.Session.Lives = 0 }, false},
		{"negative jumps", func(c *FormRunnerConfig) { c.Player.MaxJumps = -1 }, false},
		{"zero sight step", func(c *FormRunnerConfig) { c.Hook.SightStep = 0 }, false},
		{"fall skips a tile", func(c *FormRunnerConfig) { c.Player.MaxFallSpeed = 1000 }, false},
		{"longer step skips a tile", func(c *FormRunnerConfig) { c.World.MaxDT = 0.05 }, false},
		{"enemy fall uncapped", func(c *FormRunnerConfig) { c.Enemies.MaxFallSpeed = 0 }, false},
		{"fall just under a tile", func(c *FormRunnerConfig) { c.Player.MaxFallSpeed = 960 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultFormRunnerConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() error = %v, expected nil", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadFormRunnerCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	if err := os.WriteFile(path, []byte("player:\n  max_jumps: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFormRunner(path)
	if err != nil {
		t.Fatalf("LoadFormRunner() error = %v", err)
	}
	if cfg.Player.MaxJumps != 2 {
		t.Errorf("MaxJumps = %d, expected 2", cfg.Player.MaxJumps)
	}

	if _, err := LoadFormRunner(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadFormRunner(missing) should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("world:\n  tile_size: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFormRunner(bad); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadFormRunner(bad) error = %v, expected ErrInvalidConfig", err)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset Preset
		lives  int
		timer  float64
		patrol float64
	}{
		{PresetEasy, 7, 300, 46.4},
		{PresetNormal, 5, 240, 58},
		{PresetHard, 3, 180, 72.5},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultFormRunnerConfig()
			ApplyFormRunnerPreset(&cfg, tc.preset)
			if cfg.Session.Lives != tc.lives {
				t.Errorf("Lives = %d, expected %d", cfg.Session.Lives, tc.lives)
			}
			if cfg.Session.Timer != tc.timer {
				t.Errorf("Timer = %v, expected %v", cfg.Session.Timer, tc.timer)
			}
			if diff := cfg.Enemies.PatrolSpeed - tc.patrol; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("PatrolSpeed = %v, expected %v", cfg.Enemies.PatrolSpeed, tc.patrol)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    Preset
		wantErr bool
	}{
		{"easy", PresetEasy, false},
		{" HARD ", PresetHard, false},
		{"", PresetNormal, false},
		{"nightmare", "", true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

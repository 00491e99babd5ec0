// Package formrunner adapts the form runner simulation to the game
// platform: it registers every built-in level, turns host frames into
// simulation ticks, follows the player with a camera and draws the world
// into a character screen.
package formrunner

import (
	"fmt"

	"github.com/vovakirdan/formrunner/internal/config"
	"github.com/vovakirdan/formrunner/internal/core"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/sim"
	"github.com/vovakirdan/formrunner/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset = config.PresetNormal

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names fall back to normal.
func SetDifficultyPreset(name string) {
	p, err := config.ParsePreset(name)
	if err != nil {
		p = config.PresetNormal
	}
	difficultyPreset = p
}

// LoadConfig loads the tuning from the configured path with the preset applied.
func LoadConfig() (config.FormRunnerConfig, error) {
	cfg, err := config.LoadFormRunner(configPath)
	config.ApplyFormRunnerPreset(&cfg, difficultyPreset)
	return cfg, err
}

func init() {
	for _, bp := range levels.Builtin() {
		info := registry.GameInfo{ID: bp.ID, Title: bp.Name, Summary: bp.Metadata["summary"]}
		registry.Register(info, func() registry.Game {
			return New(bp)
		})
	}
}

// hudRows is the number of screen rows reserved above and below the playfield.
const hudRows = 2

// Game plays one level blueprint.
type Game struct {
	bp        levels.Blueprint
	cfg       config.FormRunnerConfig
	hasConfig bool
	cfgErr    error

	session *sim.Session
	camera  Camera
	runtime core.RuntimeConfig
	paused  bool

	// err is set when the blueprint could not be built; the game then
	// only renders the error.
	err error
}

// New creates a game for a blueprint. The tuning is loaded on Reset.
func New(bp levels.Blueprint) *Game {
	return &Game{bp: bp}
}

// NewWithConfig creates a game with explicit tuning, skipping the loader.
func NewWithConfig(bp levels.Blueprint, cfg config.FormRunnerConfig) *Game {
	return &Game{bp: bp, cfg: cfg, hasConfig: true}
}

// ID returns the level identifier.
func (g *Game) ID() string {
	return g.bp.ID
}

// Title returns the level name.
func (g *Game) Title() string {
	return g.bp.Name
}

// Session exposes the running simulation for hosts and tests.
// It is nil when the level failed to build.
func (g *Game) Session() *sim.Session {
	return g.session
}

// Err returns the level build error, if any.
func (g *Game) Err() error {
	return g.err
}

// ConfigErr returns why the tuning file was not used. The game then runs
// on the defaults.
func (g *Game) ConfigErr() error {
	return g.cfgErr
}

// Reset builds the level and starts a fresh session.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.runtime = rc
	g.paused = false
	g.err = nil

	if !g.hasConfig {
		// A broken config file still leaves usable defaults in cfg.
		g.cfg, g.cfgErr = LoadConfig()
		g.hasConfig = true
	}

	lvl, err := g.bp.Build(g.cfg.World.TileSize)
	if err != nil {
		g.err = err
		g.session = nil
		return
	}
	g.session = sim.New(lvl, g.cfg, rc.Seed)
	g.snapCamera()
}

// Reload swaps in a new blueprint and restarts on it. Used by hot reload.
func (g *Game) Reload(bp levels.Blueprint) error {
	if _, err := bp.Build(g.cfg.World.TileSize); err != nil {
		return fmt.Errorf("formrunner: reload %s: %w", bp.ID, err)
	}
	g.bp = bp
	g.Reset(g.runtime)
	return nil
}

// Resize updates the screen size without restarting the level.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	if g.session != nil {
		g.snapCamera()
	}
}

// Step advances the simulation by dt seconds. Pause is handled here and
// never reaches the session; everything else is forwarded.
func (g *Game) Step(in core.InputFrame, dt float64) core.StepResult {
	if g.session == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.session.State == sim.StatePlaying {
		g.paused = !g.paused
	}
	if g.paused {
		if in.Has(core.ActionRestart) {
			g.paused = false
		} else {
			return core.StepResult{State: g.State()}
		}
	}

	events := g.session.Tick(in, dt)
	g.followCamera(dt)

	var out []core.Event
	if len(events) > 0 {
		out = make([]core.Event, 0, len(events))
		for _, e := range events {
			out = append(out, core.Event{Name: e.Kind.String(), KeyVals: e.KeyVals()})
		}
	}
	return core.StepResult{State: g.State(), Events: out}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := g.session
	if s == nil {
		return core.GameState{GameOver: true}
	}
	return core.GameState{
		Score:    s.Score,
		GameOver: s.State != sim.StatePlaying,
		Won:      s.State == sim.StateWon,
		Paused:   g.paused,
		Fruits:   s.Fruits,
		Lives:    s.Lives,
		Elapsed:  s.Elapsed,
	}
}

// view returns the playfield size in pixels for the current screen.
func (g *Game) view() (float64, float64) {
	t := g.cfg.World.TileSize
	cols := max(0, g.runtime.ScreenW) / cellCols
	rows := max(0, g.runtime.ScreenH-2*hudRows)
	return float64(cols) * t, float64(rows) * t
}

func (g *Game) snapCamera() {
	vw, vh := g.view()
	ww, wh := g.session.PixelBounds()
	g.camera.Snap(g.session.Player.Center(), vw, vh, ww, wh)
}

func (g *Game) followCamera(dt float64) {
	vw, vh := g.view()
	ww, wh := g.session.PixelBounds()
	g.camera.Follow(g.session.Player.Center(), vw, vh, ww, wh, dt)
}

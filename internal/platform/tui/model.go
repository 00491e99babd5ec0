package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/formrunner/internal/config"
	"github.com/vovakirdan/formrunner/internal/core"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels"
	"github.com/vovakirdan/formrunner/internal/registry"
	"github.com/vovakirdan/formrunner/internal/storage"
)

// resizer is implemented by games that keep their state across resizes.
type resizer interface {
	Resize(w, h int)
}

// reloader is implemented by games that can swap their level in place.
type reloader interface {
	Reload(bp levels.Blueprint) error
}

// configReporter is implemented by games that fall back to default
// tuning when their config file is unusable.
type configReporter interface {
	ConfigErr() error
}

// Options carries optional collaborators of a game model.
type Options struct {
	Logger  *log.Logger
	Watcher *levels.Watcher
	Player  string // recorded with saved runs
}

// Model is the Bubble Tea model for playing one level.
type Model struct {
	game    registry.Game
	screen  *core.Screen
	store   *storage.Store
	logger  *log.Logger
	watcher *levels.Watcher
	player  string
	config  core.RuntimeConfig

	keys    GameKeyMap
	help    help.Model
	held    *heldKeys
	tracker *core.InputTracker

	loop      int64
	embedded  bool // hosted by a SessionModel; back does not quit
	lastTick  time.Time
	gameState core.GameState
	runSaved  bool
	quitting  bool
	back      bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		game:    game,
		screen:  core.NewScreen(cfg.ScreenW, gameRows(cfg.ScreenH)),
		store:   store,
		logger:  logger.With("level", game.ID()),
		watcher: opts.Watcher,
		player:  opts.Player,
		config:  cfg,
		keys:    DefaultGameKeyMap(),
		help:    h,
		held:    newHeldKeys(),
		tracker: core.NewInputTracker(),
		loop:    time.Now().UnixNano(),
	}
}

// gameRows leaves the last terminal row for the key help.
func gameRows(h int) int {
	return max(1, h-1)
}

// Init starts the level and the tick loop.
func (m Model) Init() tea.Cmd {
	rc := m.config
	rc.ScreenH = gameRows(rc.ScreenH)
	m.game.Reset(rc)
	if cr, ok := m.game.(configReporter); ok {
		if err := cr.ConfigErr(); err != nil {
			m.logger.Warn("using default tuning", "err", err)
		}
	}
	m.logger.Info("level started", "seed", rc.Seed)

	cmds := []tea.Cmd{tickCmd(m.config.TickRate, m.loop)}
	if m.watcher != nil {
		cmds = append(cmds, watchCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Loop != m.loop || m.back {
			return m, nil
		}
		return m.handleTick(msg.At)

	case levelChangedMsg:
		m.reload(msg.path)
		return m, watchCmd(m.watcher)

	case watchErrMsg:
		m.logger.Warn("level watcher", "err", msg.err)
		return m, watchCmd(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveRun(storage.OutcomeQuit, m.gameState)
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Shot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "err", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.saveRun(storage.OutcomeQuit, m.gameState)
		m.back = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	if a := m.keys.Action(msg); a != core.ActionNone {
		m.held.Press(a, time.Now())
	}
	return m, nil
}

// handleResize keeps the level running at the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	rows := gameRows(msg.Height)
	m.screen.Resize(msg.Width, rows)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, rows)
	} else if !m.gameState.GameOver {
		rc := m.config
		rc.ScreenH = rows
		m.game.Reset(rc)
	}
	return m, nil
}

// handleTick advances the game by the wall-clock time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := frameDelta(m.lastTick, now, m.config.TickRate)
	m.lastTick = now

	prev := m.gameState
	in := m.tracker.Frame(m.held.Held(now))
	for _, a := range m.held.Taps() {
		in.SetState(a, core.ButtonPressed)
	}
	res := m.game.Step(in, dt)
	m.gameState = res.State

	for _, e := range res.Events {
		m.logEvent(e)
		if e.Name == "restart" && !prev.GameOver {
			m.saveRun(storage.OutcomeQuit, prev)
		}
	}

	switch {
	case m.gameState.GameOver && !m.runSaved:
		outcome := storage.OutcomeGameOver
		if m.gameState.Won {
			outcome = storage.OutcomeWon
		}
		m.saveRun(outcome, m.gameState)
		m.runSaved = true
	case !m.gameState.GameOver:
		m.runSaved = false
	}

	return m, tickCmd(m.config.TickRate, m.loop)
}

func (m Model) logEvent(e core.Event) {
	switch e.Name {
	case "life_lost", "extra_life", "won", "game_over", "restart":
		m.logger.Info(e.Name, e.KeyVals...)
	default:
		m.logger.Debug(e.Name, e.KeyVals...)
	}
}

// saveRun records a run. Quit runs that scored nothing are not kept, nor
// are runs that never started (a level that failed to build).
func (m *Model) saveRun(outcome storage.Outcome, st core.GameState) {
	if m.store == nil || m.runSaved {
		return
	}
	if st.Score == 0 && (outcome == storage.OutcomeQuit || st.Elapsed == 0) {
		return
	}
	run := storage.Run{
		Level:     m.game.ID(),
		Score:     st.Score,
		Fruits:    st.Fruits,
		LivesLeft: st.Lives,
		Outcome:   outcome,
		Duration:  st.Elapsed,
		Seed:      m.config.Seed,
		Player:    m.player,
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Error("saving run", "err", err)
		return
	}
	m.logger.Info("run saved", "outcome", outcome, "score", st.Score)
}

// reload rebuilds the level from a changed blueprint file.
func (m *Model) reload(path string) {
	r, ok := m.game.(reloader)
	if !ok {
		return
	}
	bp, err := levels.LoadFile(path)
	if err != nil {
		m.logger.Warn("reload skipped", "path", path, "err", err)
		return
	}
	if err := r.Reload(bp); err != nil {
		m.logger.Warn("reload skipped", "path", path, "err", err)
		return
	}
	m.held.Reset()
	m.tracker.Reset()
	m.gameState = m.game.State()
	m.runSaved = false
	m.logger.Info("level reloaded", "path", path)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	base := config.UserDir()
	if base == "" {
		return "", fmt.Errorf("tui: no home directory for screenshots")
	}
	dir := filepath.Join(base, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the game and a one-line key help below it.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// IsQuitting reports whether the player quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the player left for the menu.
func (m Model) BackToMenu() bool {
	return m.back
}

// Run plays a game until the player quits or goes back.
// It reports whether the player asked for the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts Options) (bool, error) {
	p := tea.NewProgram(NewModel(game, store, cfg, opts), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(Model)
	return ok && m.BackToMenu(), nil
}

package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/formrunner/internal/config"
	"github.com/vovakirdan/formrunner/internal/core"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/world"
)

// Session owns one run through a level: terrain, entities and the rules
// that tie them together. It is not safe for concurrent use; a host must
// serialize Tick and every other mutation.
type Session struct {
	cfg   config.FormRunnerConfig
	level *levels.Level
	rng   *rand.Rand

	Grid        *world.Grid
	Player      Player
	Enemies     []Enemy
	Pickups     []Pickup
	Hooks       []core.Vec
	Projectiles []Projectile

	State    State
	Score    int
	Fruits   int
	Lives    int
	Timer    float64
	TimerMax float64
	Message  string
	ShowHelp bool

	// Ticks and Elapsed count simulated playing time since the last restart.
	Ticks   uint64
	Elapsed float64

	spawn      core.Vec
	messageAge float64
	events     []Event
}

// New starts a session on a built level. The level is kept pristine and
// copied on every restart. The seed drives enemy facing and pickup phase.
func New(lvl *levels.Level, cfg config.FormRunnerConfig, seed int64) *Session {
	s := &Session{
		cfg:   cfg,
		level: lvl,
		rng:   rand.New(rand.NewSource(seed)), //#nosec G404 -- gameplay randomness, not security
	}
	s.reset()
	return s
}

// Config returns the tuning the session runs with.
func (s *Session) Config() config.FormRunnerConfig { return s.cfg }

// Level returns the pristine level the session was built from.
func (s *Session) Level() *levels.Level { return s.level }

// Spawn returns the player's pixel start position.
func (s *Session) Spawn() core.Vec { return s.spawn }

func (s *Session) reset() {
	t := s.level.Grid.TileSize
	pc, ec := s.cfg.Player, s.cfg.Enemies

	s.Grid = s.level.Grid.Clone()
	s.spawn = core.V(
		float64(s.level.Spawn.X)*t+pc.SpawnInset,
		float64(s.level.Spawn.Y)*t-pc.SpawnLift,
	)
	s.Player = newPlayer(s.spawn, pc)

	s.Enemies = make([]Enemy, 0, len(s.level.Enemies))
	for _, c := range s.level.Enemies {
		dir := -1.0
		if s.rng.Float64() > 0.5 {
			dir = 1
		}
		s.Enemies = append(s.Enemies, Enemy{
			Body: world.Body{
				X:  float64(c.X)*t + ec.SpawnInset,
				Y:  float64(c.Y)*t - ec.SpawnLift,
				W:  ec.Width,
				H:  ec.Height,
				VX: ec.PatrolSpeed,
			},
			Dir:   dir,
			Alive: true,
		})
	}

	s.Pickups = make([]Pickup, 0, len(s.level.Fruits))
	for _, c := range s.level.Fruits {
		s.Pickups = append(s.Pickups, Pickup{
			Rect: core.NewRectF(float64(c.X)*t+t*0.22, float64(c.Y)*t+t*0.22, t*0.56, t*0.56),
			Bob:  s.rng.Float64() * 2 * math.Pi,
		})
	}

	s.Hooks = make([]core.Vec, 0, len(s.level.Hooks))
	for _, c := range s.level.Hooks {
		s.Hooks = append(s.Hooks, core.V((float64(c.X)+0.5)*t, (float64(c.Y)+0.5)*t))
	}

	s.Projectiles = nil
	s.State = StatePlaying
	s.Score = 0
	s.Fruits = 0
	s.Lives = s.cfg.Session.Lives
	s.TimerMax = s.cfg.Session.Timer
	s.Timer = s.TimerMax
	s.Message = ""
	s.messageAge = 0
	s.Ticks = 0
	s.Elapsed = 0
}

// Restart rebuilds the level, entities and counters. It is accepted in any state.
func (s *Session) Restart() {
	s.reset()
	s.emit(Event{Kind: EventRestart})
}

// ToggleHelp flips the help overlay flag. It works in any state.
func (s *Session) ToggleHelp() {
	s.ShowHelp = !s.ShowHelp
}

// Tick advances the simulation by dt seconds, clamped to [0, MaxDT]
// with NaN treated as zero, and returns the events it produced. The returned slice is only valid
// until the next call.
func (s *Session) Tick(in core.InputFrame, dt float64) []Event {
	s.events = s.events[:0]
	if !(dt > 0) {
		dt = 0
	}
	dt = core.ClampF(dt, 0, s.cfg.World.MaxDT)

	if in.Has(core.ActionRestart) {
		s.Restart()
	}
	if in.Has(core.ActionHelp) {
		s.ToggleHelp()
	}
	s.ageMessage(dt)

	if s.State != StatePlaying {
		return s.events
	}
	s.Ticks++
	s.Elapsed += dt

	s.handleFormInput(in)

	s.Timer -= dt
	if s.Timer <= 0 {
		s.LoseLife(ReasonTimeout)
		s.Timer = s.TimerMax
	}

	// Player, projectiles, enemies, pickups. A phase that ends the run
	// stops the rest of the tick.
	if s.State == StatePlaying {
		s.updatePlayer(in, dt)
	}
	if s.State == StatePlaying {
		s.updateProjectiles(dt)
	}
	if s.State == StatePlaying {
		s.updateEnemies(dt)
	}
	if s.State == StatePlaying {
		s.updatePickups(dt)
	}
	return s.events
}

func (s *Session) handleFormInput(in core.InputFrame) {
	forms := [...]struct {
		action core.Action
		form   Form
	}{
		{core.ActionForm1, FormYellow},
		{core.ActionForm2, FormBlue},
		{core.ActionForm3, FormRed},
		{core.ActionForm4, FormGreen},
	}
	for _, f := range forms {
		if in.Has(f.action) {
			s.SwitchForm(f.form)
		}
	}
	if in.Has(core.ActionCycleForm) {
		s.CycleForm(1)
	}
}

// SwitchForm changes the player's form. It is a no-op for the current form
// or outside Playing. An attached hook is released without momentum.
func (s *Session) SwitchForm(f Form) bool {
	p := &s.Player
	if f == p.Form || s.State != StatePlaying {
		return false
	}
	if p.Hook != nil {
		s.releaseHook(false, "switch")
	}
	p.Form = f
	p.TransformFx = s.cfg.Player.TransformFx
	p.Charge = 0
	p.Charging = false
	p.ActionTimer = 0
	p.Action = ActionNone
	s.emit(Event{Kind: EventFormChanged, Form: f})
	return true
}

// CycleForm switches dir steps through yellow, blue, red, green, wrapping.
func (s *Session) CycleForm(dir int) bool {
	return s.SwitchForm(s.Player.Form.next(dir))
}

// LoseLife costs a life unless the player is invulnerable or the session
// is not playing. It reports whether a life was taken.
func (s *Session) LoseLife(reason DeathReason) bool {
	if s.Player.Invuln > 0 || s.State != StatePlaying {
		return false
	}

	s.Lives--
	s.Projectiles = s.Projectiles[:0]
	s.emit(Event{Kind: EventLifeLost, Reason: reason})

	if s.Lives <= 0 {
		s.Lives = 0
		s.State = StateGameOver
		s.setMessage("Game over. Press R to restart.")
		s.emit(Event{Kind: EventGameOver, Reason: reason})
		return true
	}

	s.setMessage(fmt.Sprintf("You lost a life (%s).", reason))
	s.Timer = math.Max(s.cfg.Session.MinRespawnTime, s.TimerMax-s.cfg.Session.RespawnPenalty)
	s.Player.respawn(s.spawn, s.cfg.Player)
	return true
}

// AwardFruit counts a collected fruit; every ExtraLifeEvery-th grants a life.
func (s *Session) AwardFruit() {
	sc := s.cfg.Scoring
	s.Fruits++
	s.Score += sc.Fruit
	s.emit(Event{Kind: EventFruit, Points: sc.Fruit})

	if sc.ExtraLifeEvery > 0 && s.Fruits%sc.ExtraLifeEvery == 0 {
		s.Lives++
		s.setMessage("Extra life!")
		s.emit(Event{Kind: EventExtraLife})
	}
}

func (s *Session) win() {
	s.State = StateWon
	s.setMessage("Level complete! Press R to play again.")
	s.emit(Event{Kind: EventWon, Points: s.Score})
}

func (s *Session) addScore(points int) {
	s.Score += points
}

func (s *Session) setMessage(msg string) {
	s.Message = msg
	s.messageAge = 0
}

func (s *Session) ageMessage(dt float64) {
	if s.Message == "" {
		return
	}
	s.messageAge += dt
	if s.messageAge >= s.cfg.Session.MessageTTL {
		s.Message = ""
		s.messageAge = 0
	}
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// Status returns the line a host shows under the playfield.
func (s *Session) Status() string {
	switch s.State {
	case StateWon:
		return "You won. Press R to restart."
	case StateGameOver:
		return "Game over. Press R to try again."
	}
	if s.Message != "" {
		return s.Message
	}
	return "Use the right form for each obstacle: fire, water, earth and air. H toggles help."
}

// PixelBounds returns the world size in pixels.
func (s *Session) PixelBounds() (float64, float64) {
	return s.Grid.PixelWidth(), s.Grid.PixelHeight()
}

// LiveEnemies counts enemies still alive.
func (s *Session) LiveEnemies() int {
	n := 0
	for i := range s.Enemies {
		if s.Enemies[i].Alive {
			n++
		}
	}
	return n
}

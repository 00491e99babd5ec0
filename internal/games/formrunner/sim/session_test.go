package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/formrunner/internal/config"
	"github.com/vovakirdan/formrunner/internal/core"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/world"
)

func TestNewSessionPlacesEntities(t *testing.T) {
	s := newSession(t,
		"..H.....",
		"........",
		".P.C.M.E",
		"########",
	)

	assert.Equal(t, StatePlaying, s.State)
	assert.Equal(t, 5, s.Lives)
	assert.Equal(t, 240.0, s.Timer)
	assert.Equal(t, core.V(1*32+4, 2*32-28), s.Spawn())
	assert.Equal(t, s.Spawn().X, s.Player.X)
	assert.Equal(t, FormYellow, s.Player.Form)
	assert.Equal(t, 1.0, s.Player.Facing)

	require.Len(t, s.Enemies, 1)
	e := s.Enemies[0]
	assert.Equal(t, float64(5*32+4), e.X)
	assert.Equal(t, float64(2*32-24), e.Y)
	assert.True(t, e.Alive)
	assert.Contains(t, []float64{-1, 1}, e.Dir)

	require.Len(t, s.Pickups, 1)
	assert.InDelta(t, 3*32+32*0.22, s.Pickups[0].Rect.X, 1e-9)
	assert.InDelta(t, 32*0.56, s.Pickups[0].Rect.W, 1e-9)

	require.Len(t, s.Hooks, 1)
	assert.Equal(t, core.V(2.5*32, 0.5*32), s.Hooks[0])
}

func TestTickClampsDT(t *testing.T) {
	s := newSession(t)
	s.Tick(idle(), 5)
	assert.InDelta(t, 0.033, s.Elapsed, 1e-12)
	assert.InDelta(t, 240-0.033, s.Timer, 1e-9)

	s.Tick(idle(), -1)
	assert.InDelta(t, 0.033, s.Elapsed, 1e-12, "negative dt is clamped to zero")
}

func TestFallAndLand(t *testing.T) {
	s := newSession(t)
	s.Player.X = 40
	s.Player.Y = 0
	s.Player.VX, s.Player.VY = 0, 0

	landed := false
	for i := 0; i < 200; i++ {
		s.Tick(idle(), step)
		if s.Player.OnGround {
			landed = true
			break
		}
	}

	require.True(t, landed)
	assert.Zero(t, s.Player.VY)
	assert.Equal(t, float64(10*32), s.Player.Y+s.Player.H, "bottom edge on the floor's top boundary")
}

func TestInvulnerabilitySuppressesLifeLoss(t *testing.T) {
	s := newSession(t)
	s.Player.Invuln = 0.5

	assert.False(t, s.LoseLife(ReasonEnemy))
	assert.Equal(t, 5, s.Lives)

	s.Player.Invuln = 0
	s.State = StateWon
	assert.False(t, s.LoseLife(ReasonEnemy), "terminal states ignore life loss")
	assert.Equal(t, 5, s.Lives)
}

func TestLoseLifeRespawns(t *testing.T) {
	s := newSession(t)
	settle(t, s)
	s.Player.X += 100
	s.Player.Form = FormRed
	s.Projectiles = append(s.Projectiles, Projectile{Kind: ProjectileFire, Life: 1})
	s.Timer = 100

	require.True(t, s.LoseLife(ReasonHazard))

	assert.Equal(t, 4, s.Lives)
	assert.Empty(t, s.Projectiles)
	assert.Equal(t, s.Spawn().X, s.Player.X)
	assert.Equal(t, FormYellow, s.Player.Form)
	assert.Equal(t, 1.75, s.Player.Invuln)
	assert.Equal(t, 0.25, s.Player.TransformFx)
	assert.Equal(t, 220.0, s.Timer, "timer restarts at max minus the penalty")
	assert.Equal(t, "You lost a life (hazard).", s.Message)
}

func TestLastLifeEndsGame(t *testing.T) {
	s := newSession(t)
	s.Lives = 1

	require.True(t, s.LoseLife(ReasonFell))
	assert.Equal(t, 0, s.Lives)
	assert.Equal(t, StateGameOver, s.State)

	ticks := s.Ticks
	s.Tick(press(core.ActionRight), step)
	assert.Equal(t, ticks, s.Ticks, "game over freezes the simulation")
}

func TestRespawnTimerFloor(t *testing.T) {
	cfg := config.DefaultFormRunnerConfig()
	cfg.Session.Timer = 50
	s := newSessionWith(t, cfg)

	s.LoseLife(ReasonEnemy)
	assert.Equal(t, 40.0, s.Timer, "never below the minimum respawn time")
}

func TestFruitMilestone(t *testing.T) {
	s := newSession(t)
	for i := 1; i <= 41; i++ {
		s.AwardFruit()
		want := 5
		if i >= 20 {
			want = 6
		}
		if i >= 40 {
			want = 7
		}
		require.Equal(t, want, s.Lives, "after fruit %d", i)
	}
	assert.Equal(t, 41*100, s.Score)
	assert.Equal(t, 41, s.Fruits)
}

func TestTimeoutCostsLifeAndResetsTimer(t *testing.T) {
	s := newSession(t)
	s.Timer = 0.01

	events := s.Tick(idle(), step)

	assert.Equal(t, 4, s.Lives)
	assert.Equal(t, s.TimerMax, s.Timer)
	require.Equal(t, 1, count(events, EventLifeLost))
	assert.Equal(t, ReasonTimeout, events[0].Reason)
}

func TestHazardTouch(t *testing.T) {
	s := newSession(t,
		"P......E",
		"........",
		"....S...",
		"########",
	)
	s.Player.X, s.Player.Y = 4*32, 2*32

	events := s.Tick(idle(), step)
	assert.Equal(t, 4, s.Lives)
	require.NotEmpty(t, events)
	assert.Equal(t, ReasonHazard, events[0].Reason)
}

func TestFallingOutOfTheWorld(t *testing.T) {
	s := newSession(t)
	s.Player.Y = s.Grid.PixelHeight() + 100

	events := s.Tick(idle(), step)
	require.Equal(t, 1, count(events, EventLifeLost))
	assert.Equal(t, ReasonFell, events[0].Reason)
}

func TestReachingExitWins(t *testing.T) {
	s := newSession(t,
		"........",
		".P....E.",
		"########",
	)
	s.Player.X, s.Player.Y = 6*32, 1*32+4

	events := s.Tick(idle(), step)
	assert.Equal(t, StateWon, s.State)
	assert.Equal(t, 1, count(events, EventWon))

	// Terminal: further ticks do nothing until a restart.
	ticks := s.Ticks
	s.Tick(hold(core.ActionLeft), step)
	assert.Equal(t, ticks, s.Ticks)
}

func TestExitInsetIgnoresGrazing(t *testing.T) {
	s := newSession(t,
		"........",
		".P....E.",
		"########",
	)
	// Right edge 3px into the exit cell, inside the 4px inset.
	s.Player.X, s.Player.Y = 6*32-24+3, 1*32+4
	s.Tick(idle(), step)
	assert.Equal(t, StatePlaying, s.State)
}

func TestRestartRebuildsEverything(t *testing.T) {
	s := newSession(t,
		"........",
		".P.B...E",
		"########",
	)
	s.Grid.Break(3, 1)
	s.Score = 500
	s.Lives = 1
	s.LoseLife(ReasonEnemy)
	require.Equal(t, StateGameOver, s.State)

	events := s.Tick(press(core.ActionRestart), step)

	assert.Equal(t, 1, count(events, EventRestart))
	assert.Equal(t, StatePlaying, s.State)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 5, s.Lives)
	assert.Equal(t, world.Breakable, s.Grid.Kind(3, 1), "grid is rebuilt from the pristine level")
	assert.Equal(t, world.Breakable, s.Level().Grid.Kind(3, 1))
}

func TestHelpToggleWorksInAnyState(t *testing.T) {
	s := newSession(t)
	s.State = StateGameOver
	s.Tick(press(core.ActionHelp), step)
	assert.True(t, s.ShowHelp)
	s.Tick(press(core.ActionHelp), step)
	assert.False(t, s.ShowHelp)
}

func TestMessageExpires(t *testing.T) {
	s := newSession(t)
	settle(t, s)
	s.LoseLife(ReasonEnemy)
	require.NotEmpty(t, s.Message)
	assert.Contains(t, s.Status(), "lost a life")

	for i := 0; i < 80; i++ {
		s.Tick(idle(), 0.033)
	}
	assert.Empty(t, s.Message)
	assert.Contains(t, s.Status(), "right form")
}

func TestSwitchForm(t *testing.T) {
	s := newSession(t)
	s.Player.Charging = true
	s.Player.Charge = 0.5
	s.Player.ActionTimer = 0.1
	s.Player.Action = ActionAttack

	events := s.Tick(press(core.ActionForm2), step)

	assert.Equal(t, FormBlue, s.Player.Form)
	assert.False(t, s.Player.Charging)
	assert.Zero(t, s.Player.Charge)
	assert.Equal(t, ActionNone, s.Player.Action)
	assert.Empty(t, s.Projectiles, "switching does not fire the pending charge")
	assert.Equal(t, 1, count(events, EventFormChanged))
	assert.InDelta(t, 0.24-step, s.Player.TransformFx, 1e-9)

	assert.False(t, s.SwitchForm(FormBlue), "same form is a no-op")
	s.State = StateWon
	assert.False(t, s.SwitchForm(FormRed), "terminal states ignore switches")
}

func TestCycleFormWraps(t *testing.T) {
	s := newSession(t)
	order := []Form{FormBlue, FormRed, FormGreen, FormYellow}
	for _, want := range order {
		s.Tick(press(core.ActionCycleForm), step)
		assert.Equal(t, want, s.Player.Form)
	}

	s.CycleForm(-1)
	assert.Equal(t, FormGreen, s.Player.Form)
}

func TestDeterminism(t *testing.T) {
	bp, err := levels.Lookup("trail")
	require.NoError(t, err)
	cfg := config.DefaultFormRunnerConfig()

	run := func() Snapshot {
		lvl, err := bp.Build(cfg.World.TileSize)
		require.NoError(t, err)
		s := New(lvl, cfg, 12345)
		for i := 0; i < 600; i++ {
			var in core.InputFrame
			switch {
			case i%50 == 0:
				in = press(core.ActionJump, core.ActionRight)
			case i%90 == 10:
				in = press(core.ActionAbility)
			case i%90 == 30:
				in = release(core.ActionAbility)
			case i%200 == 100:
				in = press(core.ActionCycleForm)
			default:
				in = hold(core.ActionRight)
			}
			s.Tick(in, step)
		}
		return s.Snapshot()
	}

	a, b := run(), run()
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a, b)
	assert.NotZero(t, a.Tick)
}

func TestTickTreatsNaNAsZero(t *testing.T) {
	s := newSession(t)
	settle(t, s)
	before := s.Player.Body
	elapsed, timer := s.Elapsed, s.Timer

	s.Tick(idle(), math.NaN())

	assert.Equal(t, elapsed, s.Elapsed)
	assert.Equal(t, timer, s.Timer)
	assert.Equal(t, before.X, s.Player.X)
	assert.Equal(t, before.Y, s.Player.Y)

	s.Tick(idle(), step)
	assert.False(t, math.IsNaN(s.Elapsed))
	assert.InDelta(t, elapsed+step, s.Elapsed, 1e-12)
}

func TestLongFallLandsOnOneTileFloor(t *testing.T) {
	rows := []string{"..............E.", ".P............M."}
	for i := 0; i < 60; i++ {
		rows = append(rows, "................")
	}
	rows = append(rows, "################")
	s := newSession(t, rows...)
	floor := float64(len(rows)-1) * 32
	s.Enemies[0].Dir = 1
	s.Enemies[0].VY = 5000

	maxDT := s.Config().World.MaxDT
	landed := false
	for i := 0; i < 400 && !landed; i++ {
		s.Tick(idle(), maxDT)
		require.LessOrEqual(t, s.Player.VY, 900.0, "tick %d", i)
		require.LessOrEqual(t, s.Player.Y+s.Player.H, floor, "tick %d sank into the floor", i)
		require.LessOrEqual(t, s.Enemies[0].VY, 900.0, "tick %d", i)
		landed = s.Player.OnGround
	}

	require.True(t, landed)
	assert.Equal(t, floor, s.Player.Y+s.Player.H)
	assert.Equal(t, 5, s.Lives)
}

func TestExitEndsTickBeforePickups(t *testing.T) {
	s := newSession(t,
		"........",
		".P..C.E.",
		"########",
	)
	s.Player.X, s.Player.Y = 6*32, 1*32+4
	// The fruit sits under the player on the same tick the exit is reached.
	s.Pickups[0].Rect = core.NewRectF(6*32+4, 1*32+8, 12, 12)

	events := s.Tick(idle(), step)

	assert.Equal(t, StateWon, s.State)
	assert.False(t, s.Pickups[0].Collected)
	assert.Zero(t, s.Fruits)
	assert.Zero(t, count(events, EventFruit))
}

func TestShotMovesOnItsFirstTick(t *testing.T) {
	s := newSession(t)
	settle(t, s)
	require.True(t, s.SwitchForm(FormBlue))

	s.Tick(press(core.ActionAbility), step)

	require.Len(t, s.Projectiles, 1)
	pr := s.Projectiles[0]
	pc := s.Config().Projectile
	assert.InDelta(t, pc.BubbleLife-step, pr.Life, 1e-9)
	assert.InDelta(t, -pc.BubbleLift-pc.BubbleBuoyancy*step, pr.Vel.Y, 1e-9)
	c := s.Player.Center()
	assert.InDelta(t, c.X+pc.SpawnOffset+pc.BubbleSpeed*pc.BubbleDrag*step, pr.Pos.X, 1e-6, "moved past its spawn point")
}

func TestProjectileKillBeatsStomp(t *testing.T) {
	s := newSession(t, enemyRows...)
	e := standing(s, 260, 1)
	s.Player.X, s.Player.Y = 260, 275
	s.Player.VY = 200
	s.Projectiles = append(s.Projectiles, fire(272, 308, 0, 0))

	events := s.Tick(idle(), step)

	assert.False(t, e.Alive)
	require.Equal(t, 1, count(events, EventEnemyKilled))
	for _, ev := range events {
		if ev.Kind == EventEnemyKilled {
			assert.Equal(t, "fire", ev.Cause)
		}
	}
	assert.Equal(t, 220, s.Score)
	assert.Greater(t, s.Player.VY, 0.0, "no stomp bounce")
	assert.Equal(t, 5, s.Lives)
}

package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/formrunner/internal/core"
)

// hookRows has one anchor 5 tiles above the spawn column.
var hookRows = []string{
	"...............E",
	"................",
	"................",
	"................",
	".....H..........",
	"................",
	"................",
	"................",
	"................",
	"................",
	".....P..........",
	"################",
}

func greenSession(t *testing.T, rows ...string) *Session {
	t.Helper()
	s := newSession(t, rows...)
	require.True(t, s.SwitchForm(FormGreen))
	return s
}

func TestHookAttachesToNearestVisibleAnchor(t *testing.T) {
	s := greenSession(t, hookRows...)
	center := s.Player.Center()
	anchor := s.Hooks[0]

	events := s.Tick(press(core.ActionAbility), step)

	require.NotNil(t, s.Player.Hook)
	assert.Equal(t, 1, count(events, EventHookAttached))
	assert.Equal(t, anchor, s.Player.Hook.Anchor)
	assert.InDelta(t, center.Sub(anchor).Len(), s.Player.Hook.Length, 1e-9)
	assert.InDelta(t, 0, s.Player.Hook.Angle, 1e-9, "hanging straight down")
	assert.Equal(t, PoseAbility, s.Player.Pose())

	from, to, ok := s.Rope()
	require.True(t, ok)
	assert.Equal(t, anchor, from)
	assert.Equal(t, s.Player.Center(), to)
}

func TestHookMinimumLength(t *testing.T) {
	s := greenSession(t, hookRows...)
	anchor := s.Hooks[0]
	s.Player.X = anchor.X - s.Player.W/2
	s.Player.Y = anchor.Y + 10 - s.Player.H/2

	s.Tick(press(core.ActionAbility), step)
	require.NotNil(t, s.Player.Hook)
	assert.Equal(t, 48.0, s.Player.Hook.Length)
}

func TestHookNeedsLineOfSight(t *testing.T) {
	rows := append([]string(nil), hookRows...)
	rows[7] = "....###........."
	s := greenSession(t, rows...)

	s.Tick(press(core.ActionAbility), step)
	assert.Nil(t, s.Player.Hook)
	assert.Equal(t, ActionAbility, s.Player.Action, "the attempt still runs the ability window")
}

func TestHookOutOfRange(t *testing.T) {
	s := greenSession(t, hookRows...)
	s.Hooks[0] = core.V(s.Hooks[0].X+300, s.Hooks[0].Y)

	s.Tick(press(core.ActionAbility), step)
	assert.Nil(t, s.Player.Hook)
}

func TestHookToggleReleases(t *testing.T) {
	s := greenSession(t, hookRows...)
	s.Tick(press(core.ActionAbility), step)
	require.NotNil(t, s.Player.Hook)

	// Wait out the cooldown, then press again.
	for i := 0; i < 12; i++ {
		s.Tick(idle(), step)
	}
	events := s.Tick(press(core.ActionAbility), step)
	assert.Nil(t, s.Player.Hook)
	assert.Equal(t, 1, count(events, EventHookReleased))
}

func TestPendulumSwings(t *testing.T) {
	s := greenSession(t, hookRows...)
	s.Tick(press(core.ActionAbility), step)
	require.NotNil(t, s.Player.Hook)

	for i := 0; i < 30; i++ {
		s.Tick(hold(core.ActionRight), step)
	}
	h := s.Player.Hook
	require.NotNil(t, h)
	assert.Greater(t, h.Angle, 0.0, "steering right swings right")
	assert.InDelta(t, h.Length, s.Player.Center().Sub(h.Anchor).Len(), 1e-6, "rope length is fixed")
	assert.Equal(t, h.Velocity(), core.V(s.Player.VX, s.Player.VY))
	assert.Equal(t, PoseSwing, s.Player.Pose())
}

func TestReleaseWithMomentum(t *testing.T) {
	s := greenSession(t, hookRows...)
	h := &HookState{Anchor: core.V(200, 100), Length: 120, Angle: 0.4, AngVel: 1.5}
	s.Player.Hook = h
	want := h.Velocity()

	s.ReleaseHook(true)

	assert.Nil(t, s.Player.Hook)
	assert.InDelta(t, math.Cos(0.4)*1.5*120, s.Player.VX, 1e-9)
	assert.InDelta(t, -math.Sin(0.4)*1.5*120, s.Player.VY, 1e-9)
	assert.Equal(t, want, core.V(s.Player.VX, s.Player.VY))
}

func TestReleaseWithoutMomentumIsDamped(t *testing.T) {
	s := greenSession(t, hookRows...)
	h := &HookState{Anchor: core.V(200, 100), Length: 120, Angle: 0.4, AngVel: 1.5}
	s.Player.Hook = h
	v := h.Velocity()
	s.Player.VX, s.Player.VY = v.X, v.Y

	s.ReleaseHook(false)

	got := core.V(s.Player.VX, s.Player.VY)
	assert.Less(t, got.Len(), v.Len())
	assert.InDelta(t, v.Len()*0.6, got.Len(), 1e-9)
}

func TestHookJumpKick(t *testing.T) {
	s := greenSession(t, hookRows...)
	s.Tick(press(core.ActionAbility), step)
	require.NotNil(t, s.Player.Hook)

	events := s.Tick(press(core.ActionJump), step)
	assert.Nil(t, s.Player.Hook)
	require.Equal(t, 1, count(events, EventHookReleased))
	// At rest the tangential velocity is ~0, so only the kick remains.
	assert.InDelta(t, -170, s.Player.VY, 1e-6)
}

func TestTerrainForcesReleaseWithoutKick(t *testing.T) {
	s := greenSession(t, hookRows...)
	anchor := s.Hooks[0]
	s.Player.Hook = &HookState{Anchor: anchor, Length: 200, Angle: 0, AngVel: 0}

	// Length 200 below the anchor at y=144 reaches into the floor at row 11.
	events := s.Tick(press(core.ActionJump), step)
	assert.Nil(t, s.Player.Hook)
	require.Equal(t, 1, count(events, EventHookReleased))
	for _, e := range events {
		if e.Kind == EventHookReleased {
			assert.Equal(t, "terrain", e.Cause)
		}
	}
	assert.InDelta(t, 0, s.Player.VY, 1e-9, "no jump kick after a terrain release")
}

func TestSwitchFormReleasesHook(t *testing.T) {
	s := greenSession(t, hookRows...)
	s.Tick(press(core.ActionAbility), step)
	require.NotNil(t, s.Player.Hook)

	s.Tick(press(core.ActionForm1), step)
	assert.Nil(t, s.Player.Hook)
	assert.Equal(t, FormYellow, s.Player.Form)
}

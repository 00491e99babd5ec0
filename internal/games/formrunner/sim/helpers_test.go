package sim

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/formrunner/internal/config"
	"github.com/vovakirdan/formrunner/internal/core"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels"
)

const step = 0.016

// flatRows is a 16x12 field with a floor on rows 10 and 11, spawn at (1, 9)
// and the exit out of reach in the top-right corner.
var flatRows = []string{
	"..............#E",
	"..............##",
	"................",
	"................",
	"................",
	"................",
	"................",
	"................",
	"................",
	".P..............",
	"################",
	"################",
}

func newSession(t *testing.T, rows ...string) *Session {
	t.Helper()
	return newSessionWith(t, config.DefaultFormRunnerConfig(), rows...)
}

func newSessionWith(t *testing.T, cfg config.FormRunnerConfig, rows ...string) *Session {
	t.Helper()
	if len(rows) == 0 {
		rows = flatRows
	}
	lvl, err := levels.FromRows("test", cfg.World.TileSize, rows...)
	require.NoError(t, err)
	return New(lvl, cfg, 1)
}

// press returns a frame where each action went down this tick.
func press(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// hold returns a frame where each action is held from an earlier tick.
func hold(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.SetState(a, core.ButtonDown)
	}
	return f
}

// release returns a frame where each action went up this tick.
func release(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.SetState(a, core.ButtonReleased)
	}
	return f
}

func idle() core.InputFrame { return core.NewInputFrame() }

// settle ticks with no input until the player is standing.
func settle(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 120; i++ {
		s.Tick(idle(), step)
		if s.Player.OnGround {
			return
		}
	}
	t.Fatal("player never landed")
}

func count(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

package script

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/formrunner/internal/config"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/sim"
)

var rows = []string{
	"...............E",
	"...............#",
	"................",
	"................",
	".P..............",
	"################",
}

func newSession(t *testing.T, seed int64) *sim.Session {
	t.Helper()
	cfg := config.DefaultFormRunnerConfig()
	lvl, err := levels.FromRows("script", cfg.World.TileSize, rows...)
	require.NoError(t, err)
	return sim.New(lvl, cfg, seed)
}

func TestParseDefaultsAndValidation(t *testing.T) {
	sc, err := Parse([]byte("steps:\n  - {ticks: 3, hold: [Right, Jump]}\n  - {ticks: 2}\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDT, sc.DT)
	assert.Equal(t, 5, sc.Ticks())

	tests := []struct {
		name string
		data string
	}{
		{"unknown action", "steps:\n  - {ticks: 1, hold: [Fly]}\n"},
		{"negative ticks", "steps:\n  - {ticks: -1}\n"},
		{"negative dt", "dt: -0.1\nsteps: []\n"},
		{"bad yaml", "steps: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidScript))
		})
	}
}

func TestRunHoldsAndDerivesEdges(t *testing.T) {
	sc, err := Parse([]byte(`
dt: 0.016
steps:
  - {ticks: 60}
  - {ticks: 1, hold: [Right, Jump]}
  - {ticks: 10, hold: [Right, Jump]}
`))
	require.NoError(t, err)

	s := newSession(t, 1)
	startX := s.Player.X
	jumps := 0

	res := Run(s, sc, func(_ int, _ []sim.Event) {
		if s.Player.VY < -300 {
			jumps++
		}
	})

	assert.Equal(t, 71, res.Ticks)
	assert.Greater(t, s.Player.X, startX)
	assert.Equal(t, 1, s.Player.JumpCount, "holding jump across steps is a single press")
	assert.Positive(t, jumps)
	assert.Equal(t, sim.StatePlaying, res.State)
}

func TestRunIsDeterministic(t *testing.T) {
	sc, err := Parse([]byte(`
dt: 0.016
steps:
  - {ticks: 40, hold: [Right]}
  - {ticks: 1, hold: [Right, Ability]}
  - {ticks: 30, hold: [Left]}
`))
	require.NoError(t, err)

	a := Run(newSession(t, 9), sc, nil)
	b := Run(newSession(t, 9), sc, nil)
	assert.Equal(t, a.Snapshot.Hash(), b.Snapshot.Hash())
}

func TestRunStopsWhenSessionEnds(t *testing.T) {
	s := newSession(t, 1)
	s.Lives = 1
	s.Timer = 0.01

	res := Run(s, Idle(100, 0.016), nil)
	assert.Equal(t, 1, res.Ticks)
	assert.Equal(t, sim.StateGameOver, res.State)

	s = newSession(t, 1)
	s.Lives = 1
	s.Timer = 0.01
	sc := Idle(5, 0.016)
	sc.KeepGoing = true
	res = Run(s, sc, nil)
	assert.Equal(t, 5, res.Ticks)
}

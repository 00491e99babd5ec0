package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var enemyRows = []string{
	"..............#E",
	"..............##",
	"................",
	"................",
	"................",
	"................",
	"................",
	"................",
	"................",
	".P......M...#...",
	"############..##",
	"############..##",
}

// standing places enemy 0 on the floor at x moving in dir.
func standing(s *Session, x, dir float64) *Enemy {
	e := &s.Enemies[0]
	e.X, e.Y = x, 296
	e.VX, e.VY = 0, 0
	e.Dir = dir
	return e
}

func TestStompKillsAndBounces(t *testing.T) {
	s := newSession(t, enemyRows...)
	e := standing(s, 260, 1)
	s.Player.X, s.Player.Y = 260, 275
	s.Player.VY = 200
	s.Player.JumpCount = 1

	events := s.Tick(idle(), step)

	assert.False(t, e.Alive)
	assert.Equal(t, 5, s.Lives)
	assert.Equal(t, -320.0, s.Player.VY)
	assert.Equal(t, 0, s.Player.JumpCount)
	assert.Equal(t, 180, s.Score)
	require.Equal(t, 1, count(events, EventEnemyKilled))
	assert.Equal(t, 0, s.LiveEnemies())
}

func TestSideContactCostsALife(t *testing.T) {
	s := newSession(t, enemyRows...)
	settle(t, s)
	standing(s, s.Player.X+10, -1)

	events := s.Tick(idle(), step)

	assert.Equal(t, 4, s.Lives)
	require.Equal(t, 1, count(events, EventLifeLost))
	for _, ev := range events {
		if ev.Kind == EventLifeLost {
			assert.Equal(t, ReasonEnemy, ev.Reason)
		}
	}
	assert.True(t, s.Enemies[0].Alive)
	assert.Equal(t, s.Spawn().X, s.Player.X)
}

func TestContactIgnoredWhileInvulnerable(t *testing.T) {
	s := newSession(t, enemyRows...)
	settle(t, s)
	standing(s, s.Player.X+10, -1)
	s.Player.Invuln = 1

	events := s.Tick(idle(), step)
	assert.Equal(t, 5, s.Lives)
	assert.Zero(t, count(events, EventLifeLost))
	assert.True(t, s.Enemies[0].Alive)
}

func TestRisingPlayerIsNotAStomp(t *testing.T) {
	s := newSession(t, enemyRows...)
	standing(s, 260, 1)
	s.Player.X, s.Player.Y = 260, 275
	s.Player.VY = -100

	assert.False(t, s.IsStomp(0))
	s.Player.VY = 200
	assert.True(t, s.IsStomp(0))
	s.Player.Y = 290
	assert.False(t, s.IsStomp(0), "feet below the top band")
}

func TestEnemyTurnsAtWall(t *testing.T) {
	rows := append([]string(nil), enemyRows...)
	rows[10] = "################"
	rows[11] = "################"
	s := newSession(t, rows...)
	e := standing(s, 359.5, 1)

	for i := 0; i < 10 && e.Dir > 0; i++ {
		s.Tick(idle(), step)
	}
	assert.Equal(t, -1.0, e.Dir)
	assert.LessOrEqual(t, e.X+e.W, 384.0)
}

func TestEnemyTurnsAtLedge(t *testing.T) {
	rows := append([]string(nil), enemyRows...)
	rows[9] = ".P......M......."
	s := newSession(t, rows...)
	e := standing(s, 350, 1)

	for i := 0; i < 30; i++ {
		s.Tick(idle(), step)
	}
	assert.Equal(t, -1.0, e.Dir)
	assert.LessOrEqual(t, e.X+e.W, 384.0, "never steps over the gap")
	assert.InDelta(t, 296, e.Y, 1)
}

func TestStunnedEnemySlides(t *testing.T) {
	s := newSession(t, enemyRows...)
	e := standing(s, 260, 1)
	e.VX = 58
	e.Stun = 0.5

	s.Tick(idle(), step)
	assert.InDelta(t, 58*0.93, e.VX, 1e-9)
	assert.InDelta(t, 0.5-step, e.Stun, 1e-9)

	e.Stun = 0.01
	s.Tick(idle(), step)
	assert.Equal(t, 58.0, e.VX, "patrol resumes once the stun wears off")
}

func TestEnemyBelowTheWorldDies(t *testing.T) {
	s := newSession(t, enemyRows...)
	e := &s.Enemies[0]
	e.Y = s.Grid.PixelHeight() + 100

	s.Tick(idle(), step)
	assert.False(t, e.Alive)
	assert.Equal(t, 0, s.Score)
}

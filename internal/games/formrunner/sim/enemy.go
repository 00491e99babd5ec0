package sim

import (
	"math"

	"github.com/vovakirdan/formrunner/internal/games/formrunner/world"
)

// ledgeDepth is how far below an enemy's feet the ledge probe looks.
const ledgeDepth = 2

// Enemy is a patrol walker. Dead enemies stay in the slice and are skipped.
type Enemy struct {
	world.Body

	Dir   float64 // -1 or +1
	Alive bool
	Stun  float64
}

func (s *Session) updateEnemies(dt float64) {
	ec := s.cfg.Enemies
	fallLine := s.Grid.PixelHeight() + s.cfg.World.FallMargin

	for i := range s.Enemies {
		e := &s.Enemies[i]
		if !e.Alive {
			continue
		}

		e.Stun = decay(e.Stun, dt)

		inWater := s.Grid.Touches(e.Rect(), world.LiquidTrait)
		gravity, patrol := ec.Gravity, ec.PatrolSpeed
		if inWater {
			gravity, patrol = ec.WaterGravity, ec.WaterPatrolSpeed
		}
		e.VY = math.Min(e.VY+gravity*dt, ec.MaxFallSpeed)

		if e.Stun <= 0 {
			e.VX = e.Dir * patrol
		} else {
			e.VX *= ec.StunDrag
		}

		hitWall := s.Grid.MoveHorizontal(&e.Body, dt)
		s.Grid.MoveVertical(&e.Body, dt)
		if hitWall {
			e.Dir = -e.Dir
		}

		if e.OnGround && !s.hasSupportAhead(e) {
			e.Dir = -e.Dir
		}

		if e.Y > fallLine {
			e.Alive = false
			continue
		}

		if s.contactPlayer(i) {
			return
		}
	}
}

// hasSupportAhead probes just past the leading foot. Liquid counts as support.
func (s *Session) hasSupportAhead(e *Enemy) bool {
	probe := s.cfg.Enemies.LedgeProbe
	x := e.X - probe
	if e.Dir > 0 {
		x = e.X + e.W + probe
	}
	t := world.Classify(s.Grid.TileAt(x, e.Y+e.H+ledgeDepth))
	return t.Solid || t.Liquid
}

// IsStomp reports whether the player would stomp enemy i rather than be hit:
// falling fast enough with the feet above the enemy's top band.
func (s *Session) IsStomp(i int) bool {
	ec := s.cfg.Enemies
	p := &s.Player
	e := &s.Enemies[i]
	return p.VY > ec.StompSpeed && p.Y+p.H-ec.StompTolerance < e.Y+ec.StompMargin
}

// contactPlayer resolves enemy i touching the player. It returns true when
// the player was hit, which ends the enemy phase for this tick.
func (s *Session) contactPlayer(i int) bool {
	e := &s.Enemies[i]
	p := &s.Player
	if !e.Rect().Intersects(p.Rect()) || p.Invuln > 0 {
		return false
	}

	if s.IsStomp(i) {
		ec := s.cfg.Enemies
		e.Alive = false
		p.VY = -ec.StompBounce
		p.JumpCount = max(0, p.JumpCount-1)
		p.AirSpinActive = true
		points := s.cfg.Scoring.Stomp
		s.addScore(points)
		s.emit(Event{Kind: EventEnemyKilled, Index: i, Cause: "stomp", Points: points})
		return false
	}

	s.LoseLife(ReasonEnemy)
	return true
}

package sim

import (
	"github.com/vovakirdan/formrunner/internal/core"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/world"
)

// ProjectileKind is a projectile archetype.
type ProjectileKind int

const (
	ProjectileFire ProjectileKind = iota
	ProjectileBubble
)

func (k ProjectileKind) String() string {
	if k == ProjectileFire {
		return "fire"
	}
	return "bubble"
}

// Projectile is a point with a radius, owned by the session.
type Projectile struct {
	Kind   ProjectileKind
	Pos    core.Vec
	Vel    core.Vec
	Radius float64
	Life   float64
}

// Bounds returns the projectile's bounding square.
func (pr Projectile) Bounds() core.RectF {
	return core.NewRectF(pr.Pos.X-pr.Radius, pr.Pos.Y-pr.Radius, pr.Radius*2, pr.Radius*2)
}

// updateProjectiles steps every projectile and compacts the survivors in place.
func (s *Session) updateProjectiles(dt float64) {
	kept := s.Projectiles[:0]
	for _, pr := range s.Projectiles {
		if s.stepProjectile(&pr, dt) {
			kept = append(kept, pr)
		}
	}
	s.Projectiles = kept
}

// stepProjectile moves one projectile and applies at most one outcome:
// break, stop, extinguish, enemy hit or expiry. It reports whether the
// projectile survives.
func (s *Session) stepProjectile(pr *Projectile, dt float64) bool {
	pc := s.cfg.Projectile
	pr.Life -= dt

	if pr.Kind == ProjectileFire {
		pr.Vel.Y += pc.FireGravity * dt
	} else {
		pr.Vel.Y -= pc.BubbleBuoyancy * dt
		pr.Vel.X *= pc.BubbleDrag
	}
	pr.Pos = pr.Pos.Add(pr.Vel.Scale(dt))

	cell := levels.Point{X: s.Grid.Cell(pr.Pos.X), Y: s.Grid.Cell(pr.Pos.Y)}
	kind := s.Grid.Kind(cell.X, cell.Y)

	if pr.Kind == ProjectileFire && kind == world.Breakable {
		s.Grid.Break(cell.X, cell.Y)
		points := s.cfg.Scoring.Break
		s.addScore(points)
		s.emit(Event{Kind: EventBlockBroken, Cell: cell, Points: points})
		return false
	}
	if world.Classify(kind).Solid {
		return false
	}
	if pr.Kind == ProjectileFire && world.Classify(kind).Liquid {
		return false
	}

	box := pr.Bounds()
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if !e.Alive || !box.Intersects(e.Rect()) {
			continue
		}
		e.Alive = false
		points := s.cfg.Scoring.BubbleKill
		if pr.Kind == ProjectileFire {
			points = s.cfg.Scoring.FireKill
		}
		s.addScore(points)
		s.emit(Event{Kind: EventEnemyKilled, Index: i, Cause: pr.Kind.String(), Points: points})
		return false
	}

	return pr.Life > 0
}

package sim

import (
	"math"

	"github.com/vovakirdan/formrunner/internal/core"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels"
)

// useAbility runs the current form's ability for this tick.
//
// Yellow charges while the button is held and fires once it is up and the
// cooldown has elapsed, so a release during cooldown fires late. The other
// forms trigger on the press edge.
func (s *Session) useAbility(in core.InputFrame, dt float64) {
	p := &s.Player
	ac := s.cfg.Abilities
	down := in.Down(core.ActionAbility)

	if p.Form == FormYellow {
		if in.Has(core.ActionAbility) {
			p.Charging = true
			p.Charge = 0
		}
		if p.Charging && down {
			p.Charge = math.Min(ac.ChargeCap, p.Charge+dt)
		}
		if p.Charging && !down && p.Cooldown <= 0 {
			s.shoot(ProjectileFire, p.Charge)
			p.Charging = false
			p.Charge = 0
			p.Cooldown = ac.FireCooldown
			p.Action = ActionAttack
			p.ActionTimer = ac.FireActionTime
		}
		return
	}

	p.Charging = false
	p.Charge = 0
	if !in.Has(core.ActionAbility) || p.Cooldown > 0 {
		return
	}

	switch p.Form {
	case FormBlue:
		s.shoot(ProjectileBubble, 0)
	case FormRed:
		s.dig()
	case FormGreen:
		if p.Hook != nil {
			s.releaseHook(false, "toggle")
		} else {
			s.attachHook()
		}
	}
	p.Action = ActionAbility
	p.ActionTimer = ac.AbilityActionTime
	p.Cooldown = ac.AbilityCooldown
}

func (s *Session) shoot(kind ProjectileKind, power float64) {
	p := &s.Player
	pc := s.cfg.Projectile
	c := p.Center()

	pr := Projectile{Kind: kind, Pos: core.V(c.X+p.Facing*pc.SpawnOffset, c.Y)}
	switch kind {
	case ProjectileFire:
		speed := pc.FireSpeed + power*pc.FireSpeedPerCharge
		pr.Vel = core.V(speed*p.Facing, -pc.FireLift)
		pr.Radius = pc.FireRadius + power*pc.FireRadiusPerCharge
		pr.Life = pc.FireLife
	case ProjectileBubble:
		pr.Vel = core.V(p.Facing*pc.BubbleSpeed, -pc.BubbleLift)
		pr.Radius = pc.BubbleRadius
		pr.Life = pc.BubbleLife
	}
	s.Projectiles = append(s.Projectiles, pr)
	s.emit(Event{Kind: EventShot, Cause: kind.String()})
}

// DigTarget returns the cell the red form would dig right now: diagonally
// ahead while moving, straight down while nearly still.
func (s *Session) DigTarget() levels.Point {
	p := &s.Player
	ac := s.cfg.Abilities
	c := p.Center()
	t := s.Grid.TileSize

	if math.Abs(p.VX) > ac.DigMoveThreshold {
		return levels.Point{
			X: s.Grid.Cell(c.X + p.Facing*t*ac.DigReach),
			Y: s.Grid.Cell(p.Y + p.H*ac.DigHeight),
		}
	}
	return levels.Point{X: s.Grid.Cell(c.X), Y: s.Grid.Cell(p.Y + p.H + 2)}
}

func (s *Session) dig() {
	target := s.DigTarget()
	if !s.Grid.Dig(target.X, target.Y) {
		return
	}
	points := s.cfg.Scoring.Dig
	s.addScore(points)
	s.setMessage("Dug through.")
	s.emit(Event{Kind: EventBlockDug, Cell: target, Points: points})
	s.stunEnemiesOn(target)
}

// stunEnemiesOn stuns every grounded enemy standing on the given cell.
func (s *Session) stunEnemiesOn(cell levels.Point) {
	t := s.Grid.TileSize
	top := float64(cell.Y) * t
	for i := range s.Enemies {
		e := &s.Enemies[i]
		if !e.Alive || math.Abs(e.Y+e.H-top) > 1 {
			continue
		}
		if s.Grid.Cell(e.X) <= cell.X && cell.X <= s.Grid.Cell(e.X+e.W-1) {
			e.Stun = s.cfg.Abilities.StunDuration
		}
	}
}

package sim

import (
	"math"

	"github.com/vovakirdan/formrunner/internal/config"
	"github.com/vovakirdan/formrunner/internal/core"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/world"
)

// Player is the controlled character.
type Player struct {
	world.Body

	Facing    float64 // -1 or +1
	JumpCount int
	Form      Form

	Invuln      float64
	Cooldown    float64
	TransformFx float64
	ActionTimer float64
	Action      ActionKind
	Drown       float64

	Charge   float64
	Charging bool

	// Hook is nil unless the player is swinging.
	Hook *HookState

	InWater       bool
	AirSpin       float64
	AirSpinActive bool
}

func newPlayer(spawn core.Vec, pc config.PlayerConfig) Player {
	return Player{
		Body:   world.Body{X: spawn.X, Y: spawn.Y, W: pc.Width, H: pc.Height},
		Facing: 1,
		Form:   FormYellow,
	}
}

// respawn puts the player back at spawn. Facing, cooldown and the water
// flag carry over.
func (p *Player) respawn(spawn core.Vec, pc config.PlayerConfig) {
	p.X, p.Y = spawn.X, spawn.Y
	p.VX, p.VY = 0, 0
	p.JumpCount = 0
	p.OnGround = false
	p.Invuln = pc.InvulnDuration
	p.Drown = 0
	p.Charge = 0
	p.Charging = false
	p.Form = FormYellow
	p.TransformFx = pc.RespawnFx
	p.Hook = nil
	p.ActionTimer = 0
	p.Action = ActionNone
	p.AirSpin = 0
	p.AirSpinActive = false
}

// Pose derives the animation state from timers and velocity.
func (p *Player) Pose() Pose {
	if p.ActionTimer > 0.01 {
		if p.Action == ActionAttack {
			return PoseAttack
		}
		return PoseAbility
	}
	if p.Hook != nil {
		return PoseSwing
	}
	if !p.InWater && p.VY < -140 {
		return PoseJump
	}
	if !p.InWater && p.VY > 140 {
		return PoseFall
	}
	if math.Abs(p.VX) > 30 || (p.InWater && math.Abs(p.VX)+math.Abs(p.VY) > 40) {
		return PoseRun
	}
	return PoseIdle
}

func decay(v, dt float64) float64 {
	return math.Max(0, v-dt)
}

func (s *Session) updatePlayer(in core.InputFrame, dt float64) {
	p := &s.Player
	p.Invuln = decay(p.Invuln, dt)
	p.Cooldown = decay(p.Cooldown, dt)
	p.TransformFx = decay(p.TransformFx, dt)
	p.ActionTimer = decay(p.ActionTimer, dt)

	move := in.Axis(core.ActionLeft, core.ActionRight)
	if move != 0 {
		p.Facing = move
	}

	s.useAbility(in, dt)

	if p.Hook != nil {
		s.swing(in, move, dt)
	} else if !s.locomote(in, move, dt) {
		return
	}

	s.updateAirSpin(dt)
	s.checkTerminal()
}

// locomote runs walking, swimming and jumping. It returns false when the
// player drowned and the rest of the update must be skipped.
func (s *Session) locomote(in core.InputFrame, move, dt float64) bool {
	p := &s.Player
	pc := s.cfg.Player

	p.InWater = s.Grid.Touches(p.Rect(), world.LiquidTrait)
	if p.InWater && p.Form != FormBlue {
		p.Drown += dt
	} else {
		p.Drown = math.Max(0, p.Drown-dt*pc.DrownRecovery)
	}
	if p.Drown > pc.DrownLimit {
		s.LoseLife(ReasonDrowned)
		return false
	}

	speed, accel := pc.RunSpeed, pc.RunAccel
	if p.InWater {
		speed, accel = pc.SwimSpeed, pc.SwimAccel
	}
	p.VX = core.Approach(p.VX, move*speed, accel*dt)

	switch {
	case p.InWater && p.Form == FormBlue:
		climb := in.Axis(core.ActionJump, core.ActionDown)
		p.VY = core.Approach(p.VY, climb*pc.SwimClimbSpeed, pc.SwimClimbAccel*dt)
		p.VY += pc.SwimGravity * dt
	case p.InWater:
		p.VY += pc.WaterGravity * dt
	default:
		p.VY += pc.Gravity * dt
	}
	if p.InWater {
		p.VX *= pc.WaterDrag
	}

	if in.Has(core.ActionJump) {
		if p.OnGround {
			p.JumpCount = 0
		}
		if p.OnGround || p.JumpCount < pc.MaxJumps {
			p.VY = -(pc.JumpImpulse + float64(p.JumpCount)*pc.JumpStep)
			p.OnGround = false
			p.JumpCount++
			p.AirSpinActive = true
		}
	}

	p.VY = math.Min(p.VY, pc.MaxFallSpeed)

	s.Grid.MoveHorizontal(&p.Body, dt)
	s.Grid.MoveVertical(&p.Body, dt)
	if p.OnGround {
		p.JumpCount = 0
	}
	return true
}

func (s *Session) updateAirSpin(dt float64) {
	p := &s.Player
	if p.AirSpinActive && !p.OnGround && !p.InWater && p.Hook == nil {
		dir := 1.0
		if p.Facing < 0 {
			dir = -1
		}
		p.AirSpin += dir * s.cfg.Player.AirSpinRate * dt
		if p.AirSpin > math.Pi {
			p.AirSpin -= 2 * math.Pi
		} else if p.AirSpin < -math.Pi {
			p.AirSpin += 2 * math.Pi
		}
		return
	}

	p.AirSpin = 0
	if p.OnGround || p.InWater || p.Hook != nil {
		p.AirSpinActive = false
	}
}

// checkTerminal applies hazard, fall and exit checks; the first match wins.
func (s *Session) checkTerminal() {
	p := &s.Player
	pc := s.cfg.Player

	if s.Grid.Touches(p.Rect(), world.HazardTrait) {
		s.LoseLife(ReasonHazard)
		return
	}
	if p.Y > s.Grid.PixelHeight()+s.cfg.World.FallMargin {
		s.LoseLife(ReasonFell)
		return
	}
	exitBox := p.Rect().Inset(pc.ExitInsetX, pc.ExitInsetY)
	if s.Grid.RegionMatches(exitBox, func(k world.TileKind) bool { return k == world.Exit }) {
		s.win()
	}
}

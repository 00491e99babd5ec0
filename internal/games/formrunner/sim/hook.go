package sim

import (
	"math"

	"github.com/vovakirdan/formrunner/internal/core"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/world"
)

// HookState is the pendulum the player swings on. Angle 0 hangs straight
// down; positive angles swing to the right of the anchor.
type HookState struct {
	Anchor core.Vec
	Length float64
	Angle  float64
	AngVel float64
}

// Bob returns the swinging end of the rope, where the player's center sits.
func (h *HookState) Bob() core.Vec {
	return core.V(
		h.Anchor.X+math.Sin(h.Angle)*h.Length,
		h.Anchor.Y+math.Cos(h.Angle)*h.Length,
	)
}

// Velocity returns the tangential velocity of the bob.
func (h *HookState) Velocity() core.Vec {
	return core.V(
		math.Cos(h.Angle)*h.AngVel*h.Length,
		-math.Sin(h.Angle)*h.AngVel*h.Length,
	)
}

// Rope returns the rope endpoints while the player is hooked.
func (s *Session) Rope() (anchor, end core.Vec, ok bool) {
	h := s.Player.Hook
	if h == nil {
		return core.Vec{}, core.Vec{}, false
	}
	return h.Anchor, s.Player.Center(), true
}

// nearestAnchor finds the closest anchor in range with a clear line of sight.
func (s *Session) nearestAnchor(from core.Vec) (core.Vec, float64, bool) {
	hc := s.cfg.Hook
	var best core.Vec
	bestDist := math.Inf(1)
	found := false

	for _, a := range s.Hooks {
		d := a.Sub(from).Len()
		if d < hc.Radius && d < bestDist && s.Grid.LineOfSight(from, a, hc.SightStep) {
			best, bestDist, found = a, d, true
		}
	}
	return best, bestDist, found
}

func (s *Session) attachHook() {
	p := &s.Player
	c := p.Center()
	anchor, dist, ok := s.nearestAnchor(c)
	if !ok {
		return
	}

	d := c.Sub(anchor)
	p.Hook = &HookState{
		Anchor: anchor,
		Length: math.Max(s.cfg.Hook.MinLength, dist),
		Angle:  math.Atan2(d.X, d.Y),
	}
	p.VX, p.VY = 0, 0
	s.emit(Event{Kind: EventHookAttached})
}

// ReleaseHook detaches the player. With momentum the tangential velocity
// carries over; without it the current velocity is damped.
func (s *Session) ReleaseHook(withMomentum bool) {
	cause := "toggle"
	if withMomentum {
		cause = "jump"
	}
	s.releaseHook(withMomentum, cause)
}

func (s *Session) releaseHook(withMomentum bool, cause string) {
	p := &s.Player
	if p.Hook == nil {
		return
	}
	if withMomentum {
		v := p.Hook.Velocity()
		p.VX, p.VY = v.X, v.Y
	} else {
		p.VX *= s.cfg.Hook.ReleaseDamping
		p.VY *= s.cfg.Hook.ReleaseDamping
	}
	p.Hook = nil
	s.emit(Event{Kind: EventHookReleased, Cause: cause})
}

// swing integrates the pendulum and places the player on it. Normal
// gravity and tile collision do not run while hooked.
func (s *Session) swing(in core.InputFrame, move, dt float64) {
	p := &s.Player
	h := p.Hook
	hc := s.cfg.Hook

	acc := (-hc.Gravity/h.Length)*math.Sin(h.Angle) + move*hc.Steer
	h.AngVel += acc * dt
	h.AngVel *= hc.Damping
	h.Angle += h.AngVel * dt

	bob := h.Bob()
	p.X = bob.X - p.W*0.5
	p.Y = bob.Y - p.H*0.5
	v := h.Velocity()
	p.VX, p.VY = v.X, v.Y

	if s.Grid.Touches(p.Rect(), world.SolidTrait) {
		s.releaseHook(false, "terrain")
		return
	}
	if in.Has(core.ActionJump) {
		s.releaseHook(true, "jump")
		p.VY -= hc.JumpKick
	}
}

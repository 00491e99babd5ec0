package sim

import "github.com/vovakirdan/formrunner/internal/core"

// Pickup is a fruit. Collected pickups stay in the slice.
type Pickup struct {
	Rect      core.RectF
	Collected bool
	Bob       float64 // animation phase in radians
}

func (s *Session) updatePickups(dt float64) {
	rate := s.cfg.Session.PickupBobRate
	player := s.Player.Rect()
	for i := range s.Pickups {
		item := &s.Pickups[i]
		item.Bob += dt * rate
		if item.Collected || !player.Intersects(item.Rect) {
			continue
		}
		item.Collected = true
		s.AwardFruit()
	}
}

// FruitsLeft counts uncollected pickups.
func (s *Session) FruitsLeft() int {
	n := 0
	for _, item := range s.Pickups {
		if !item.Collected {
			n++
		}
	}
	return n
}

package formrunner

import (
	"math"

	"github.com/vovakirdan/formrunner/internal/core"
)

// cameraRate is how quickly the camera closes the gap to its target, per second.
const cameraRate = 8

// Camera is the top-left corner of the visible window in world pixels.
type Camera struct {
	X, Y float64
}

// target centers the view on p, clamped so the view stays inside the world.
// A world smaller than the view is pinned to the top-left corner.
func target(p core.Vec, viewW, viewH, worldW, worldH float64) core.Vec {
	x := core.ClampF(p.X-viewW/2, 0, math.Max(0, worldW-viewW))
	y := core.ClampF(p.Y-viewH/2, 0, math.Max(0, worldH-viewH))
	return core.V(x, y)
}

// Snap jumps straight to the target.
func (c *Camera) Snap(p core.Vec, viewW, viewH, worldW, worldH float64) {
	t := target(p, viewW, viewH, worldW, worldH)
	c.X, c.Y = t.X, t.Y
}

// Follow eases toward the target by min(1, dt*cameraRate) of the remaining distance.
func (c *Camera) Follow(p core.Vec, viewW, viewH, worldW, worldH, dt float64) {
	t := target(p, viewW, viewH, worldW, worldH)
	k := math.Min(1, dt*cameraRate)
	c.X += (t.X - c.X) * k
	c.Y += (t.Y - c.Y) * k
}

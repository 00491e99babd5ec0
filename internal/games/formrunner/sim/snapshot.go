package sim

import "math"

// Snapshot is a flat copy of the session state for determinism checks
// and headless reports. Uses primitive types only for stable hashing.
type Snapshot struct {
	Tick    uint64
	Elapsed float64
	State   string
	Score   int
	Fruits  int
	Lives   int
	Timer   float64

	// Player: X, Y, VX, VY, Charge, Drown, AirSpin
	PlayerData []float64
	Form       int
	JumpCount  int
	Hooked     bool

	// Each enemy is 5 floats: X, Y, VX, VY, Alive (1 or 0)
	EnemyData []float64

	// Each projectile is 6 floats: Kind, X, Y, VX, VY, Life
	ProjectileData []float64

	// One value per pickup: 1 when collected
	PickupData []int

	// Grid cells, row-major
	TileData []int
}

// Snapshot returns the current state as a Snapshot.
func (s *Session) Snapshot() Snapshot {
	p := &s.Player

	enemies := make([]float64, 0, len(s.Enemies)*5)
	for _, e := range s.Enemies {
		alive := 0.0
		if e.Alive {
			alive = 1
		}
		enemies = append(enemies, e.X, e.Y, e.VX, e.VY, alive)
	}

	projectiles := make([]float64, 0, len(s.Projectiles)*6)
	for _, pr := range s.Projectiles {
		projectiles = append(projectiles, float64(pr.Kind), pr.Pos.X, pr.Pos.Y, pr.Vel.X, pr.Vel.Y, pr.Life)
	}

	pickups := make([]int, len(s.Pickups))
	for i, item := range s.Pickups {
		if item.Collected {
			pickups[i] = 1
		}
	}

	tiles := make([]int, 0, s.Grid.Width*s.Grid.Height)
	for y := 0; y < s.Grid.Height; y++ {
		for x := 0; x < s.Grid.Width; x++ {
			tiles = append(tiles, int(s.Grid.Kind(x, y)))
		}
	}

	return Snapshot{
		Tick:    s.Ticks,
		Elapsed: s.Elapsed,
		State:   s.State.String(),
		Score:   s.Score,
		Fruits:  s.Fruits,
		Lives:   s.Lives,
		Timer:   s.Timer,

		PlayerData: []float64{p.X, p.Y, p.VX, p.VY, p.Charge, p.Drown, p.AirSpin},
		Form:       int(p.Form),
		JumpCount:  p.JumpCount,
		Hooked:     p.Hook != nil,

		EnemyData:      enemies,
		ProjectileData: projectiles,
		PickupData:     pickups,
		TileData:       tiles,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	mixF := func(v float64) { h = h*31 + math.Float64bits(v) }
	mixI := func(v int) { h = h*31 + uint64(v) } //#nosec G115 -- hash computation

	mixF(snap.Elapsed)
	for _, r := range snap.State {
		mixI(int(r))
	}
	mixI(snap.Score)
	mixI(snap.Fruits)
	mixI(snap.Lives)
	mixF(snap.Timer)
	mixI(snap.Form)
	mixI(snap.JumpCount)
	if snap.Hooked {
		mixI(1)
	}

	for _, v := range snap.PlayerData {
		mixF(v)
	}
	for _, v := range snap.EnemyData {
		mixF(v)
	}
	for _, v := range snap.ProjectileData {
		mixF(v)
	}
	for _, v := range snap.PickupData {
		mixI(v)
	}
	for _, v := range snap.TileData {
		mixI(v)
	}
	return h
}

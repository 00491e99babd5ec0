// Package config provides YAML-based tuning for the form runner simulation
// and the difficulty presets layered on top of it.
package config

import (
	"errors"
	"fmt"
)

// FormRunnerConfig contains every tuning constant of the simulation.
type FormRunnerConfig struct {
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Abilities  AbilityConfig    `yaml:"abilities"`
	Hook       HookConfig       `yaml:"hook"`
	Enemies    EnemyConfig      `yaml:"enemies"`
	Projectile ProjectileConfig `yaml:"projectiles"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Session    SessionConfig    `yaml:"session"`
}

// WorldConfig defines grid geometry and the time step clamp.
type WorldConfig struct {
	TileSize   float64 `yaml:"tile_size"`
	MaxDT      float64 `yaml:"max_dt"`
	FallMargin float64 `yaml:"fall_margin"` // pixels below the grid before a fall counts
}

// PlayerConfig defines player size, locomotion and survival timers.
type PlayerConfig struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	RunSpeed       float64 `yaml:"run_speed"`
	RunAccel       float64 `yaml:"run_accel"`
	SwimSpeed      float64 `yaml:"swim_speed"`
	SwimAccel      float64 `yaml:"swim_accel"`
	Gravity        float64 `yaml:"gravity"`
	WaterGravity   float64 `yaml:"water_gravity"`
	SwimGravity    float64 `yaml:"swim_gravity"`
	MaxFallSpeed   float64 `yaml:"max_fall_speed"`
	SwimClimbSpeed float64 `yaml:"swim_climb_speed"`
	SwimClimbAccel float64 `yaml:"swim_climb_accel"`
	WaterDrag      float64 `yaml:"water_drag"`
	JumpImpulse    float64 `yaml:"jump_impulse"`
	JumpStep       float64 `yaml:"jump_step"` // extra impulse per jump already used
	MaxJumps       int     `yaml:"max_jumps"`
	AirSpinRate    float64 `yaml:"air_spin_rate"`
	InvulnDuration float64 `yaml:"invuln_duration"`
	RespawnFx      float64 `yaml:"respawn_fx"`
	TransformFx    float64 `yaml:"transform_fx"`
	DrownLimit     float64 `yaml:"drown_limit"`
	DrownRecovery  float64 `yaml:"drown_recovery"`
	ExitInsetX     float64 `yaml:"exit_inset_x"`
	ExitInsetY     float64 `yaml:"exit_inset_y"`
	SpawnInset     float64 `yaml:"spawn_inset"` // pixels right of the spawn cell's left edge
	SpawnLift      float64 `yaml:"spawn_lift"`  // pixels above the spawn cell's top edge
}

// AbilityConfig defines charge, cooldown and dig parameters.
type AbilityConfig struct {
	ChargeCap         float64 `yaml:"charge_cap"`
	FireCooldown      float64 `yaml:"fire_cooldown"`
	FireActionTime    float64 `yaml:"fire_action_time"`
	AbilityCooldown   float64 `yaml:"ability_cooldown"`
	AbilityActionTime float64 `yaml:"ability_action_time"`
	DigMoveThreshold  float64 `yaml:"dig_move_threshold"`
	DigReach          float64 `yaml:"dig_reach"`  // tiles ahead of center when moving
	DigHeight         float64 `yaml:"dig_height"` // fraction of body height probed when moving
	StunDuration      float64 `yaml:"stun_duration"`
}

// HookConfig defines anchor search and pendulum behavior.
type HookConfig struct {
	Radius         float64 `yaml:"radius"`
	SightStep      float64 `yaml:"sight_step"`
	MinLength      float64 `yaml:"min_length"`
	Gravity        float64 `yaml:"gravity"`
	Steer          float64 `yaml:"steer"`
	Damping        float64 `yaml:"damping"`
	JumpKick       float64 `yaml:"jump_kick"`
	ReleaseDamping float64 `yaml:"release_damping"`
}

// EnemyConfig defines patrol walkers.
type EnemyConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	PatrolSpeed      float64 `yaml:"patrol_speed"`
	WaterPatrolSpeed float64 `yaml:"water_patrol_speed"`
	Gravity          float64 `yaml:"gravity"`
	WaterGravity     float64 `yaml:"water_gravity"`
	MaxFallSpeed     float64 `yaml:"max_fall_speed"`
	StunDrag         float64 `yaml:"stun_drag"`
	LedgeProbe       float64 `yaml:"ledge_probe"`
	StompSpeed       float64 `yaml:"stomp_speed"`
	StompBounce      float64 `yaml:"stomp_bounce"`
	StompTolerance   float64 `yaml:"stomp_tolerance"`
	StompMargin      float64 `yaml:"stomp_margin"`
	SpawnInset       float64 `yaml:"spawn_inset"`
	SpawnLift        float64 `yaml:"spawn_lift"`
}

// ProjectileConfig defines the two projectile archetypes.
type ProjectileConfig struct {
	SpawnOffset         float64 `yaml:"spawn_offset"`
	FireSpeed           float64 `yaml:"fire_speed"`
	FireSpeedPerCharge  float64 `yaml:"fire_speed_per_charge"`
	FireLift            float64 `yaml:"fire_lift"`
	FireRadius          float64 `yaml:"fire_radius"`
	FireRadiusPerCharge float64 `yaml:"fire_radius_per_charge"`
	FireLife            float64 `yaml:"fire_life"`
	FireGravity         float64 `yaml:"fire_gravity"`
	BubbleSpeed         float64 `yaml:"bubble_speed"`
	BubbleLift          float64 `yaml:"bubble_lift"`
	BubbleRadius        float64 `yaml:"bubble_radius"`
	BubbleLife          float64 `yaml:"bubble_life"`
	BubbleBuoyancy      float64 `yaml:"bubble_buoyancy"`
	BubbleDrag          float64 `yaml:"bubble_drag"`
}

// ScoringConfig defines point awards.
type ScoringConfig struct {
	Fruit          int `yaml:"fruit"`
	Dig            int `yaml:"dig"`
	Break          int `yaml:"break"`
	Stomp          int `yaml:"stomp"`
	FireKill       int `yaml:"fire_kill"`
	BubbleKill     int `yaml:"bubble_kill"`
	ExtraLifeEvery int `yaml:"extra_life_every"`
}

// SessionConfig defines lives, the countdown and the message feed.
type SessionConfig struct {
	Lives          int     `yaml:"lives"`
	Timer          float64 `yaml:"timer"`
	RespawnPenalty float64 `yaml:"respawn_penalty"`
	MinRespawnTime float64 `yaml:"min_respawn_time"`
	MessageTTL     float64 `yaml:"message_ttl"`
	PickupBobRate  float64 `yaml:"pickup_bob_rate"`
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects configurations the simulation cannot run with.
func (c FormRunnerConfig) Validate() error {
	switch {
	case c.World.TileSize <= 0:
		return fmt.Errorf("config: world.tile_size must be positive: %w", ErrInvalidConfig)
	case c.World.MaxDT <= 0:
		return fmt.Errorf("config: world.max_dt must be positive: %w", ErrInvalidConfig)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("config: player size must be positive: %w", ErrInvalidConfig)
	case c.Enemies.Width <= 0 || c.Enemies.Height <= 0:
		return fmt.Errorf("config: enemy size must be positive: %w", ErrInvalidConfig)
	case c.Player.MaxJumps < 0:
		return fmt.Errorf("config: player.max_jumps must not be negative: %w", ErrInvalidConfig)
	case c.Session.Lives <= 0:
		return fmt.Errorf("config: session.lives must be positive: %w", ErrInvalidConfig)
	case c.Session.Timer <= 0:
		return fmt.Errorf("config: session.timer must be positive: %w", ErrInvalidConfig)
	case c.Hook.SightStep <= 0:
		return fmt.Errorf("config: hook.sight_step must be positive: %w", ErrInvalidConfig)
	case !c.fallStepFits(c.Player.MaxFallSpeed):
		return fmt.Errorf("config: player.max_fall_speed must be positive and cover less than a tile per max_dt: %w", ErrInvalidConfig)
	case !c.fallStepFits(c.Enemies.MaxFallSpeed):
		return fmt.Errorf("config: enemies.max_fall_speed must be positive and cover less than a tile per max_dt: %w", ErrInvalidConfig)
	}
	return nil
}

// fallStepFits reports whether a body at speed moves less than one tile in
// the longest step, so a one-tile floor cannot be skipped.
func (c FormRunnerConfig) fallStepFits(speed float64) bool {
	return speed > 0 && speed*c.World.MaxDT < c.World.TileSize
}

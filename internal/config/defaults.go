package config

import (
	_ "embed"
	"math"
)

//go:embed defaults/formrunner.yaml
var defaultFormRunnerYAML []byte

// DefaultFormRunnerConfig returns the hard-coded tuning used when no YAML can be read.
func DefaultFormRunnerConfig() FormRunnerConfig {
	return FormRunnerConfig{
		World: WorldConfig{
			TileSize:   32,
			MaxDT:      0.033,
			FallMargin: 32,
		},
		Player: PlayerConfig{
			Width:          24,
			Height:         24,
			RunSpeed:       200,
			RunAccel:       1150,
			SwimSpeed:      130,
			SwimAccel:      620,
			Gravity:        980,
			WaterGravity:   390,
			SwimGravity:    130,
			MaxFallSpeed:   900,
			SwimClimbSpeed: 170,
			SwimClimbAccel: 760,
			WaterDrag:      0.997,
			JumpImpulse:    420,
			JumpStep:       70,
			MaxJumps:       1,
			AirSpinRate:    5.5 * math.Pi,
			InvulnDuration: 1.75,
			RespawnFx:      0.25,
			TransformFx:    0.24,
			DrownLimit:     1.35,
			DrownRecovery:  2.2,
			ExitInsetX:     4,
			ExitInsetY:     2,
			SpawnInset:     4,
			SpawnLift:      28,
		},
		Abilities: AbilityConfig{
			ChargeCap:         1.2,
			FireCooldown:      0.12,
			FireActionTime:    0.18,
			AbilityCooldown:   0.16,
			AbilityActionTime: 0.22,
			DigMoveThreshold:  25,
			DigReach:          0.8,
			DigHeight:         0.55,
			StunDuration:      0.8,
		},
		Hook: HookConfig{
			Radius:         240,
			SightStep:      8,
			MinLength:      48,
			Gravity:        880,
			Steer:          1.9,
			Damping:        0.994,
			JumpKick:       170,
			ReleaseDamping: 0.6,
		},
		Enemies: EnemyConfig{
			Width:            24,
			Height:           24,
			PatrolSpeed:      58,
			WaterPatrolSpeed: 42,
			Gravity:          920,
			WaterGravity:     250,
			MaxFallSpeed:     900,
			StunDrag:         0.93,
			LedgeProbe:       3,
			StompSpeed:       120,
			StompBounce:      320,
			StompTolerance:   7,
			StompMargin:      8,
			SpawnInset:       4,
			SpawnLift:        24,
		},
		Projectile: ProjectileConfig{
			SpawnOffset:         10,
			FireSpeed:           250,
			FireSpeedPerCharge:  220,
			FireLift:            35,
			FireRadius:          5,
			FireRadiusPerCharge: 4,
			FireLife:            1.3,
			FireGravity:         120,
			BubbleSpeed:         170,
			BubbleLift:          75,
			BubbleRadius:        6,
			BubbleLife:          1.8,
			BubbleBuoyancy:      38,
			BubbleDrag:          0.996,
		},
		Scoring: ScoringConfig{
			Fruit:          100,
			Dig:            50,
			Break:          80,
			Stomp:          180,
			FireKill:       220,
			BubbleKill:     150,
			ExtraLifeEvery: 20,
		},
		Session: SessionConfig{
			Lives:          5,
			Timer:          240,
			RespawnPenalty: 20,
			MinRespawnTime: 40,
			MessageTTL:     2.5,
			PickupBobRate:  3.2,
		},
	}
}

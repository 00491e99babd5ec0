package sim

import (
	"fmt"

	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels"
)

// EventKind enumerates the notable changes a tick can report.
type EventKind int

const (
	EventLifeLost EventKind = iota
	EventGameOver
	EventWon
	EventFruit
	EventExtraLife
	EventEnemyKilled
	EventBlockBroken
	EventBlockDug
	EventHookAttached
	EventHookReleased
	EventFormChanged
	EventShot
	EventRestart
)

func (k EventKind) String() string {
	switch k {
	case EventLifeLost:
		return "life_lost"
	case EventGameOver:
		return "game_over"
	case EventWon:
		return "won"
	case EventFruit:
		return "fruit"
	case EventExtraLife:
		return "extra_life"
	case EventEnemyKilled:
		return "enemy_killed"
	case EventBlockBroken:
		return "block_broken"
	case EventBlockDug:
		return "block_dug"
	case EventHookAttached:
		return "hook_attached"
	case EventHookReleased:
		return "hook_released"
	case EventFormChanged:
		return "form_changed"
	case EventShot:
		return "shot"
	case EventRestart:
		return "restart"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is one notable change. Only the fields relevant to Kind are set.
type Event struct {
	Kind   EventKind
	Reason DeathReason  // LifeLost, GameOver
	Points int          // score awarded by this event
	Form   Form         // FormChanged
	Cell   levels.Point // BlockBroken, BlockDug
	Index  int          // EnemyKilled: enemy index
	Cause  string       // EnemyKilled: "stomp", "fire" or "bubble"; HookReleased: "jump", "toggle", "terrain" or "switch"
}

// KeyVals flattens the event for structured loggers.
func (e Event) KeyVals() []any {
	kv := []any{}
	switch e.Kind {
	case EventLifeLost, EventGameOver:
		kv = append(kv, "reason", string(e.Reason))
	case EventFormChanged:
		kv = append(kv, "form", e.Form.String())
	case EventBlockBroken, EventBlockDug:
		kv = append(kv, "x", e.Cell.X, "y", e.Cell.Y)
	case EventEnemyKilled:
		kv = append(kv, "enemy", e.Index, "cause", e.Cause)
	case EventHookReleased, EventShot:
		kv = append(kv, "cause", e.Cause)
	}
	if e.Points != 0 {
		kv = append(kv, "points", e.Points)
	}
	return kv
}

// Package sim is the form runner simulation: player forms and abilities,
// hook swinging, enemy patrols, projectiles and the session rules that
// order them every tick. It never reads keys or draws; hosts feed it a
// core.InputFrame and read its exported state.
package sim

// Form is one of the four player modes.
type Form int

const (
	FormYellow Form = iota // fire
	FormBlue               // water
	FormRed                // earth
	FormGreen              // air hook

	formCount
)

// Forms lists the cycle order.
var Forms = [formCount]Form{FormYellow, FormBlue, FormRed, FormGreen}

func (f Form) String() string {
	switch f {
	case FormYellow:
		return "yellow"
	case FormBlue:
		return "blue"
	case FormRed:
		return "red"
	case FormGreen:
		return "green"
	default:
		return "unknown"
	}
}

// Ability returns a short description of what the form's ability does.
func (f Form) Ability() string {
	switch f {
	case FormYellow:
		return "charged fire shot"
	case FormBlue:
		return "bubble, swims and breathes underwater"
	case FormRed:
		return "dig soft earth"
	case FormGreen:
		return "grapple hook"
	default:
		return ""
	}
}

// next returns the form dir steps away in cycle order.
func (f Form) next(dir int) Form {
	n := int(formCount)
	return Forms[((int(f)+dir)%n+n)%n]
}

// ActionKind is the animation/lockout window currently running.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionAttack
	ActionAbility
)

func (a ActionKind) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionAbility:
		return "ability"
	default:
		return "none"
	}
}

// State is the session status.
type State int

const (
	StatePlaying State = iota
	StateWon
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWon:
		return "won"
	case StateGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// DeathReason says why a life was lost.
type DeathReason string

const (
	ReasonHazard  DeathReason = "hazard"
	ReasonFell    DeathReason = "fell"
	ReasonDrowned DeathReason = "drowned"
	ReasonEnemy   DeathReason = "enemy"
	ReasonTimeout DeathReason = "timeout"
)

// Pose is the render-facing animation state of the player.
type Pose int

const (
	PoseIdle Pose = iota
	PoseRun
	PoseJump
	PoseFall
	PoseAttack
	PoseAbility
	PoseSwing
)

func (p Pose) String() string {
	switch p {
	case PoseIdle:
		return "idle"
	case PoseRun:
		return "run"
	case PoseJump:
		return "jump"
	case PoseFall:
		return "fall"
	case PoseAttack:
		return "attack"
	case PoseAbility:
		return "ability"
	case PoseSwing:
		return "swing"
	default:
		return "unknown"
	}
}

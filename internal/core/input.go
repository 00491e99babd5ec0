package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionLeft             // A, Left arrow - move left
	ActionRight            // D, Right arrow - move right
	ActionJump             // W, Up, Space - jump; also swims up
	ActionDown             // S, Down - swim down
	ActionAbility          // J, Ctrl - use the current form's ability
	ActionForm1            // 1 - yellow form
	ActionForm2            // 2 - blue form
	ActionForm3            // 3 - red form
	ActionForm4            // 4 - green form
	ActionCycleForm        // E - next form
	ActionRestart          // R key - restart the level
	ActionHelp             // H - toggle help overlay
	ActionPause            // P - pause/unpause game
	ActionQuit             // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionDown:
		return "Down"
	case ActionAbility:
		return "Ability"
	case ActionForm1:
		return "Form1"
	case ActionForm2:
		return "Form2"
	case ActionForm3:
		return "Form3"
	case ActionForm4:
		return "Form4"
	case ActionCycleForm:
		return "CycleForm"
	case ActionRestart:
		return "Restart"
	case ActionHelp:
		return "Help"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseAction is the inverse of Action.String. Unknown names yield ActionNone.
func ParseAction(name string) Action {
	for a := ActionLeft; a <= ActionQuit; a++ {
		if a.String() == name {
			return a
		}
	}
	return ActionNone
}

// ButtonState is a bit set describing one action during one frame.
type ButtonState uint8

const (
	ButtonDown     ButtonState = 1 << iota // held at the end of the frame
	ButtonPressed                          // went down during the frame
	ButtonReleased                         // went up during the frame
)

// InputFrame represents the input state for a single player during one simulation tick.
type InputFrame struct {
	// Actions maps action types to their button state for this frame.
	Actions map[Action]ButtonState
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]ButtonState),
	}
}

// Set marks an action as pressed and held for this frame.
func (f *InputFrame) Set(a Action) {
	f.SetState(a, ButtonDown|ButtonPressed)
}

// SetState merges the given bits into an action's state.
func (f *InputFrame) SetState(a Action, s ButtonState) {
	if f.Actions == nil {
		f.Actions = make(map[Action]ButtonState)
	}
	f.Actions[a] |= s
}

// Has returns true if the given action was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]&ButtonPressed != 0
}

// Down returns true if the action is held.
func (f InputFrame) Down(a Action) bool {
	return f.Actions[a]&ButtonDown != 0
}

// Released returns true if the action was let go this frame.
func (f InputFrame) Released(a Action) bool {
	return f.Actions[a]&ButtonReleased != 0
}

// Axis returns -1, 0 or +1 from a pair of opposing held actions.
func (f InputFrame) Axis(negative, positive Action) float64 {
	axis := 0.0
	if f.Down(negative) {
		axis--
	}
	if f.Down(positive) {
		axis++
	}
	return axis
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}

// InputTracker turns a sequence of "currently held" sets into frames with
// press and release edges, comparing each set against the previous one.
type InputTracker struct {
	prev map[Action]bool
}

// NewInputTracker creates a tracker with nothing held.
func NewInputTracker() *InputTracker {
	return &InputTracker{prev: make(map[Action]bool)}
}

// Frame builds the frame for the given held set and remembers it for the next call.
func (t *InputTracker) Frame(held map[Action]bool) InputFrame {
	frame := NewInputFrame()
	for a, down := range held {
		if !down {
			continue
		}
		frame.SetState(a, ButtonDown)
		if !t.prev[a] {
			frame.SetState(a, ButtonPressed)
		}
	}
	for a, wasDown := range t.prev {
		if wasDown && !held[a] {
			frame.SetState(a, ButtonReleased)
		}
	}

	next := make(map[Action]bool, len(held))
	for a, down := range held {
		if down {
			next[a] = true
		}
	}
	t.prev = next
	return frame
}

// Reset forgets all held actions.
func (t *InputTracker) Reset() {
	t.prev = make(map[Action]bool)
}

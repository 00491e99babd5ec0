package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/formrunner/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Jump    key.Binding
	Down    key.Binding
	Ability key.Binding
	Form1   key.Binding
	Form2   key.Binding
	Form3   key.Binding
	Form4   key.Binding
	Cycle   key.Binding
	Restart key.Binding
	Help    key.Binding
	Pause   key.Binding
	Back    key.Binding
	Quit    key.Binding
	Shot    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Jump, k.Ability, k.Cycle, k.Pause, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Jump, k.Down},
		{k.Ability, k.Form1, k.Form2, k.Form3, k.Form4, k.Cycle},
		{k.Restart, k.Pause, k.Help, k.Back, k.Shot, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left:    key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Jump:    key.NewBinding(key.WithKeys("up", "w", " "), key.WithHelp("↑/w/space", "jump")),
		Down:    key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "down")),
		Ability: key.NewBinding(key.WithKeys("j", "k", "x"), key.WithHelp("j", "ability")),
		Form1:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "fire")),
		Form2:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "water")),
		Form3:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "earth")),
		Form4:   key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "hook")),
		Cycle:   key.NewBinding(key.WithKeys("e", "tab"), key.WithHelp("e", "next form")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Help:    key.NewBinding(key.WithKeys("h", "?"), key.WithHelp("h", "help")),
		Pause:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pause")),
		Back:    key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "menu")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Shot:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "screenshot")),
	}
}

// Action translates a key message to a simulation action.
// Platform keys (back, quit, screenshot) map to ActionNone.
func (k GameKeyMap) Action(msg tea.KeyMsg) core.Action {
	bindings := []struct {
		b key.Binding
		a core.Action
	}{
		{k.Left, core.ActionLeft},
		{k.Right, core.ActionRight},
		{k.Jump, core.ActionJump},
		{k.Down, core.ActionDown},
		{k.Ability, core.ActionAbility},
		{k.Form1, core.ActionForm1},
		{k.Form2, core.ActionForm2},
		{k.Form3, core.ActionForm3},
		{k.Form4, core.ActionForm4},
		{k.Cycle, core.ActionCycleForm},
		{k.Restart, core.ActionRestart},
		{k.Help, core.ActionHelp},
		{k.Pause, core.ActionPause},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.b) {
			return b.a
		}
	}
	return core.ActionNone
}

// Terminals report key presses and auto-repeats but never releases.
// A key counts as held until no repeat arrives within its window: the
// first window covers the OS delay before auto-repeat starts, later
// windows only the gap between repeats.
const (
	firstHold  = 320 * time.Millisecond
	repeatHold = 120 * time.Millisecond
)

type keyHold struct {
	since, last time.Time
}

// heldKeys turns press events into a held set.
type heldKeys struct {
	keys map[core.Action]keyHold
	taps map[core.Action]bool
}

func newHeldKeys() *heldKeys {
	return &heldKeys{
		keys: make(map[core.Action]keyHold),
		taps: make(map[core.Action]bool),
	}
}

// retappable reports whether a second event of a still held key counts
// as a new press. Movement and the chargeable ability are held, not tapped.
func retappable(a core.Action) bool {
	switch a {
	case core.ActionLeft, core.ActionRight, core.ActionDown, core.ActionAbility:
		return false
	}
	return true
}

// Press records a press or auto-repeat of a.
func (h *heldKeys) Press(a core.Action, now time.Time) {
	k, ok := h.keys[a]
	if !ok {
		k.since = now
	} else if k.since.Equal(k.last) && retappable(a) {
		h.taps[a] = true
	}
	k.last = now
	h.keys[a] = k
}

// Held returns the actions still held at now and forgets expired ones.
func (h *heldKeys) Held(now time.Time) map[core.Action]bool {
	out := make(map[core.Action]bool, len(h.keys))
	for a, k := range h.keys {
		window := repeatHold
		if k.since.Equal(k.last) {
			window = firstHold
		}
		if now.Sub(k.last) > window {
			delete(h.keys, a)
			continue
		}
		out[a] = true
	}
	return out
}

// Taps returns and clears the re-taps seen since the last call.
func (h *heldKeys) Taps() []core.Action {
	if len(h.taps) == 0 {
		return nil
	}
	out := make([]core.Action, 0, len(h.taps))
	for a := range h.taps {
		out = append(out, a)
	}
	clear(h.taps)
	return out
}

// Reset forgets every key.
func (h *heldKeys) Reset() {
	h.keys = make(map[core.Action]keyHold)
	clear(h.taps)
}

// KeyMapper translates key messages for menus.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

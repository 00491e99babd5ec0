// Package tui runs the form runner in a terminal with Bubble Tea: the game
// loop, key handling, the level menu, the run history and the SSH host.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxFrame caps the wall-clock time fed into one tick, so a stalled
// terminal does not turn into one huge step.
const maxFrame = 100 * time.Millisecond

// TickMsg is sent to trigger a game simulation tick. Loop identifies the
// game model that scheduled it, so a model left behind in a session does
// not keep a second loop alive.
type TickMsg struct {
	At   time.Time
	Loop int64
}

// tickCmd schedules the next tick of loop at the given rate.
func tickCmd(fps int, loop int64) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return TickMsg{At: t, Loop: loop}
	})
}

// frameDelta returns the seconds between two ticks, clamped to maxFrame.
// The first tick of a run uses the nominal frame length.
func frameDelta(last, now time.Time, fps int) float64 {
	if fps <= 0 {
		fps = 60
	}
	if last.IsZero() {
		return 1 / float64(fps)
	}
	d := now.Sub(last)
	if d < 0 {
		d = 0
	}
	return min(d, maxFrame).Seconds()
}

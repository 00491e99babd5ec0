package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels"
)

// levelChangedMsg reports a rewritten blueprint file.
type levelChangedMsg struct{ path string }

// watchErrMsg reports a watcher failure; watching continues.
type watchErrMsg struct{ err error }

// watchCmd waits for the next watcher event. It returns nil once the
// watcher is closed, which ends the chain.
func watchCmd(w *levels.Watcher) tea.Cmd {
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return levelChangedMsg{path: path}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

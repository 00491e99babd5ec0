// Package script drives a session from a YAML input script, for headless
// runs and reproducible bug reports.
//
// A script is a list of steps. Each step holds a set of actions for a
// number of ticks; presses and releases are derived from the change
// between consecutive steps, the same way a keyboard host derives them.
//
//	level: trail
//	seed: 7
//	dt: 0.016
//	steps:
//	  - {ticks: 30, hold: [Right]}
//	  - {ticks: 1, hold: [Right, Jump]}
//	  - {ticks: 20, hold: [Right]}
package script

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/formrunner/internal/core"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/sim"
)

// ErrInvalidScript is wrapped by every parse failure.
var ErrInvalidScript = errors.New("invalid script")

// DefaultDT is used when a script does not set dt.
const DefaultDT = 1.0 / 60

// Script is a decoded input script.
type Script struct {
	Level string  `yaml:"level,omitempty"`
	Seed  int64   `yaml:"seed,omitempty"`
	DT    float64 `yaml:"dt,omitempty"`
	Steps []Step  `yaml:"steps"`

	// KeepGoing runs every step even after the session has ended.
	KeepGoing bool `yaml:"keep_going,omitempty"`
}

// Step holds actions for a number of ticks.
type Step struct {
	Ticks int      `yaml:"ticks"`
	Hold  []string `yaml:"hold,omitempty"`

	actions []core.Action
}

// Idle returns a script that ticks n times with no input.
func Idle(n int, dt float64) Script {
	return Script{DT: dt, Steps: []Step{{Ticks: n}}}
}

// Parse decodes and validates a script.
func Parse(data []byte) (Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Script{}, fmt.Errorf("script: %v: %w", err, ErrInvalidScript)
	}
	if sc.DT < 0 {
		return Script{}, fmt.Errorf("script: negative dt: %w", ErrInvalidScript)
	}
	if sc.DT == 0 {
		sc.DT = DefaultDT
	}
	for i := range sc.Steps {
		st := &sc.Steps[i]
		if st.Ticks < 0 {
			return Script{}, fmt.Errorf("script: step %d: negative ticks: %w", i, ErrInvalidScript)
		}
		for _, name := range st.Hold {
			a := core.ParseAction(name)
			if a == core.ActionNone {
				return Script{}, fmt.Errorf("script: step %d: unknown action %q: %w", i, name, ErrInvalidScript)
			}
			st.actions = append(st.actions, a)
		}
	}
	return sc, nil
}

// Load reads and parses a script file.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("script: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Ticks returns the total tick count of all steps.
func (sc Script) Ticks() int {
	n := 0
	for _, st := range sc.Steps {
		n += st.Ticks
	}
	return n
}

// Result summarizes a finished run.
type Result struct {
	Ticks    int
	State    sim.State
	Score    int
	Fruits   int
	Lives    int
	Elapsed  float64
	Snapshot sim.Snapshot
}

// Run feeds the script into s. onTick, when set, sees every tick's events.
// Unless KeepGoing is set, the run stops as soon as the session ends.
func Run(s *sim.Session, sc Script, onTick func(tick int, events []sim.Event)) Result {
	tracker := core.NewInputTracker()
	tick := 0

steps:
	for _, st := range sc.Steps {
		held := make(map[core.Action]bool, len(st.actions))
		for _, a := range st.actions {
			held[a] = true
		}
		for i := 0; i < st.Ticks; i++ {
			events := s.Tick(tracker.Frame(held), sc.DT)
			tick++
			if onTick != nil {
				onTick(tick, events)
			}
			if !sc.KeepGoing && s.State != sim.StatePlaying {
				break steps
			}
		}
	}

	return Result{
		Ticks:    tick,
		State:    s.State,
		Score:    s.Score,
		Fruits:   s.Fruits,
		Lives:    s.Lives,
		Elapsed:  s.Elapsed,
		Snapshot: s.Snapshot(),
	}
}

// formrunner is a tile platformer for the terminal: four forms, one
// hook, and levels described in YAML.
//
// Usage:
//
//	formrunner play [level]     - Play a level, or pick one from the menu
//	formrunner levels           - List available levels
//	formrunner simulate [level] - Run a level headless from an input script
//	formrunner scores [level]   - Show the best runs
//	formrunner serve            - Start the SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Host frame rate (default: 60)
//	--seed <value>      - RNG seed for reproducible runs
//	--db <path>         - Run history database (default: ~/.formrunner/runs.db)
//	--config <path>     - Tuning YAML
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/formrunner/internal/config"
	"github.com/vovakirdan/formrunner/internal/core"
	"github.com/vovakirdan/formrunner/internal/games/formrunner"
	"github.com/vovakirdan/formrunner/internal/storage"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "formrunner",
	Short: "Form Runner - a four-form platformer in your terminal",
	Long: `Form Runner is a tile platformer played in the terminal.

Switch between four forms to get through each level: yellow shoots
fire, blue blows bubbles and swims, red breaks and digs blocks and
green swings on hooks.

Available commands:
  play      - Play a level (menu when no level is given)
  levels    - List available levels
  simulate  - Run a level headless from an input script
  scores    - Show the best runs
  serve     - Start SSH server for remote play

Examples:
  formrunner play
  formrunner play trail --difficulty hard
  formrunner play --level-file ./my-level.yaml --watch
  formrunner simulate trail --script ./run.yaml
  formrunner serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Host frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.formrunner/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the host logger. Interactive commands own the
// terminal, so without --log-file they log to ~/.formrunner/formrunner.log.
// The returned func closes the log file, if any.
func newLogger(prefix string, interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}

	path := flagLogFile
	if path == "" && interactive {
		if dir := config.UserDir(); dir != "" {
			path = filepath.Join(dir, "formrunner.log")
		} else {
			w = io.Discard
		}
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the run history. Play continues without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// applyTuning points level loading at --config and the difficulty preset.
func applyTuning(difficulty string) error {
	if _, err := config.ParsePreset(difficulty); err != nil {
		return err
	}
	formrunner.SetConfigPath(flagConfig)
	formrunner.SetDifficultyPreset(difficulty)
	return nil
}


package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/formrunner/internal/core"
	"github.com/vovakirdan/formrunner/internal/games/formrunner"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels"
	"github.com/vovakirdan/formrunner/internal/platform/tui"
	"github.com/vovakirdan/formrunner/internal/registry"
	"github.com/vovakirdan/formrunner/internal/storage"
)

var (
	flagDifficulty string
	flagLevelFile  string
	flagLevelDir   string
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Play a level in the terminal. Without a level, a menu lists the
built-in levels and any found under --dir.

Controls:
  Left/Right, A/D   - Move
  Up, W, Space      - Jump (again in the air to double jump)
  Down, S           - Swim down
  J                 - Form ability (hold with yellow to charge)
  1-4, E            - Switch form / cycle forms
  P                 - Pause
  H                 - Help
  R                 - Restart
  Esc               - Back to the menu
  Q/Ctrl+C          - Quit

Difficulty options:
  easy    - More lives and time, slower enemies
  normal  - Tuning as configured
  hard    - Fewer lives, less time, faster enemies

Examples:
  formrunner play
  formrunner play training
  formrunner play trail --difficulty hard
  formrunner play --dir ./levels
  formrunner play --level-file ./my-level.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagLevelFile, "level-file", "", "Play a level blueprint file")
	playCmd.Flags().StringVar(&flagLevelDir, "dir", "", "Directory with extra level blueprints")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the level when its file changes")
}

func runPlay(_ *cobra.Command, args []string) error {
	if err := applyTuning(flagDifficulty); err != nil {
		return err
	}

	logger, closeLog, err := newLogger("formrunner", true)
	if err != nil {
		return err
	}
	defer closeLog()

	extra, err := loadLevelDir(flagLevelDir, logger)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	cfg := runtimeConfig()

	var bp levels.Blueprint
	switch {
	case flagLevelFile != "":
		bp, err = levels.LoadFile(flagLevelFile)
	case len(args) == 1:
		bp, err = levels.Lookup(args[0], extra)
	default:
		return runMenuLoop(menuItems(extra), store, cfg, logger)
	}
	if err != nil {
		if errors.Is(err, levels.ErrUnknownLevel) {
			return fmt.Errorf("%w\nRun 'formrunner levels' to see available levels", err)
		}
		return err
	}

	opts := tui.Options{Logger: logger}
	if flagWatch && bp.FilePath != "" {
		w, err := levels.NewWatcher(bp.FilePath)
		if err != nil {
			return err
		}
		defer w.Close()
		opts.Watcher = w
		logger.Info("watching level file", "path", bp.FilePath)
	}

	if _, err := tui.Run(formrunner.New(bp), store, cfg, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// loadLevelDir loads extra blueprints. Broken files are logged and skipped.
func loadLevelDir(dir string, logger *log.Logger) ([]levels.Blueprint, error) {
	if dir == "" {
		return nil, nil
	}
	bps, skipped, err := levels.NewLoader(dir).LoadAll()
	if err != nil {
		return nil, err
	}
	for _, e := range skipped {
		logger.Warn("skipping level", "err", e)
	}
	return bps, nil
}

// menuItems lists registered levels followed by directory levels that do
// not shadow a registered ID.
func menuItems(extra []levels.Blueprint) []tui.MenuItem {
	items := tui.RegistryItems()
	for _, bp := range extra {
		if registry.Exists(bp.ID) {
			continue
		}
		items = append(items, tui.MenuItem{
			ID:      bp.ID,
			Title:   bp.Name,
			Summary: bp.Metadata["summary"],
			Create:  func() registry.Game { return formrunner.New(bp) },
		})
	}
	return items
}

// runMenuLoop alternates between the menu, the run history and levels
// until the player quits.
func runMenuLoop(items []tui.MenuItem, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	for {
		res, err := tui.RunMenu(items, store, cfg)
		if err != nil {
			return err
		}
		cfg = res.Config

		switch {
		case res.Quit:
			return nil
		case res.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
			continue
		}

		game := res.Item.Create()
		if game == nil {
			logger.Error("could not create level", "level", res.Item.ID)
			continue
		}
		back, err := tui.Run(game, store, cfg, tui.Options{Logger: logger})
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !back {
			return nil
		}
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/formrunner/internal/games/formrunner"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/script"
	"github.com/vovakirdan/formrunner/internal/games/formrunner/sim"
)

var (
	flagScript string
	flagTicks  int
	flagDT     float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [level]",
	Short: "Run a level headless from an input script",
	Long: `Run a level without a terminal UI. Input comes from a YAML script of
held actions; without --script the player stands still for --ticks
ticks. Every simulation event is logged and a summary is printed.

Script format:
  level: trail        # optional, overridden by the level argument
  seed: 7             # optional, overridden by --seed
  dt: 0.016           # optional, overridden by --dt
  steps:
    - {ticks: 30, hold: [Right]}
    - {ticks: 1, hold: [Right, Jump]}
    - {ticks: 40, hold: [Right, Ability]}

Action names: Left, Right, Jump, Down, Ability, Form1-Form4,
CycleForm, Restart, Help.

Examples:
  formrunner simulate trail --ticks 600
  formrunner simulate --script ./run.yaml --log-level debug
  formrunner simulate training --script ./run.yaml --seed 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagScript, "script", "", "Input script YAML")
	simulateCmd.Flags().IntVar(&flagTicks, "ticks", 600, "Idle ticks to run when no script is given")
	simulateCmd.Flags().Float64Var(&flagDT, "dt", 0, "Seconds per tick (default: script dt or 1/60)")
	simulateCmd.Flags().StringVar(&flagLevelDir, "dir", "", "Directory with extra level blueprints")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runSimulate(_ *cobra.Command, args []string) error {
	if err := applyTuning(flagDifficulty); err != nil {
		return err
	}
	logger, closeLog, err := newLogger("simulate", false)
	if err != nil {
		return err
	}
	defer closeLog()

	sc := script.Idle(flagTicks, script.DefaultDT)
	if flagScript != "" {
		if sc, err = script.Load(flagScript); err != nil {
			return err
		}
	}
	if flagDT > 0 {
		sc.DT = flagDT
	}
	if len(args) == 1 {
		sc.Level = args[0]
	}
	if flagSeed != 0 {
		sc.Seed = flagSeed
	}

	extra, err := loadLevelDir(flagLevelDir, logger)
	if err != nil {
		return err
	}
	bp, err := levels.Lookup(sc.Level, extra)
	if err != nil {
		return err
	}
	cfg, err := formrunner.LoadConfig()
	if err != nil {
		logger.Warn("using default tuning", "err", err)
	}
	lvl, err := bp.Build(cfg.World.TileSize)
	if err != nil {
		return err
	}

	session := sim.New(lvl, cfg, sc.Seed)
	logger = logger.With("level", bp.ID)
	logger.Info("simulation started", "seed", sc.Seed, "dt", sc.DT, "ticks", sc.Ticks())

	res := script.Run(session, sc, func(tick int, events []sim.Event) {
		for _, e := range events {
			logger.Info(e.Kind.String(), append([]any{"tick", tick}, e.KeyVals()...)...)
		}
	})

	fmt.Printf("Level:    %s (%s)\n", bp.Name, bp.ID)
	fmt.Printf("Result:   %s after %d ticks (%.2fs)\n", res.State, res.Ticks, res.Elapsed)
	fmt.Printf("Score:    %d\n", res.Score)
	fmt.Printf("Fruits:   %d\n", res.Fruits)
	fmt.Printf("Lives:    %d\n", res.Lives)
	fmt.Printf("Player:   form %s at (%.1f, %.1f)\n",
		session.Player.Form, session.Player.X, session.Player.Y)
	fmt.Printf("Snapshot: %016x\n", res.Snapshot.Hash())
	return nil
}

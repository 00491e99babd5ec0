package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/formrunner/internal/games/formrunner/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long: `Shows the built-in levels and, with --dir, the blueprints found in a
directory. A directory level with a built-in ID shadows the built-in.`,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelDir, "dir", "", "Directory with extra level blueprints")
}

func runLevels(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "formrunner"})
	extra, err := loadLevelDir(flagLevelDir, logger)
	if err != nil {
		return err
	}

	type row struct {
		id, name, size, source string
	}
	var rows []row
	add := func(bp levels.Blueprint, source string) {
		w, h := bp.Size()
		rows = append(rows, row{bp.ID, bp.Name, fmt.Sprintf("%dx%d", w, h), source})
	}
	for _, bp := range levels.Builtin() {
		add(bp, "built-in")
	}
	for _, bp := range extra {
		add(bp, bp.FilePath)
	}

	if len(rows) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	idW, nameW := 2, 4
	for _, r := range rows {
		idW = max(idW, len(r.id))
		nameW = max(nameW, len(r.name))
	}

	fmt.Println("Available levels:")
	fmt.Println()
	fmt.Printf("  %-*s  %-*s  %-7s  %s\n", idW, "ID", nameW, "Name", "Size", "Source")
	fmt.Printf("  %-*s  %-*s  %-7s  %s\n", idW, "--", nameW, "----", "----", "------")
	for _, r := range rows {
		fmt.Printf("  %-*s  %-*s  %-7s  %s\n", idW, r.id, nameW, r.name, r.size, r.source)
	}
	fmt.Println()
	fmt.Println("Run 'formrunner play <id>' to play a level.")
	return nil
}

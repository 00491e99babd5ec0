package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, r Run) int64 {
	t.Helper()
	id, err := store.SaveRun(r)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{Level: "trail", Score: 100, Outcome: OutcomeGameOver, Duration: 40})
	mustSave(t, store, Run{Level: "trail", Score: 50, Outcome: OutcomeQuit, Duration: 10})
	mustSave(t, store, Run{Level: "trail", Score: 200, Fruits: 7, LivesLeft: 3, Outcome: OutcomeWon, Duration: 95.5, Seed: 42, Player: "ana"})
	mustSave(t, store, Run{Level: "training", Score: 500, Outcome: OutcomeWon, Duration: 30})

	runs, err := store.TopRuns("trail", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	want := []int{200, 100, 50}
	for i, r := range runs {
		if r.Score != want[i] {
			t.Errorf("runs[%d].Score = %d, expected %d", i, r.Score, want[i])
		}
	}

	best := runs[0]
	if best.Fruits != 7 || best.LivesLeft != 3 || best.Outcome != OutcomeWon {
		t.Errorf("best run = %+v, fields not round-tripped", best)
	}
	if best.Duration != 95.5 || best.Seed != 42 || best.Player != "ana" {
		t.Errorf("best run = %+v, fields not round-tripped", best)
	}
	if best.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}
}

func TestStoreTopRunsLimitAndTies(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		mustSave(t, store, Run{Level: "trail", Score: (i + 1) * 100, Outcome: OutcomeGameOver})
	}
	mustSave(t, store, Run{Level: "trail", Score: 500, Outcome: OutcomeWon, Duration: 12})

	runs, err := store.TopRuns("trail", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 500 || runs[2].Score != 400 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
	if runs[0].Duration != 0 {
		t.Errorf("Tie should go to the faster run, got duration %v first", runs[0].Duration)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{Level: "a", Score: 1, Outcome: OutcomeQuit})
	mustSave(t, store, Run{Level: "b", Score: 2, Outcome: OutcomeQuit})
	last := mustSave(t, store, Run{Level: "c", Score: 3, Outcome: OutcomeQuit})

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != last || runs[1].Level != "b" {
		t.Errorf("RecentRuns() = %v, expected newest first", runs)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("trail")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best score of 0 for unplayed level, got %d", best)
	}

	mustSave(t, store, Run{Level: "trail", Score: 100, Outcome: OutcomeQuit})
	mustSave(t, store, Run{Level: "trail", Score: 300, Outcome: OutcomeWon})
	mustSave(t, store, Run{Level: "trail", Score: 200, Outcome: OutcomeGameOver})

	best, err = store.BestScore("trail")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best score of 300, got %d", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{Level: "trail", Score: 100, Outcome: OutcomeQuit})
	mustSave(t, store, Run{Level: "training", Score: 300, Outcome: OutcomeQuit})

	if err := store.ClearRuns("trail"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	trail, _ := store.TopRuns("trail", 10)
	if len(trail) != 0 {
		t.Errorf("Expected 0 trail runs after clear, got %d", len(trail))
	}
	training, _ := store.TopRuns("training", 10)
	if len(training) != 1 {
		t.Errorf("Training runs should not be affected by clearing trail")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("trail")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.FastestWin != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() on unplayed level = %+v", empty)
	}

	mustSave(t, store, Run{Level: "trail", Score: 100, Fruits: 2, Outcome: OutcomeGameOver, Duration: 50})
	mustSave(t, store, Run{Level: "trail", Score: 300, Fruits: 5, Outcome: OutcomeWon, Duration: 80})
	mustSave(t, store, Run{Level: "trail", Score: 200, Fruits: 4, Outcome: OutcomeWon, Duration: 60})

	stats, err := store.Stats("trail")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.Wins != 2 {
		t.Errorf("Runs/Wins = %d/%d, expected 3/2", stats.Runs, stats.Wins)
	}
	if stats.BestScore != 300 || stats.AvgScore != 200 {
		t.Errorf("BestScore/AvgScore = %d/%v, expected 300/200", stats.BestScore, stats.AvgScore)
	}
	if stats.TotalFruits != 11 {
		t.Errorf("TotalFruits = %d, expected 11", stats.TotalFruits)
	}
	if stats.FastestWin != 60 {
		t.Errorf("FastestWin = %v, expected 60", stats.FastestWin)
	}
}

func TestStorePlayedLevels(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{Level: "training", Outcome: OutcomeQuit})
	mustSave(t, store, Run{Level: "trail", Outcome: OutcomeQuit})
	mustSave(t, store, Run{Level: "trail", Outcome: OutcomeQuit})

	ids, err := store.PlayedLevels()
	if err != nil {
		t.Fatalf("PlayedLevels() failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "trail" || ids[1] != "training" {
		t.Errorf("PlayedLevels() = %v, expected [trail training]", ids)
	}
}

package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func save(t *testing.T, store *Store, stage string, score int) {
	t.Helper()
	if _, err := store.SaveResult(Result{Stage: stage, Score: score}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTemp(t)

	id, err := store.SaveResult(Result{
		Stage:     "classic",
		Score:     87,
		Moves:     6,
		Penalties: 1,
		Seconds:   17,
		Seed:      42,
	})
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if id == 0 {
		t.Error("Expected non-zero inserted ID")
	}

	save(t, store, "classic", 120)
	save(t, store, "classic", 95)
	// Different stage
	save(t, store, "crossing", 500)

	results, err := store.TopResults("classic", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}

	// Sorted ascending: lower score is better
	if results[0].Score != 87 || results[1].Score != 95 || results[2].Score != 120 {
		t.Errorf("Results not in best-first order: %v", results)
	}

	// The full record round-trips
	if results[0].Moves != 6 || results[0].Penalties != 1 || results[0].Seconds != 17 || results[0].Seed != 42 {
		t.Errorf("Best result lost detail fields: %+v", results[0])
	}

	crossing, err := store.TopResults("crossing", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(crossing) != 1 {
		t.Errorf("Expected 1 crossing result, got %d", len(crossing))
	}
}

func TestStoreTopResultsLimit(t *testing.T) {
	store := openTemp(t)

	for i := 0; i < 5; i++ {
		save(t, store, "classic", (i+1)*100)
	}

	results, err := store.TopResults("classic", 3)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("Expected 3 results with limit, got %d", len(results))
	}

	// Best three: 100, 200, 300
	if results[0].Score != 100 || results[1].Score != 200 || results[2].Score != 300 {
		t.Errorf("Results not in expected order: %v", results)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTemp(t)

	// No results yet
	best, ok, err := store.BestScore("classic")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if ok {
		t.Errorf("Expected no best score for empty stage, got %d", best)
	}

	save(t, store, "classic", 100)
	save(t, store, "classic", 70)
	save(t, store, "classic", 200)

	best, ok, err = store.BestScore("classic")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if !ok || best != 70 {
		t.Errorf("Expected best score of 70, got %d (ok=%v)", best, ok)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTemp(t)

	save(t, store, "classic", 100)
	save(t, store, "classic", 200)
	save(t, store, "crossing", 300)

	if err := store.ClearResults("classic"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	classic, _ := store.TopResults("classic", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic results after clear, got %d", len(classic))
	}

	crossing, _ := store.TopResults("crossing", 10)
	if len(crossing) != 1 {
		t.Errorf("Crossing results should not be affected by clearing classic")
	}
}

func TestStoreStageStats(t *testing.T) {
	store := openTemp(t)

	save(t, store, "classic", 100)
	save(t, store, "classic", 60)
	save(t, store, "classic", 80)

	stats, err := store.StageStatsFor("classic")
	if err != nil {
		t.Fatalf("StageStatsFor() failed: %v", err)
	}
	if stats.Plays != 3 {
		t.Errorf("Expected 3 plays, got %d", stats.Plays)
	}
	if stats.BestScore != 60 {
		t.Errorf("Expected best 60, got %d", stats.BestScore)
	}
	if stats.AvgScore != 80 {
		t.Errorf("Expected avg 80, got %v", stats.AvgScore)
	}

	// An unplayed stage yields empty stats, not an error
	empty, err := store.StageStatsFor("shrine")
	if err != nil {
		t.Fatalf("StageStatsFor() failed: %v", err)
	}
	if empty.Plays != 0 {
		t.Errorf("Expected 0 plays for unplayed stage, got %d", empty.Plays)
	}
}

func TestStoreAllStageStats(t *testing.T) {
	store := openTemp(t)

	save(t, store, "classic", 100)
	save(t, store, "classic", 90)
	save(t, store, "crossing", 300)

	stats, err := store.AllStageStats()
	if err != nil {
		t.Fatalf("AllStageStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 stages, got %d", len(stats))
	}
	if stats["classic"].Plays != 2 || stats["classic"].BestScore != 90 {
		t.Errorf("Unexpected classic stats: %+v", stats["classic"])
	}
	if stats["crossing"].Plays != 1 {
		t.Errorf("Unexpected crossing stats: %+v", stats["crossing"])
	}
}

func TestStoreRecentResults(t *testing.T) {
	store := openTemp(t)

	for i := 0; i < 5; i++ {
		save(t, store, "classic", 100+i)
	}

	recent, err := store.RecentResults(3)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 recent results, got %d", len(recent))
	}
	// Most recent insertion first
	if recent[0].Score != 104 {
		t.Errorf("Expected the latest result first, got score %d", recent[0].Score)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

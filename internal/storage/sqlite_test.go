package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/levelgen/internal/batch"
	"github.com/vovakirdan/levelgen/internal/export"
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

func sampleRows(n int) []export.Row {
	rows := make([]export.Row, n)
	for i := range rows {
		level := i + 1
		rows[i] = export.Row{
			Level:          level,
			GridHeight:     3,
			GridWidth:      4,
			TotalTiles:     12,
			RocketTiles:    2,
			BombEffects:    level % 3,
			NormalTilesSum: 10,
			Difficulty:     float64(level%20) / 2,
			Time:           60,
			Gravity:        level % 5,
			Circle:         level%20 == 10,
		}
	}
	return rows
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

func TestStoreSaveAndRetrieveRun(t *testing.T) {
	store := openTestStore(t)

	rows := sampleRows(12)
	id, err := store.SaveRun(Run{
		Seed:        18446744073709551615, // max uint64 survives the round trip
		Format:      "json",
		OutputDir:   "map",
		SummaryPath: "levels_summary.csv",
	}, rows)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("expected run to exist")
	}
	if run.Seed != 18446744073709551615 || run.LevelCount != 12 || run.Format != "json" {
		t.Errorf("unexpected run: %+v", run)
	}
	if run.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	back, err := store.RunLevels(id)
	if err != nil {
		t.Fatalf("RunLevels() failed: %v", err)
	}
	if len(back) != len(rows) {
		t.Fatalf("expected %d levels, got %d", len(rows), len(back))
	}
	for i := range rows {
		if back[i] != rows[i] {
			t.Errorf("level %d: expected %+v, got %+v", rows[i].Level, rows[i], back[i])
		}
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(Run{Seed: uint64(i), Format: "json", OutputDir: "map", SummaryPath: "s.csv"}, sampleRows(i+1)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs with limit, got %d", len(runs))
	}
	// Newest first
	if runs[0].Seed != 4 || runs[1].Seed != 3 || runs[2].Seed != 2 {
		t.Errorf("runs not in expected order: %+v", runs)
	}

	latest, err := store.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun() failed: %v", err)
	}
	if latest == nil || latest.LevelCount != 5 {
		t.Errorf("unexpected latest run: %+v", latest)
	}
}

func TestStoreEmpty(t *testing.T) {
	store := openTestStore(t)

	latest, err := store.LatestRun()
	if err != nil {
		t.Fatalf("LatestRun() failed: %v", err)
	}
	if latest != nil {
		t.Errorf("expected no runs, got %+v", latest)
	}

	run, err := store.RunByID(42)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run != nil {
		t.Errorf("expected nil for missing run, got %+v", run)
	}
}

func TestStoreDeleteRun(t *testing.T) {
	store := openTestStore(t)

	keep, _ := store.SaveRun(Run{Format: "json"}, sampleRows(3))
	drop, _ := store.SaveRun(Run{Format: "yaml"}, sampleRows(4))

	if err := store.DeleteRun(drop); err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}

	if run, _ := store.RunByID(drop); run != nil {
		t.Error("deleted run should be gone")
	}
	if rows, _ := store.RunLevels(drop); len(rows) != 0 {
		t.Errorf("deleted run levels should be gone, got %d", len(rows))
	}
	if rows, _ := store.RunLevels(keep); len(rows) != 3 {
		t.Errorf("other runs should not be affected, got %d levels", len(rows))
	}
}

func TestStoreRecordRun(t *testing.T) {
	store := openTestStore(t)

	var recorder batch.RunRecorder = store
	id, err := recorder.RecordRun(batch.RunData{
		Seed:        9,
		Format:      "yaml",
		OutputDir:   "out",
		SummaryPath: "out/summary.csv",
		Rows:        sampleRows(6),
	})
	if err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	run, err := store.RunByID(id)
	if err != nil || run == nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run.OutputDir != "out" || run.LevelCount != 6 {
		t.Errorf("unexpected run: %+v", run)
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

func TestStoreExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.levelgen/history.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".levelgen", "history.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}

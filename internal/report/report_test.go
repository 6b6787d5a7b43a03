package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/levelgen/internal/batch"
	"github.com/vovakirdan/levelgen/internal/export"
	"github.com/vovakirdan/levelgen/internal/storage"
)

func TestSummaryTablePlain(t *testing.T) {
	rows := []export.Row{
		{Level: 1, GridHeight: 3, GridWidth: 4, TotalTiles: 12, NormalTilesSum: 12, Difficulty: 0.5, Time: 60},
		{Level: 10, GridHeight: 6, GridWidth: 7, TotalTiles: 42, RocketTiles: 2, BombEffects: 4, NormalTilesSum: 40, Difficulty: 5, Time: 120, Gravity: 1, Circle: true},
	}

	out := SummaryTable(rows, false)

	if strings.Contains(out, "\x1b[") {
		t.Error("plain table must not contain ANSI sequences")
	}
	for _, col := range export.SummaryHeader {
		if !strings.Contains(out, col) {
			t.Errorf("missing column %q", col)
		}
	}
	for _, cell := range []string{"0.5", "5.0", "True", "False", "120"} {
		if !strings.Contains(out, cell) {
			t.Errorf("missing cell %q in:\n%s", cell, out)
		}
	}
}

func TestSummaryTableStyledKeepsContent(t *testing.T) {
	rows := []export.Row{{Level: 7, GridHeight: 4, GridWidth: 5, Difficulty: 3.5, Circle: true}}
	out := SummaryTable(rows, true)
	if !strings.Contains(out, "GridHeight") || !strings.Contains(out, "3.5") {
		t.Errorf("styled table lost content:\n%s", out)
	}
}

func TestRunsTable(t *testing.T) {
	runs := []storage.Run{
		{ID: 2, Seed: 42, LevelCount: 100, Format: "json", OutputDir: "map", SummaryPath: "levels_summary.csv",
			CreatedAt: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)},
	}
	out := RunsTable(runs, false)
	for _, want := range []string{"Run", "Seed", "42", "100", "json", "2024-03-01 12:30"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestVerifyReport(t *testing.T) {
	ok := VerifyReport(batch.Report{Levels: 12}, false)
	if ok != "OK: 12 levels verified\n" {
		t.Errorf("unexpected OK report %q", ok)
	}

	failed := VerifyReport(batch.Report{
		Levels: 12,
		Problems: []batch.Problem{
			{Level: 4, Err: errors.New("artifact missing")},
		},
	}, false)
	if !strings.HasPrefix(failed, "FAILED: 1 problem(s) in 12 levels\n") {
		t.Errorf("unexpected header in %q", failed)
	}
	if !strings.Contains(failed, "level 4: artifact missing") {
		t.Errorf("problem not listed in %q", failed)
	}
}

func TestPlainHelpers(t *testing.T) {
	if Title("Runs", false) != "Runs" || Muted("hint", false) != "hint" {
		t.Error("plain helpers must return input unchanged")
	}
}

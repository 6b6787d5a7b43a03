package export

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/levelgen/internal/levelgen"
)

func sampleSpec() levelgen.LevelSpec {
	return levelgen.LevelSpec{
		Level:      10,
		Difficulty: 5.0,
		GridHeight: 4,
		GridWidth:  5,
		Theme:      levelgen.ThemeDrink,
		Tiles:      levelgen.NewTileBudget(20, 2, 4, map[int]int{0: 10, 1: 8}),
		Time:       90,
		Gravity:    1,
		Circle:     true,
	}
}

func TestArtifactJSONLayout(t *testing.T) {
	w, err := NewArtifactWriter(t.TempDir(), "", "json")
	if err != nil {
		t.Fatalf("NewArtifactWriter() failed: %v", err)
	}

	var sb strings.Builder
	if err := w.Encode(&sb, sampleSpec()); err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}

	expected := `{
    "Level": 10,
    "Difficulty": 5.0,
    "GridHeight": 4,
    "GridWidth": 5,
    "Theme": "DRINK",
    "Tiles": {
        "TotalTiles": 20,
        "RocketTiles": 2,
        "BombEffects": 4,
        "NormalTiles": {
            "0": 10,
            "1": 8
        }
    },
    "Time": 90,
    "Gravity": 1,
    "Circle": true
}
`
	if sb.String() != expected {
		t.Errorf("unexpected JSON:\n%s", sb.String())
	}
}

func TestArtifactRoundTrip(t *testing.T) {
	for _, format := range []string{"json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			w, err := NewArtifactWriter(filepath.Join(t.TempDir(), "map"), "", format)
			if err != nil {
				t.Fatalf("NewArtifactWriter() failed: %v", err)
			}

			spec := sampleSpec()
			path, err := w.Write(spec)
			if err != nil {
				t.Fatalf("Write() failed: %v", err)
			}
			if filepath.Base(path) != "level10."+format {
				t.Errorf("unexpected artifact name %q", filepath.Base(path))
			}

			got, err := ReadSpec(path)
			if err != nil {
				t.Fatalf("ReadSpec() failed: %v", err)
			}

			if got.Level != spec.Level || got.Difficulty != spec.Difficulty ||
				got.GridHeight != spec.GridHeight || got.GridWidth != spec.GridWidth ||
				got.Theme != spec.Theme || got.Time != spec.Time ||
				got.Gravity != spec.Gravity || got.Circle != spec.Circle {
				t.Errorf("round trip mismatch: %+v vs %+v", got, spec)
			}
			for _, id := range spec.Tiles.TileTypes() {
				if got.Tiles.Count(id) != spec.Tiles.Count(id) {
					t.Errorf("type %d: expected %d, got %d", id, spec.Tiles.Count(id), got.Tiles.Count(id))
				}
			}
		})
	}
}

func TestArtifactSumMatchesSummaryRow(t *testing.T) {
	dir := t.TempDir()
	w, err := NewArtifactWriter(dir, "", "json")
	if err != nil {
		t.Fatalf("NewArtifactWriter() failed: %v", err)
	}

	gen := levelgen.NewGenerator(levelgen.GenParams{Seed: 5})
	for level := 1; level <= 40; level++ {
		spec, err := gen.Level(level)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		path, err := w.Write(spec)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}

		a, err := ReadArtifact(path)
		if err != nil {
			t.Fatalf("level %d: %v", level, err)
		}
		if row := RowFromSpec(spec); a.NormalTilesSum() != row.NormalTilesSum {
			t.Errorf("level %d: artifact sum %d != row sum %d", level, a.NormalTilesSum(), row.NormalTilesSum)
		}
	}
}

func TestNewArtifactWriterValidation(t *testing.T) {
	dir := t.TempDir()

	if _, err := NewArtifactWriter(dir, "level", "json"); err == nil {
		t.Error("expected error for pattern without a level verb")
	}
	if _, err := NewArtifactWriter(dir, "lvl%d-%s", "json"); err == nil {
		t.Error("expected error for pattern with extra verbs")
	}
	if _, err := NewArtifactWriter(dir, "", "toml"); err == nil {
		t.Error("expected error for unknown format")
	}

	w, err := NewArtifactWriter(dir, "stage_%d", "yaml")
	if err != nil {
		t.Fatalf("NewArtifactWriter() failed: %v", err)
	}
	if got := w.Path(7); got != filepath.Join(dir, "stage_7.yaml") {
		t.Errorf("unexpected path %q", got)
	}
}

func TestWriteFailureIsSinkWrite(t *testing.T) {
	// A regular file where the output directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewArtifactWriter(filepath.Join(blocker, "map"), "", "json")
	if err != nil {
		t.Fatalf("NewArtifactWriter() failed: %v", err)
	}

	_, err = w.Write(sampleSpec())
	if !errors.Is(err, levelgen.ErrSinkWrite) {
		t.Fatalf("expected ErrSinkWrite, got %v", err)
	}
	if level, ok := levelgen.FailedLevel(err); !ok || level != 10 {
		t.Errorf("expected failing level 10, got %d/%v", level, ok)
	}
}

func TestSummaryWriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "levels_summary.csv")

	rows := []Row{
		RowFromSpec(sampleSpec()),
		{Level: 11, GridHeight: 3, GridWidth: 4, TotalTiles: 12, NormalTilesSum: 12, Difficulty: 4.5, Time: 60},
	}
	if err := WriteSummary(path, rows); err != nil {
		t.Fatalf("WriteSummary() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Level,GridHeight,GridWidth,TotalTiles,RocketTiles,BombEffects,NormalTilesSum,Difficulty,Time,Gravity,Circle" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "10,4,5,20,2,4,18,5.0,90,1,True" {
		t.Errorf("unexpected first row %q", lines[1])
	}
	if lines[2] != "11,3,4,12,0,0,12,4.5,60,0,False" {
		t.Errorf("unexpected second row %q", lines[2])
	}

	back, err := ReadSummary(path)
	if err != nil {
		t.Fatalf("ReadSummary() failed: %v", err)
	}
	if len(back) != 2 || back[0] != rows[0] || back[1] != rows[1] {
		t.Errorf("summary round trip mismatch: %+v", back)
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the summary file, found %d entries", len(entries))
	}
}

func TestReadSummaryRejectsBadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	if err := os.WriteFile(path, []byte("Level,Time\n1,60\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadSummary(path); err == nil {
		t.Error("expected error for wrong header")
	}
}

func TestFormatDifficulty(t *testing.T) {
	tests := map[float64]string{0: "0.0", 0.5: "0.5", 5: "5.0", 2.5: "2.5"}
	for in, want := range tests {
		if got := FormatDifficulty(in); got != want {
			t.Errorf("FormatDifficulty(%v) = %q, expected %q", in, got, want)
		}
	}
}

func TestFormatsRegistered(t *testing.T) {
	ids := Formats()
	if len(ids) < 2 || ids[0] != "json" || ids[1] != "yaml" {
		t.Errorf("expected json and yaml formats, got %v", ids)
	}
}

func TestYAMLDifficultyMatchesJSON(t *testing.T) {
	w, err := NewArtifactWriter(t.TempDir(), "", "yaml")
	if err != nil {
		t.Fatalf("NewArtifactWriter() failed: %v", err)
	}

	for _, d := range []float64{5, 0.5, 0} {
		spec := sampleSpec()
		spec.Difficulty = d

		var sb strings.Builder
		if err := w.Encode(&sb, spec); err != nil {
			t.Fatalf("Encode() failed: %v", err)
		}
		want := "Difficulty: " + FormatDifficulty(d) + "\n"
		if !strings.Contains(sb.String(), want) {
			t.Errorf("expected %q in:\n%s", want, sb.String())
		}
	}
}

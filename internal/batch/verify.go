package batch

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/levelgen/internal/export"
	"github.com/vovakirdan/levelgen/internal/levelgen"
)

// Problem is one inconsistency found by Verify.
type Problem struct {
	Level int
	Err   error
}

func (p Problem) String() string {
	return fmt.Sprintf("level %d: %v", p.Level, p.Err)
}

// Report is the outcome of Verify.
type Report struct {
	Levels   int
	Problems []Problem
}

// OK reports whether no problems were found.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// Verify re-reads a finished run from disk. Every summary row must have an
// artifact that satisfies the level invariants and summarizes to the same
// row. artifactPath maps a level number to its artifact file.
func Verify(summaryPath string, artifactPath func(level int) string) (Report, error) {
	rows, err := export.ReadSummary(summaryPath)
	if err != nil {
		return Report{}, err
	}

	report := Report{Levels: len(rows)}
	seen := make(map[int]bool, len(rows))

	for _, row := range rows {
		problem := func(err error) {
			report.Problems = append(report.Problems, Problem{Level: row.Level, Err: err})
		}

		if seen[row.Level] {
			problem(errors.New("duplicate summary row"))
			continue
		}
		seen[row.Level] = true

		spec, err := export.ReadSpec(artifactPath(row.Level))
		if err != nil {
			problem(err)
			continue
		}
		if spec.Level != row.Level {
			problem(fmt.Errorf("artifact holds level %d", spec.Level))
			continue
		}
		if err := levelgen.Validate(spec); err != nil {
			problem(err)
		}
		if got := export.RowFromSpec(spec); got != row {
			problem(fmt.Errorf("summary row %+v does not match artifact %+v", row, got))
		}
	}

	return report, nil
}

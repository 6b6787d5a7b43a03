// Package batch drives a generation run: it generates a range of levels
// concurrently, writes one artifact per level and finalizes the summary
// table once every artifact is on disk.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/levelgen/internal/export"
	"github.com/vovakirdan/levelgen/internal/levelgen"
)

// RunRecorder is an interface for saving finished runs.
// This allows the driver to record runs without depending on the storage package.
type RunRecorder interface {
	RecordRun(data RunData) (int64, error)
}

// RunData contains the outcome of a run for persistence.
type RunData struct {
	Seed        uint64
	Format      string
	OutputDir   string
	SummaryPath string
	Rows        []export.Row
}

// Sink receives the artifact of each level.
type Sink interface {
	Write(spec levelgen.LevelSpec) (string, error)
}

// Options configures a run.
type Options struct {
	From, To    int // Inclusive level range
	Workers     int
	Generator   *levelgen.Generator
	Sink        Sink
	SummaryPath string
	Format      string      // Recorded with the run
	OutputDir   string      // Recorded with the run
	Recorder    RunRecorder // Optional
	Logger      *log.Logger // Optional
}

// Result describes a finished run.
type Result struct {
	Rows     []export.Row
	Paths    []string
	RunID    int64 // 0 when no recorder is configured
	Duration time.Duration
}

// Run generates levels From..To and writes their artifacts with up to
// Workers writers in flight. The summary table is written only after all
// artifacts succeeded, so the table and the artifacts always match.
// The first failure cancels the remaining levels and is returned with the
// failing level number attached.
func Run(ctx context.Context, opts Options) (Result, error) {
	if err := opts.validate(); err != nil {
		return Result{}, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	start := time.Now()
	count := opts.To - opts.From + 1
	rows := make([]export.Row, count)
	paths := make([]string, count)

	logger.Info("generating levels",
		"from", opts.From, "to", opts.To,
		"workers", opts.Workers, "seeded", opts.Generator.Seeded())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for level := opts.From; level <= opts.To; level++ {
		idx := level - opts.From
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			spec, err := opts.Generator.Level(level)
			if err != nil {
				return err
			}
			path, err := opts.Sink.Write(spec)
			if err != nil {
				return err
			}

			rows[idx] = export.RowFromSpec(spec)
			paths[idx] = path
			logger.Debug("level written",
				"level", level, "grid", fmt.Sprintf("%dx%d", spec.GridHeight, spec.GridWidth),
				"theme", spec.Theme, "path", path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if level, ok := levelgen.FailedLevel(err); ok {
			logger.Error("run aborted", "level", level, "error", err)
		} else {
			logger.Error("run aborted", "error", err)
		}
		return Result{}, err
	}

	if err := export.WriteSummary(opts.SummaryPath, rows); err != nil {
		logger.Error("summary not written", "path", opts.SummaryPath, "error", err)
		return Result{}, fmt.Errorf("write summary %s: %w: %w", opts.SummaryPath, levelgen.ErrSinkWrite, err)
	}

	result := Result{Rows: rows, Paths: paths}

	if opts.Recorder != nil {
		id, err := opts.Recorder.RecordRun(RunData{
			Seed:        opts.Generator.Params().Seed,
			Format:      opts.Format,
			OutputDir:   opts.OutputDir,
			SummaryPath: opts.SummaryPath,
			Rows:        rows,
		})
		if err != nil {
			// Artifacts and summary are already consistent on disk.
			logger.Warn("run not recorded in history", "error", err)
		} else {
			result.RunID = id
		}
	}

	result.Duration = time.Since(start)
	logger.Info("run complete",
		"levels", count, "summary", opts.SummaryPath,
		"run_id", result.RunID, "duration", result.Duration.Round(time.Millisecond))

	return result, nil
}

func (o Options) validate() error {
	var errs []error
	if o.From < 1 || o.To < o.From {
		errs = append(errs, levelgen.InvalidLevelf(o.From, "invalid level range %d..%d", o.From, o.To))
	}
	if o.Workers < 1 {
		errs = append(errs, fmt.Errorf("batch: workers must be positive, got %d", o.Workers))
	}
	if o.Generator == nil {
		errs = append(errs, errors.New("batch: generator is required"))
	}
	if o.Sink == nil {
		errs = append(errs, errors.New("batch: sink is required"))
	}
	if o.SummaryPath == "" {
		errs = append(errs, errors.New("batch: summary path is required"))
	}
	return errors.Join(errs...)
}

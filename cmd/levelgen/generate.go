package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelgen/internal/batch"
	"github.com/vovakirdan/levelgen/internal/config"
	"github.com/vovakirdan/levelgen/internal/export"
	"github.com/vovakirdan/levelgen/internal/levelgen"
	"github.com/vovakirdan/levelgen/internal/storage"
)

var (
	flagCount       int
	flagOutDir      string
	flagSummary     string
	flagFormat      string
	flagNamePattern string
	flagWorkers     int
	flagGenDBPath   string
	flagHistory     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate levels and the summary table",
	Long: `Generate levels 1..N. Each level is written as its own artifact file and
one row per level is collected into the summary CSV, written once all
artifacts are on disk. Any failure aborts the run and reports the level.

Examples:
  levelgen generate                       # 100 levels into map/, levels_summary.csv
  levelgen generate -n 20 --seed 7        # Reproducible run
  levelgen generate --format yaml --out levels --summary levels/summary.csv
  levelgen generate --db ~/.levelgen/history.db  # Record the run`,
	Args: cobra.NoArgs,
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&flagCount, "number", "n", 0, "Number of levels to generate (default from config)")
	generateCmd.Flags().StringVarP(&flagOutDir, "out", "o", "", "Artifact output directory")
	generateCmd.Flags().StringVar(&flagSummary, "summary", "", "Summary CSV path")
	generateCmd.Flags().StringVarP(&flagFormat, "format", "f", "", formatUsage("Artifact format"))
	generateCmd.Flags().StringVar(&flagNamePattern, "name-pattern", "", "Artifact file name pattern with one %d")
	generateCmd.Flags().IntVarP(&flagWorkers, "workers", "w", 0, "Concurrent level writers")
	generateCmd.Flags().StringVar(&flagGenDBPath, "db", "", "Record the run in this history database")
	generateCmd.Flags().BoolVar(&flagHistory, "history", false, "Record the run in the configured history database")
}

// applyGenerateFlags layers explicitly set flags over the configuration.
func applyGenerateFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("number") {
		cfg.Levels = flagCount
	}
	if flags.Changed("out") {
		cfg.Output.Dir = flagOutDir
	}
	if flags.Changed("summary") {
		cfg.Output.Summary = flagSummary
	}
	if flags.Changed("format") {
		cfg.Output.Format = flagFormat
	}
	if flags.Changed("name-pattern") {
		cfg.Output.NamePattern = flagNamePattern
	}
	if flags.Changed("workers") {
		cfg.Workers = flagWorkers
	}
	if flags.Changed("history") {
		cfg.History.Enabled = flagHistory
	}
	if flags.Changed("db") {
		cfg.History.Enabled = true
		cfg.History.DBPath = flagGenDBPath
	}
}

func runGenerate(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyGenerateFlags(cmd, &cfg)
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	writer, err := export.NewArtifactWriter(cfg.Output.Dir, cfg.Output.NamePattern, cfg.Output.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := batch.Options{
		From:        1,
		To:          cfg.Levels,
		Workers:     cfg.Workers,
		Generator:   levelgen.NewGenerator(levelgen.GenParams{Seed: cfg.Seed}),
		Sink:        writer,
		SummaryPath: cfg.Output.Summary,
		Format:      writer.Format(),
		OutputDir:   writer.Dir(),
		Logger:      logger,
	}

	if cfg.History.Enabled {
		store := openHistory(cfg.History.DBPath, logger)
		if store != nil {
			defer store.Close()
			opts.Recorder = store
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := batch.Run(ctx, opts)
	if err != nil {
		if level, ok := levelgen.FailedLevel(err); ok {
			fmt.Fprintf(os.Stderr, "Error: generation failed at level %d: %v\n", level, err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: generation failed: %v\n", err)
		}
		stop()
		os.Exit(1)
	}

	fmt.Printf("Generated %d levels and %s successfully!\n", len(result.Rows), cfg.Output.Summary)
	if result.RunID != 0 {
		fmt.Printf("Recorded as run %d. View with 'levelgen summary %d'.\n", result.RunID, result.RunID)
	}
}

// openHistory opens the run history. A database that cannot be opened
// does not block generation.
func openHistory(dbPath string, logger *log.Logger) *storage.Store {
	store, err := storage.Open(dbPath)
	if err != nil {
		logger.Warn("history disabled", "db", dbPath, "error", err)
		return nil
	}
	return store
}

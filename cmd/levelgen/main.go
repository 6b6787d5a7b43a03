// levelgen generates tile-matching puzzle levels and their summary table.
//
// Usage:
//
//	levelgen generate          - Generate levels 1..N, artifacts and summary CSV
//	levelgen show <level>      - Print a single level artifact
//	levelgen history           - List recorded runs
//	levelgen summary [run-id]  - Show the summary table of a recorded run
//	levelgen verify            - Check artifacts against the summary CSV
//
// Global flags:
//
//	--config <path>     - Configuration file
//	--seed <value>      - RNG seed for reproducible output (0 = random)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/levelgen/internal/config"
	"github.com/vovakirdan/levelgen/internal/export"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     uint64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "levelgen",
	Short: "Procedural level generator for tile-matching puzzles",
	Long: `levelgen produces level definitions for a tile-matching puzzle game:
grid size, theme, tile budget, special tiles, timer, gravity and
circle modifier, following a repeating difficulty wave.

Available commands:
  generate - Generate a batch of levels and the summary table
  show     - Print one level
  history  - List recorded runs
  summary  - Show the summary table of a recorded run
  verify   - Check generated artifacts against the summary table

Examples:
  levelgen generate
  levelgen generate -n 200 --format yaml --out levels
  levelgen show 10 --seed 42
  levelgen verify`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(verifyCmd)
}

// loadConfig loads the configuration and applies the global flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = flagSeed
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	return cfg, nil
}

// newLogger creates the stderr logger for a command.
func newLogger(level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "levelgen",
	})
	logger.SetLevel(lvl)
	return logger, nil
}

// styled reports whether stdout is a terminal.
func styled() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// formatUsage appends the registered artifact formats to a flag description.
func formatUsage(desc string) string {
	return fmt.Sprintf("%s: %s", desc, strings.Join(export.Formats(), ", "))
}

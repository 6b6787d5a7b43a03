package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelgen/internal/report"
	"github.com/vovakirdan/levelgen/internal/storage"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [run-id]",
	Short: "Show the summary table of a recorded run",
	Long: `Render the per-level summary table of a run from the history database.
Without a run ID the latest run is shown.

Examples:
  levelgen summary
  levelgen summary 3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&flagHistoryDB, "db", "", "Path to history database (default from config)")
}

func runSummary(cmd *cobra.Command, args []string) {
	var runID int64
	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id < 1 {
			fmt.Fprintf(os.Stderr, "Error: run ID must be a positive integer, got %q\n", args[0])
			os.Exit(1)
		}
		runID = id
	}

	store := openStore(cmd)
	defer store.Close()

	var run *storage.Run
	var err error
	if runID == 0 {
		run, err = store.LatestRun()
	} else {
		run, err = store.RunByID(runID)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving run: %v\n", err)
		os.Exit(1)
	}
	if run == nil {
		fmt.Println("No matching run recorded.")
		fmt.Println()
		fmt.Println("Run 'levelgen history' to see recorded runs.")
		return
	}

	rows, err := store.RunLevels(run.ID)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving levels: %v\n", err)
		os.Exit(1)
	}

	color := styled()
	fmt.Println(report.Title(fmt.Sprintf("Run %d - %d levels, seed %d, %s",
		run.ID, run.LevelCount, run.Seed, run.CreatedAt.Format("2006-01-02 15:04")), color))
	fmt.Println(report.Muted(fmt.Sprintf("Artifacts: %s (%s)  Summary: %s", run.OutputDir, run.Format, run.SummaryPath), color))
	fmt.Println()
	fmt.Println(report.SummaryTable(rows, color))
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelgen/internal/config"
	"github.com/vovakirdan/levelgen/internal/report"
	"github.com/vovakirdan/levelgen/internal/storage"
)

var (
	flagHistoryDB    string
	flagHistoryLimit int
	flagDeleteRun    int64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded generation runs",
	Long: `Display the most recent runs recorded in the history database.
Runs are recorded when history is enabled in the config or generate is
called with --db.

Examples:
  levelgen history
  levelgen history --limit 25
  levelgen history --delete 3`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryDB, "db", "", "Path to history database (default from config)")
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 10, "Number of runs to show")
	historyCmd.Flags().Int64Var(&flagDeleteRun, "delete", 0, "Delete the run with this ID")
}

// openStore opens the history database named by --db or the config.
func openStore(cmd *cobra.Command) *storage.Store {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	dbPath := cfg.History.DBPath
	if cmd.Flags().Changed("db") {
		dbPath = flagHistoryDB
	}
	if dbPath == "" {
		dbPath = config.DefaultConfig().History.DBPath
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runHistory(cmd *cobra.Command, _ []string) {
	store := openStore(cmd)
	defer store.Close()

	if cmd.Flags().Changed("delete") {
		run, err := store.RunByID(flagDeleteRun)
		if err == nil && run == nil {
			err = fmt.Errorf("no run with ID %d", flagDeleteRun)
		}
		if err == nil {
			err = store.DeleteRun(flagDeleteRun)
		}
		if err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error deleting run: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted run %d.\n", flagDeleteRun)
		return
	}

	runs, err := store.RecentRuns(flagHistoryLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	color := styled()
	fmt.Println(report.Title("Recent runs", color))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println(report.Muted("Run 'levelgen generate --history' to record one.", color))
		return
	}

	fmt.Println(report.RunsTable(runs, color))
}

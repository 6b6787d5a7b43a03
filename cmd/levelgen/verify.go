package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/levelgen/internal/batch"
	"github.com/vovakirdan/levelgen/internal/export"
	"github.com/vovakirdan/levelgen/internal/report"
)

var (
	flagVerifyOut     string
	flagVerifySummary string
	flagVerifyFormat  string
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check generated artifacts against the summary table",
	Long: `Re-read the summary CSV and every artifact it lists. Each artifact must
satisfy the level invariants and match its summary row. Exits 1 when
any problem is found.

Examples:
  levelgen verify
  levelgen verify --out levels --summary levels/summary.csv --format yaml`,
	Args: cobra.NoArgs,
	Run:  runVerify,
}

func init() {
	verifyCmd.Flags().StringVarP(&flagVerifyOut, "out", "o", "", "Artifact directory (default from config)")
	verifyCmd.Flags().StringVar(&flagVerifySummary, "summary", "", "Summary CSV path (default from config)")
	verifyCmd.Flags().StringVarP(&flagVerifyFormat, "format", "f", "", formatUsage("Artifact format (default from config)"))
}

func runVerify(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	flags := cmd.Flags()
	if flags.Changed("out") {
		cfg.Output.Dir = flagVerifyOut
	}
	if flags.Changed("summary") {
		cfg.Output.Summary = flagVerifySummary
	}
	if flags.Changed("format") {
		cfg.Output.Format = flagVerifyFormat
	}
	cfg.Normalize()

	writer, err := export.NewArtifactWriter(cfg.Output.Dir, cfg.Output.NamePattern, cfg.Output.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	result, err := batch.Verify(cfg.Output.Summary, writer.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading summary: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(report.VerifyReport(result, styled()))
	if !result.OK() {
		os.Exit(1)
	}
}

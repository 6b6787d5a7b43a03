// Package report renders summary tables and run history for the terminal.
// Styled output uses the scoreboard palette; plain output carries no ANSI
// sequences and is safe for pipes and files.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vovakirdan/levelgen/internal/batch"
	"github.com/vovakirdan/levelgen/internal/export"
	"github.com/vovakirdan/levelgen/internal/storage"
)

// Palette shared by all tables.
var (
	borderColor = lipgloss.Color("240")
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	peakStyle   = cellStyle.Foreground(lipgloss.Color("208"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// SummaryTable renders summary rows with the same columns as the CSV.
// Circle levels are highlighted when styled is set.
func SummaryTable(rows []export.Row, styled bool) string {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = r.Record()
	}

	t := newTable(styled).Headers(export.SummaryHeader...).Rows(records...)
	if styled {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(rows) && rows[row].Circle:
				return peakStyle
			default:
				return cellStyle
			}
		})
	}
	return t.String()
}

// RunsTable renders recorded runs, newest first as returned by the store.
func RunsTable(runs []storage.Run, styled bool) string {
	records := make([][]string, len(runs))
	for i, r := range runs {
		records[i] = []string{
			strconv.FormatInt(r.ID, 10),
			r.CreatedAt.Format("2006-01-02 15:04"),
			strconv.Itoa(r.LevelCount),
			strconv.FormatUint(r.Seed, 10),
			r.Format,
			r.OutputDir,
			r.SummaryPath,
		}
	}

	t := newTable(styled).
		Headers("Run", "Date", "Levels", "Seed", "Format", "Output", "Summary").
		Rows(records...)
	if styled {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	}
	return t.String()
}

// VerifyReport renders the outcome of batch.Verify.
func VerifyReport(r batch.Report, styled bool) string {
	var b strings.Builder
	if r.OK() {
		line := fmt.Sprintf("OK: %d levels verified", r.Levels)
		if styled {
			line = okStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
		return b.String()
	}

	head := fmt.Sprintf("FAILED: %d problem(s) in %d levels", len(r.Problems), r.Levels)
	if styled {
		head = errStyle.Render(head)
	}
	b.WriteString(head)
	b.WriteByte('\n')
	for _, p := range r.Problems {
		fmt.Fprintf(&b, "  %s\n", p)
	}
	return b.String()
}

// Title renders a section heading.
func Title(s string, styled bool) string {
	if styled {
		return titleStyle.Render(s)
	}
	return s
}

// Muted renders secondary text such as hints.
func Muted(s string, styled bool) string {
	if styled {
		return mutedStyle.Render(s)
	}
	return s
}

func newTable(styled bool) *table.Table {
	t := table.New()
	if styled {
		return t.Border(lipgloss.RoundedBorder()).BorderStyle(lipgloss.NewStyle().Foreground(borderColor))
	}
	return t.Border(lipgloss.ASCIIBorder()).StyleFunc(func(row, col int) lipgloss.Style {
		return cellStyle
	})
}

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/vovakirdan/levelgen/internal/levelgen"
)

// SummaryHeader is the column layout of the summary table. Downstream
// tooling depends on these names and their order.
var SummaryHeader = []string{
	"Level",
	"GridHeight",
	"GridWidth",
	"TotalTiles",
	"RocketTiles",
	"BombEffects",
	"NormalTilesSum",
	"Difficulty",
	"Time",
	"Gravity",
	"Circle",
}

// Row is one line of the summary table.
type Row struct {
	Level          int
	GridHeight     int
	GridWidth      int
	TotalTiles     int
	RocketTiles    int
	BombEffects    int
	NormalTilesSum int
	Difficulty     float64
	Time           int
	Gravity        int
	Circle         bool
}

// RowFromSpec summarizes a generated level.
func RowFromSpec(s levelgen.LevelSpec) Row {
	return Row{
		Level:          s.Level,
		GridHeight:     s.GridHeight,
		GridWidth:      s.GridWidth,
		TotalTiles:     s.Tiles.TotalTiles,
		RocketTiles:    s.Tiles.RocketTiles,
		BombEffects:    s.Tiles.BombEffects,
		NormalTilesSum: s.Tiles.NormalTilesSum(),
		Difficulty:     s.Difficulty,
		Time:           s.Time,
		Gravity:        s.Gravity,
		Circle:         s.Circle,
	}
}

// Record returns the row as CSV fields in SummaryHeader order.
func (r Row) Record() []string {
	return []string{
		strconv.Itoa(r.Level),
		strconv.Itoa(r.GridHeight),
		strconv.Itoa(r.GridWidth),
		strconv.Itoa(r.TotalTiles),
		strconv.Itoa(r.RocketTiles),
		strconv.Itoa(r.BombEffects),
		strconv.Itoa(r.NormalTilesSum),
		FormatDifficulty(r.Difficulty),
		strconv.Itoa(r.Time),
		strconv.Itoa(r.Gravity),
		formatBool(r.Circle),
	}
}

// ParseRow parses CSV fields in SummaryHeader order.
func ParseRow(record []string) (Row, error) {
	if len(record) != len(SummaryHeader) {
		return Row{}, fmt.Errorf("expected %d fields, got %d", len(SummaryHeader), len(record))
	}

	var r Row
	ints := []*int{
		&r.Level, &r.GridHeight, &r.GridWidth, &r.TotalTiles,
		&r.RocketTiles, &r.BombEffects, &r.NormalTilesSum,
	}
	for i, dst := range ints {
		v, err := strconv.Atoi(record[i])
		if err != nil {
			return Row{}, fmt.Errorf("column %s: %w", SummaryHeader[i], err)
		}
		*dst = v
	}

	d, err := strconv.ParseFloat(record[7], 64)
	if err != nil {
		return Row{}, fmt.Errorf("column Difficulty: %w", err)
	}
	r.Difficulty = d

	if r.Time, err = strconv.Atoi(record[8]); err != nil {
		return Row{}, fmt.Errorf("column Time: %w", err)
	}
	if r.Gravity, err = strconv.Atoi(record[9]); err != nil {
		return Row{}, fmt.Errorf("column Gravity: %w", err)
	}
	if r.Circle, err = strconv.ParseBool(record[10]); err != nil {
		return Row{}, fmt.Errorf("column Circle: %w", err)
	}

	return r, nil
}

// formatBool writes booleans the way existing summary consumers expect.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// WriteSummary writes the summary table in a single pass. The file is
// replaced atomically, so a failed write leaves any previous table intact.
func WriteSummary(path string, rows []Row) error {
	return writeFileAtomic(path, func(w io.Writer) error {
		return EncodeSummary(w, rows)
	})
}

// EncodeSummary writes the header and rows as CSV.
func EncodeSummary(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return fmt.Errorf("csv write header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("csv write level %d: %w", r.Level, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}
	return nil
}

// ReadSummary loads a summary table and checks its header.
func ReadSummary(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading summary %s: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing summary %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing summary %s: empty file", path)
	}
	if !slices.Equal(records[0], SummaryHeader) {
		return nil, fmt.Errorf("parsing summary %s: unexpected header %v", path, records[0])
	}

	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		r, err := ParseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("parsing summary %s line %d: %w", path, i+2, err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

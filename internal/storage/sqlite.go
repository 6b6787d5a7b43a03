// Package storage provides SQLite-based persistence for generation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/levelgen/internal/batch"
	"github.com/vovakirdan/levelgen/internal/config"
	"github.com/vovakirdan/levelgen/internal/export"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run represents one recorded generation run.
type Run struct {
	ID          int64
	Seed        uint64
	LevelCount  int
	Format      string
	OutputDir   string
	SummaryPath string
	CreatedAt   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed TEXT NOT NULL DEFAULT '0',
			level_count INTEGER NOT NULL,
			format TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			summary_path TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS run_levels (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			level INTEGER NOT NULL,
			grid_height INTEGER NOT NULL,
			grid_width INTEGER NOT NULL,
			total_tiles INTEGER NOT NULL,
			rocket_tiles INTEGER NOT NULL,
			bomb_effects INTEGER NOT NULL,
			normal_tiles_sum INTEGER NOT NULL,
			difficulty REAL NOT NULL,
			time_secs INTEGER NOT NULL,
			gravity INTEGER NOT NULL,
			circle INTEGER NOT NULL,
			PRIMARY KEY (run_id, level)
		);
		CREATE INDEX IF NOT EXISTS idx_run_levels_run_id ON run_levels(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a run and its summary rows in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(run Run, rows []export.Row) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO runs (seed, level_count, format, output_dir, summary_path)
		 VALUES (?, ?, ?, ?, ?)`,
		fmt.Sprint(run.Seed), len(rows), run.Format, run.OutputDir, run.SummaryPath,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO run_levels
		 (run_id, level, grid_height, grid_width, total_tiles, rocket_tiles, bomb_effects,
		  normal_tiles_sum, difficulty, time_secs, gravity, circle)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare level insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.Exec(
			id, r.Level, r.GridHeight, r.GridWidth, r.TotalTiles, r.RocketTiles, r.BombEffects,
			r.NormalTilesSum, r.Difficulty, r.Time, r.Gravity, r.Circle,
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save level %d: %w", r.Level, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// RecentRuns retrieves the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, seed, level_count, format, output_dir, summary_path, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunByID retrieves a run by its ID. Returns nil if it does not exist.
func (s *Store) RunByID(id int64) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, seed, level_count, format, output_dir, summary_path, created_at
		 FROM runs WHERE id = ?`,
		id,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// LatestRun retrieves the most recent run. Returns nil if none exist.
func (s *Store) LatestRun() (*Run, error) {
	runs, err := s.RecentRuns(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// RunLevels retrieves the summary rows of a run ordered by level.
func (s *Store) RunLevels(runID int64) ([]export.Row, error) {
	rows, err := s.db.Query(
		`SELECT level, grid_height, grid_width, total_tiles, rocket_tiles, bomb_effects,
		        normal_tiles_sum, difficulty, time_secs, gravity, circle
		 FROM run_levels
		 WHERE run_id = ?
		 ORDER BY level`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run levels: %w", err)
	}
	defer rows.Close()

	var result []export.Row
	for rows.Next() {
		var r export.Row
		if err := rows.Scan(
			&r.Level, &r.GridHeight, &r.GridWidth, &r.TotalTiles, &r.RocketTiles, &r.BombEffects,
			&r.NormalTilesSum, &r.Difficulty, &r.Time, &r.Gravity, &r.Circle,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		result = append(result, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return result, nil
}

// DeleteRun removes a run and its levels.
func (s *Store) DeleteRun(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM run_levels WHERE run_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete run levels: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit delete: %w", err)
	}
	return nil
}

// RecordRun implements batch.RunRecorder.
// This adapter allows the batch driver to record runs without direct storage dependency.
func (s *Store) RecordRun(data batch.RunData) (int64, error) {
	return s.SaveRun(Run{
		Seed:        data.Seed,
		Format:      data.Format,
		OutputDir:   data.OutputDir,
		SummaryPath: data.SummaryPath,
	}, data.Rows)
}

// Ensure Store implements RunRecorder
var _ batch.RunRecorder = (*Store)(nil)

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var run Run
	var seed string
	var createdAt any
	if err := sc.Scan(
		&run.ID, &seed, &run.LevelCount, &run.Format,
		&run.OutputDir, &run.SummaryPath, &createdAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return run, err
		}
		return run, fmt.Errorf("storage: cannot scan run: %w", err)
	}

	if _, err := fmt.Sscan(seed, &run.Seed); err != nil {
		return run, fmt.Errorf("storage: invalid seed %q: %w", seed, err)
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		run.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			run.CreatedAt = parsed
		}
	}
	return run, nil
}

// Package store handles SQLite persistence of counter runs.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/tally/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			mode TEXT NOT NULL,
			unit TEXT NOT NULL,
			total_lines INTEGER NOT NULL,
			total_words INTEGER NOT NULL,
			total_bytes INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_sources (
			run_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			label TEXT NOT NULL,
			lines INTEGER NOT NULL,
			words INTEGER NOT NULL,
			bytes INTEGER NOT NULL,
			PRIMARY KEY (run_id, position)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a run and its per-source counts in one transaction.
func (s *Store) InsertRun(ctx context.Context, run model.Run) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, mode, unit, total_lines, total_words, total_bytes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339Nano),
		run.Mode,
		run.Unit,
		run.Total.Lines,
		run.Total.Words,
		run.Total.Bytes,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(run.Sources) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO run_sources (run_id, position, label, lines, words, bytes)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, src := range run.Sources {
			if _, err = stmt.ExecContext(ctx, id, i, src.Label, src.Lines, src.Words, src.Bytes); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns the most recent runs, oldest first. A limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	query := `SELECT r.id, r.started_at, r.mode, r.unit, r.total_lines, r.total_words, r.total_bytes,
		(SELECT COUNT(*) FROM run_sources rs WHERE rs.run_id = r.id) AS sources
		FROM runs r
		ORDER BY r.id DESC
		LIMIT ?`
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunSummary
	for rows.Next() {
		var run model.RunSummary
		var startedAt string
		if err := rows.Scan(&run.RunID, &startedAt, &run.Mode, &run.Unit,
			&run.Total.Lines, &run.Total.Words, &run.Total.Bytes, &run.Sources); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, err
		}
		run.StartedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	return runs, nil
}

// ListRunSources returns the per-source counts of one run in the order they were counted.
func (s *Store) ListRunSources(ctx context.Context, runID int64) ([]model.SourceCounts, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, lines, words, bytes FROM run_sources WHERE run_id = ? ORDER BY position ASC`,
		runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sources []model.SourceCounts
	for rows.Next() {
		var src model.SourceCounts
		if err := rows.Scan(&src.Label, &src.Lines, &src.Words, &src.Bytes); err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sources, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/bleu/pkg/bleu/internalerr"
	"github.com/cognicore/bleu/pkg/bleu/store"
)

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled and the schema
// initialized.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	candidate TEXT,
	refs_json TEXT,
	max_order INTEGER NOT NULL,
	score REAL NOT NULL,
	brevity_penalty REAL NOT NULL,
	sentences INTEGER DEFAULT 0,
	skipped INTEGER DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);

CREATE TABLE IF NOT EXISTS run_precisions (
	run_id TEXT NOT NULL,
	n INTEGER NOT NULL,
	value REAL NOT NULL,
	PRIMARY KEY(run_id, n),
	FOREIGN KEY(run_id) REFERENCES runs(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun inserts or replaces a run
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("run without id: %w", internalerr.ErrInvalidInput)
	}

	refsJSON, err := json.Marshal(r.References)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO runs (id, created_at, candidate, refs_json, max_order, score, brevity_penalty, sentences, skipped)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	created_at=excluded.created_at,
	candidate=excluded.candidate,
	refs_json=excluded.refs_json,
	max_order=excluded.max_order,
	score=excluded.score,
	brevity_penalty=excluded.brevity_penalty,
	sentences=excluded.sentences,
	skipped=excluded.skipped;
`
	_, err = tx.ExecContext(
		ctx,
		stmt,
		r.ID,
		r.CreatedAt.UTC().Format(timeLayout),
		r.Candidate,
		string(refsJSON),
		r.MaxOrder,
		r.Score,
		r.BrevityPenalty,
		r.Sentences,
		r.Skipped,
	)
	if err != nil {
		return err
	}

	if err := replacePrecisions(ctx, tx, r.ID, r.Precisions); err != nil {
		return err
	}

	return tx.Commit()
}

func replacePrecisions(ctx context.Context, tx *sql.Tx, runID string, precisions []float64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM run_precisions WHERE run_id=?`, runID); err != nil {
		return err
	}
	if len(precisions) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO run_precisions (run_id, n, value) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, p := range precisions {
		if _, err := stmt.ExecContext(ctx, runID, i+1, p); err != nil {
			return err
		}
	}
	return nil
}

// GetRun retrieves a run by ID
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, created_at, candidate, refs_json, max_order, score, brevity_penalty, sentences, skipped
FROM runs WHERE id = ?`, id)

	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return store.Run{}, false, nil
	}
	if err != nil {
		return store.Run{}, false, err
	}

	if r.Precisions, err = s.loadPrecisions(ctx, r.ID); err != nil {
		return store.Run{}, false, err
	}
	return r, true, nil
}

// ListRuns returns the newest runs first
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, created_at, candidate, refs_json, max_order, score, brevity_penalty, sentences, skipped
FROM runs
ORDER BY created_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}

	var runs []store.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range runs {
		if runs[i].Precisions, err = s.loadPrecisions(ctx, runs[i].ID); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// DeleteRun removes a run and its precisions
func (s *sqliteStore) DeleteRun(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM run_precisions WHERE run_id=?`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id=?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return tx.Commit()
}

func (s *sqliteStore) loadPrecisions(ctx context.Context, runID string) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT value FROM run_precisions WHERE run_id=? ORDER BY n`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var p float64
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (store.Run, error) {
	var (
		r         store.Run
		createdAt string
		candidate sql.NullString
		refsJSON  sql.NullString
	)
	if err := sc.Scan(&r.ID, &createdAt, &candidate, &refsJSON, &r.MaxOrder, &r.Score, &r.BrevityPenalty, &r.Sentences, &r.Skipped); err != nil {
		return store.Run{}, err
	}

	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return store.Run{}, fmt.Errorf("run %s created_at %q: %w", r.ID, createdAt, internalerr.ErrInvalidInput)
	}
	r.CreatedAt = t
	r.Candidate = candidate.String

	if refsJSON.Valid && refsJSON.String != "" {
		if err := json.Unmarshal([]byte(refsJSON.String), &r.References); err != nil {
			return store.Run{}, fmt.Errorf("run %s references: %w", r.ID, err)
		}
	}
	return r, nil
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ManuGH/connect4/internal/persistence/sqlite"
)

const (
	schemaVersion = 1
)

// SqliteStore implements Store using SQLite.
type SqliteStore struct {
	DB   *sql.DB
	path string
}

// NewSqliteStore opens (and migrates) the history database at dbPath.
func NewSqliteStore(dbPath string) (*SqliteStore, error) {
	db, err := sqlite.Open(dbPath, sqlite.DefaultConfig())
	if err != nil {
		return nil, err
	}

	s := &SqliteStore{DB: db, path: dbPath}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history store: migration failed: %w", err)
	}

	return s, nil
}

// Path returns the database file.
func (s *SqliteStore) Path() string { return s.path }

func (s *SqliteStore) migrate() error {
	var currentVersion int
	if err := s.DB.QueryRow("PRAGMA user_version").Scan(&currentVersion); err != nil {
		return err
	}

	if currentVersion >= schemaVersion {
		return nil
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	schema := `
	CREATE TABLE IF NOT EXISTS matches (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		difficulty TEXT NOT NULL DEFAULT '',
		red_label TEXT NOT NULL DEFAULT '',
		yellow_label TEXT NOT NULL DEFAULT '',
		moves TEXT NOT NULL,
		move_count INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		started_at_ms INTEGER NOT NULL,
		finished_at_ms INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_matches_finished ON matches(finished_at_ms);
	CREATE INDEX IF NOT EXISTS idx_matches_mode ON matches(mode, difficulty, outcome);
	`

	if _, err := tx.Exec(schema); err != nil {
		return err
	}

	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SqliteStore) Save(ctx context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	query := `
	INSERT INTO matches (id, mode, difficulty, red_label, yellow_label, moves, move_count, outcome, started_at_ms, finished_at_ms)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		mode = excluded.mode,
		difficulty = excluded.difficulty,
		red_label = excluded.red_label,
		yellow_label = excluded.yellow_label,
		moves = excluded.moves,
		move_count = excluded.move_count,
		outcome = excluded.outcome,
		started_at_ms = excluded.started_at_ms,
		finished_at_ms = excluded.finished_at_ms
	`
	_, err := s.DB.ExecContext(ctx, query,
		rec.ID, rec.Mode, rec.Difficulty, rec.RedLabel, rec.YellowLabel,
		encodeMoves(rec.Moves), len(rec.Moves), rec.Outcome,
		rec.StartedAt.UnixMilli(), rec.FinishedAt.UnixMilli(),
	)
	return err
}

const selectColumns = `id, mode, difficulty, red_label, yellow_label, moves, outcome, started_at_ms, finished_at_ms`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec                 Record
		moves               string
		startedMs, finished int64
	)
	if err := row.Scan(&rec.ID, &rec.Mode, &rec.Difficulty, &rec.RedLabel, &rec.YellowLabel,
		&moves, &rec.Outcome, &startedMs, &finished); err != nil {
		return Record{}, err
	}
	m, err := decodeMoves(moves)
	if err != nil {
		return Record{}, err
	}
	rec.Moves = m
	rec.StartedAt = time.UnixMilli(startedMs).UTC()
	rec.FinishedAt = time.UnixMilli(finished).UTC()
	return rec, nil
}

func (s *SqliteStore) Get(ctx context.Context, id string) (Record, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM matches WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

func (s *SqliteStore) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM matches ORDER BY finished_at_ms DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SqliteStore) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT mode, difficulty, outcome, COUNT(*) FROM matches GROUP BY mode, difficulty, outcome`)
	if err != nil {
		return Stats{}, err
	}
	defer rows.Close()

	st := newStats()
	for rows.Next() {
		var mode, difficulty, outcome string
		var n int
		if err := rows.Scan(&mode, &difficulty, &outcome, &n); err != nil {
			return Stats{}, err
		}
		st.add(mode, difficulty, outcome, n)
	}
	return st, rows.Err()
}

// Check verifies the database is reachable and structurally sound.
func (s *SqliteStore) Check(ctx context.Context) error {
	return sqlite.Check(ctx, s.DB)
}

func (s *SqliteStore) Backend() string { return "sqlite" }

func (s *SqliteStore) Close() error {
	return s.DB.Close()
}

package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			start_ts TEXT NOT NULL,
			motion_level TEXT NOT NULL DEFAULT 'full',
			deceleration_rate REAL NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS transitions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			ts TEXT NOT NULL,
			source TEXT NOT NULL,
			command TEXT NOT NULL DEFAULT '',
			from_progress REAL NOT NULL,
			target REAL NOT NULL,
			velocity REAL NOT NULL DEFAULT 0,
			interrupted INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY(session_id) REFERENCES sessions(id)
		);`,
		`CREATE INDEX IF NOT EXISTS transitions_session ON transitions(session_id);`,
		`CREATE TABLE IF NOT EXISTS app_settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) StartSession(ctx context.Context, session Session) error {
	id := strings.TrimSpace(session.ID)
	if id == "" {
		return fmt.Errorf("session id is required")
	}
	start := session.StartTS
	if start.IsZero() {
		start = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO sessions(id, start_ts, motion_level, deceleration_rate) VALUES(?,?,?,?)`,
		id,
		start.UTC().Format(timeLayout),
		strings.TrimSpace(session.MotionLevel),
		session.DecelerationRate,
	)
	return err
}

func (s *SQLiteStore) RecordTransition(ctx context.Context, tr Transition) (int64, error) {
	ts := tr.TS
	if ts.IsZero() {
		ts = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO transitions(session_id, ts, source, command, from_progress, target, velocity, interrupted)
		VALUES(?,?,?,?,?,?,?,?)
	`,
		tr.SessionID,
		ts.UTC().Format(timeLayout),
		tr.Source,
		tr.Command,
		tr.FromProgress,
		tr.Target,
		tr.Velocity,
		ifThen(tr.Interrupted, 1, 0),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) RecentTransitions(ctx context.Context, limit int) ([]Transition, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, ts, source, command, from_progress, target, velocity, interrupted
		FROM transitions
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Transition, 0, limit)
	for rows.Next() {
		var (
			tr          Transition
			tsRaw       string
			interrupted int
		)
		if err := rows.Scan(&tr.ID, &tr.SessionID, &tsRaw, &tr.Source, &tr.Command, &tr.FromProgress, &tr.Target, &tr.Velocity, &interrupted); err != nil {
			return nil, err
		}
		if t, err := time.Parse(timeLayout, tsRaw); err == nil {
			tr.TS = t
		}
		tr.Interrupted = interrupted != 0
		out = append(out, tr)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) GetSummary(ctx context.Context) (Summary, error) {
	var out Summary
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&out.Sessions); err != nil {
		return Summary{}, err
	}
	row := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN source = 'command' THEN 1 ELSE 0 END),0),
			COALESCE(SUM(CASE WHEN source = 'gesture' THEN 1 ELSE 0 END),0),
			COALESCE(SUM(CASE WHEN source = 'backdrop' THEN 1 ELSE 0 END),0),
			COALESCE(SUM(CASE WHEN target >= 1 THEN 1 ELSE 0 END),0),
			COALESCE(SUM(CASE WHEN target <= 0 THEN 1 ELSE 0 END),0),
			COALESCE(SUM(interrupted),0)
		FROM transitions
	`)
	if err := row.Scan(&out.Transitions, &out.Commands, &out.Gestures, &out.BackdropTaps, &out.Opens, &out.Closes, &out.Interruptions); err != nil {
		return Summary{}, err
	}
	return out, nil
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	for key, value := range values {
		k := strings.TrimSpace(key)
		if k == "" {
			continue
		}
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO app_settings(key, value) VALUES(?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, k, value); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) LoadSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM app_settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

func ifThen(cond bool, yes, no int) int {
	if cond {
		return yes
	}
	return no
}

var _ Store = (*SQLiteStore)(nil)

// Package progress persists per-level attempt statistics in SQLite.
package progress

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Record is the stored line for one level key.
type Record struct {
	Key         string        `db:"key"`
	Title       string        `db:"title"`
	Attempts    int           `db:"attempts"`
	Completions int           `db:"completions"`
	BestMs      sql.NullInt64 `db:"best_ms"`
	LastUnix    int64         `db:"last_unix"`
}

// Best reports the fastest completion, if any.
func (r *Record) Best() (time.Duration, bool) {
	if !r.BestMs.Valid {
		return 0, false
	}
	return time.Duration(r.BestMs.Int64) * time.Millisecond, true
}

// LastPlayed reports when the level was last attempted.
func (r *Record) LastPlayed() time.Time {
	return time.Unix(r.LastUnix, 0)
}

// Store wraps the SQLite connection.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the progress database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open progress db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate progress db: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS level_progress (
		key TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		attempts INTEGER NOT NULL DEFAULT 0,
		completions INTEGER NOT NULL DEFAULT 0,
		best_ms INTEGER,
		last_unix INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := s.conn.Exec(schema); err != nil {
		return err
	}
	return s.SetMeta("schema_version", schemaVersion)
}

// RecordAttempt bumps the attempt counter for a level, creating its
// line on first contact.
func (s *Store) RecordAttempt(key, title string, now time.Time) error {
	_, err := s.conn.Exec(`
		INSERT INTO level_progress (key, title, attempts, completions, best_ms, last_unix)
		VALUES (?, ?, 1, 0, NULL, ?)
		ON CONFLICT(key) DO UPDATE SET
			attempts = attempts + 1,
			title = excluded.title,
			last_unix = excluded.last_unix`,
		key, title, now.Unix(),
	)
	return err
}

// RecordCompletion bumps the completion counter and keeps the fastest
// time.
func (s *Store) RecordCompletion(key, title string, elapsed time.Duration, now time.Time) error {
	ms := elapsed.Milliseconds()
	_, err := s.conn.Exec(`
		INSERT INTO level_progress (key, title, attempts, completions, best_ms, last_unix)
		VALUES (?, ?, 1, 1, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			completions = completions + 1,
			best_ms = CASE
				WHEN best_ms IS NULL OR excluded.best_ms < best_ms THEN excluded.best_ms
				ELSE best_ms
			END,
			title = excluded.title,
			last_unix = excluded.last_unix`,
		key, title, ms, now.Unix(),
	)
	return err
}

// Get fetches one level's line. The second return reports whether a
// line exists.
func (s *Store) Get(key string) (Record, bool, error) {
	var r Record
	err := s.conn.Get(&r, "SELECT * FROM level_progress WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return r, true, nil
}

// All returns every stored line in key order.
func (s *Store) All() ([]Record, error) {
	var out []Record
	err := s.conn.Select(&out, "SELECT * FROM level_progress ORDER BY key")
	return out, err
}

// SetMeta stores a key-value pair.
func (s *Store) SetMeta(key, value string) error {
	_, err := s.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value; the second return reports
// whether the key exists.
func (s *Store) GetMeta(key string) (string, bool, error) {
	var value string
	err := s.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

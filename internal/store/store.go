package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS lessons (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		name             TEXT NOT NULL,
		type             TEXT NOT NULL DEFAULT 'other',
		duration_minutes INTEGER NOT NULL,
		time             TEXT NOT NULL,
		completed        INTEGER NOT NULL DEFAULT 0,
		color            TEXT NOT NULL DEFAULT '#e0e0e0',
		day              TEXT NOT NULL DEFAULT '',
		created_at       TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_lessons_time ON lessons(time);

	CREATE TABLE IF NOT EXISTS completed_timers (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		lesson_name TEXT NOT NULL,
		lesson_time TEXT NOT NULL,
		start_time  TEXT,
		created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE INDEX IF NOT EXISTS idx_completed_lesson ON completed_timers(lesson_name, lesson_time);

	CREATE TABLE IF NOT EXISTS exam_results (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		exam_type  TEXT NOT NULL,
		date       TEXT NOT NULL,
		track      TEXT,
		nets       TEXT NOT NULL DEFAULT '{}',
		total_net  REAL NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS free_session (
		id               INTEGER PRIMARY KEY CHECK (id = 1),
		start_time       TEXT NOT NULL,
		end_time         TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		topic            TEXT NOT NULL DEFAULT '',
		date             TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('default_duration', '50'),
		('upcoming_limit',   '5'),
		('completion_delay', '3'),
		('ayt_track',        'quant');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/dersplan/dersplan.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "dersplan", "dersplan.db"), nil
}

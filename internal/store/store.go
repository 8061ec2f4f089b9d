package store

import (
	"database/sql"
	"fmt"

	"github.com/nwarren/reps/internal/config"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the reps database.
func Open() (*DB, error) {
	paths := config.GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("creating data dirs: %w", err)
	}

	conn, err := sql.Open("sqlite", paths.DBFile+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the raw sql.DB for direct queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// migrate runs all schema migrations. Every statement is idempotent so
// repeated opens are safe.
func (db *DB) migrate() error {
	migrations := []string{
		// Weekly routines
		`CREATE TABLE IF NOT EXISTS routines (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			active INTEGER DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		// Per-day exercise slots. A day with no rows is a rest day.
		`CREATE TABLE IF NOT EXISTS routine_days (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			routine_id INTEGER NOT NULL REFERENCES routines(id) ON DELETE CASCADE,
			day TEXT NOT NULL,
			position INTEGER NOT NULL DEFAULT 0,
			exercise TEXT NOT NULL,
			sets INTEGER DEFAULT 3,
			reps INTEGER DEFAULT 10,
			weight_kg REAL DEFAULT 0,
			rest_seconds INTEGER DEFAULT 90
		)`,
		`CREATE INDEX IF NOT EXISTS idx_routine_days_routine ON routine_days(routine_id, day, position)`,
		// Workout sessions
		`CREATE TABLE IF NOT EXISTS workouts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ref TEXT NOT NULL UNIQUE,
			routine_id INTEGER NOT NULL REFERENCES routines(id),
			day TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			completed_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_workouts_started ON workouts(started_at)`,
		// Per-exercise completion records for a session
		`CREATE TABLE IF NOT EXISTS workout_exercises (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			workout_id INTEGER NOT NULL REFERENCES workouts(id) ON DELETE CASCADE,
			exercise TEXT NOT NULL,
			sets_done INTEGER DEFAULT 0,
			sets_planned INTEGER DEFAULT 0,
			completed INTEGER DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_workout_exercises_workout ON workout_exercises(workout_id)`,
		// Key-value cache for misc state (active session ref, one-time notices)
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := db.conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

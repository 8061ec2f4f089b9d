package store

import "database/sql"

// Well-known kv keys.
const (
	// KeyActiveSession holds the ref of the workout currently in progress,
	// so `reps log` and `reps done` can find it without scanning.
	KeyActiveSession = "session.active"
	// KeyWelcomeShown marks the one-time first-run hint as shown.
	KeyWelcomeShown = "notice.welcome"
	// KeyStreakSnapshot caches the last dashboard streak line, keyed by
	// date inside the value, so repeat invocations in a day skip the
	// history walk.
	KeyStreakSnapshot = "streak.snapshot"
)

// GetKV returns the value for key, or "" if the key is absent.
func (db *DB) GetKV(key string) (string, error) {
	var v string
	err := db.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return v, err
}

// SetKV upserts a key-value pair.
func (db *DB) SetKV(key, value string) error {
	_, err := db.conn.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	return err
}

// DeleteKV removes a key. Missing keys are not an error.
func (db *DB) DeleteKV(key string) error {
	_, err := db.conn.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

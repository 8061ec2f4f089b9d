package routine

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nwarren/reps/internal/calendar"
)

// Store handles routine persistence.
type Store struct {
	db *sql.DB
}

// NewStore creates a new routine store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Add creates a new routine and returns its ID. New routines start active.
func (s *Store) Add(name string) (int, error) {
	res, err := s.db.Exec(`INSERT INTO routines (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("adding routine: %w", err)
	}
	id, _ := res.LastInsertId()
	return int(id), nil
}

// Get returns a single routine by ID, with its day schedule loaded.
func (s *Store) Get(id int) (*Routine, error) {
	row := s.db.QueryRow(
		`SELECT id, name, active, created_at FROM routines WHERE id = ?`, id,
	)
	r, err := scanRoutineRow(row)
	if err != nil {
		return nil, fmt.Errorf("getting routine #%d: %w", id, err)
	}
	if r == nil {
		return nil, fmt.Errorf("routine #%d not found", id)
	}
	if err := s.loadDays(r); err != nil {
		return nil, fmt.Errorf("loading schedule for routine #%d: %w", id, err)
	}
	return r, nil
}

// GetByName returns a single routine by name, with its day schedule loaded.
func (s *Store) GetByName(name string) (*Routine, error) {
	row := s.db.QueryRow(
		`SELECT id, name, active, created_at FROM routines WHERE name = ?`, name,
	)
	r, err := scanRoutineRow(row)
	if err != nil {
		return nil, fmt.Errorf("getting routine %q: %w", name, err)
	}
	if r == nil {
		return nil, fmt.Errorf("routine %q not found", name)
	}
	if err := s.loadDays(r); err != nil {
		return nil, fmt.Errorf("loading schedule for routine %q: %w", name, err)
	}
	return r, nil
}

// List returns all routines in creation order, schedules loaded. The
// creation ordering is what makes FindRoutineForDay's first-match policy
// deterministic.
func (s *Store) List() ([]Routine, error) {
	rows, err := s.db.Query(
		`SELECT id, name, active, created_at FROM routines ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routines []Routine
	for rows.Next() {
		var r Routine
		var activeInt int
		var createdStr string
		if err := rows.Scan(&r.ID, &r.Name, &activeInt, &createdStr); err != nil {
			return nil, err
		}
		r.Active = activeInt == 1
		r.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdStr)
		routines = append(routines, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range routines {
		if err := s.loadDays(&routines[i]); err != nil {
			return nil, fmt.Errorf("loading schedule for routine #%d: %w", routines[i].ID, err)
		}
	}
	return routines, nil
}

// ListActive returns active routines in creation order.
func (s *Store) ListActive() ([]Routine, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	return ActiveOnly(all), nil
}

// SetActive flips a routine's active flag.
func (s *Store) SetActive(id int, active bool) error {
	activeInt := 0
	if active {
		activeInt = 1
	}
	res, err := s.db.Exec(`UPDATE routines SET active = ? WHERE id = ?`, activeInt, id)
	if err != nil {
		return fmt.Errorf("updating routine: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("routine #%d not found", id)
	}
	return nil
}

// SetDay replaces the exercise list scheduled on a day. An empty list
// makes the day a rest day for this routine.
func (s *Store) SetDay(id int, day calendar.Day, exercises []Exercise) error {
	if !day.Valid() {
		return fmt.Errorf("invalid day %q", day)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM routine_days WHERE routine_id = ? AND day = ?`, id, string(day),
	); err != nil {
		return fmt.Errorf("clearing day schedule: %w", err)
	}

	for i, ex := range exercises {
		if _, err := tx.Exec(
			`INSERT INTO routine_days (routine_id, day, position, exercise, sets, reps, weight_kg, rest_seconds)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, string(day), i, ex.Name, ex.Sets, ex.Reps, ex.WeightKg, ex.RestSeconds,
		); err != nil {
			return fmt.Errorf("scheduling %q on %s: %w", ex.Name, day, err)
		}
	}

	return tx.Commit()
}

// RemoveDay clears a day's schedule, turning it into a rest day.
func (s *Store) RemoveDay(id int, day calendar.Day) error {
	return s.SetDay(id, day, nil)
}

// Delete removes a routine and its day schedule (cascade).
func (s *Store) Delete(id int) error {
	res, err := s.db.Exec(`DELETE FROM routines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting routine: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("routine #%d not found", id)
	}
	return nil
}

// loadDays populates r.Days from routine_days rows.
func (s *Store) loadDays(r *Routine) error {
	rows, err := s.db.Query(
		`SELECT day, exercise, sets, reps, weight_kg, rest_seconds
		 FROM routine_days WHERE routine_id = ? ORDER BY day, position`,
		r.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	r.Days = make(map[calendar.Day][]Exercise)
	for rows.Next() {
		var dayStr string
		var ex Exercise
		if err := rows.Scan(&dayStr, &ex.Name, &ex.Sets, &ex.Reps, &ex.WeightKg, &ex.RestSeconds); err != nil {
			return err
		}
		day := calendar.Day(dayStr)
		r.Days[day] = append(r.Days[day], ex)
	}
	return rows.Err()
}

// scanRoutineRow scans a single routine from a sql.Row.
// Returns (nil, nil) when the row does not exist.
func scanRoutineRow(row *sql.Row) (*Routine, error) {
	var r Routine
	var activeInt int
	var createdStr string

	if err := row.Scan(&r.ID, &r.Name, &activeInt, &createdStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	r.Active = activeInt == 1
	r.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdStr)
	return &r, nil
}

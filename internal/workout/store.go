package workout

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nwarren/reps/internal/calendar"
	"github.com/nwarren/reps/internal/routine"
)

const timeLayout = "2006-01-02 15:04:05"

// Store handles workout persistence.
type Store struct {
	db *sql.DB
}

// NewStore creates a new workout store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Start creates an in-progress workout for the given routine day, seeding
// per-exercise logs from the planned exercise slots.
func (s *Store) Start(routineID int, day calendar.Day, startedAt time.Time, planned []routine.Exercise) (*Workout, error) {
	ref := uuid.New().String()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO workouts (ref, routine_id, day, started_at) VALUES (?, ?, ?, ?)`,
		ref, routineID, string(day), startedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("starting workout: %w", err)
	}
	id, _ := res.LastInsertId()

	w := &Workout{
		ID:        int(id),
		Ref:       ref,
		RoutineID: routineID,
		Day:       day,
		StartedAt: startedAt,
	}
	for _, ex := range planned {
		if _, err := tx.Exec(
			`INSERT INTO workout_exercises (workout_id, exercise, sets_planned) VALUES (?, ?, ?)`,
			id, ex.Name, ex.Sets,
		); err != nil {
			return nil, fmt.Errorf("seeding exercise %q: %w", ex.Name, err)
		}
		w.Exercises = append(w.Exercises, ExerciseLog{Name: ex.Name, SetsPlanned: ex.Sets})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return w, nil
}

// Import inserts a fully-formed workout, keeping its ref, timestamps, and
// exercise logs. Used by backup restore. Refs already present are an error
// so callers can skip duplicates explicitly.
func (s *Store) Import(w *Workout) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var completed any
	if w.CompletedAt != nil {
		completed = w.CompletedAt.UTC().Format(timeLayout)
	}
	res, err := tx.Exec(
		`INSERT INTO workouts (ref, routine_id, day, started_at, completed_at) VALUES (?, ?, ?, ?, ?)`,
		w.Ref, w.RoutineID, string(w.Day), w.StartedAt.UTC().Format(timeLayout), completed,
	)
	if err != nil {
		return fmt.Errorf("importing workout %s: %w", w.Ref, err)
	}
	id, _ := res.LastInsertId()
	w.ID = int(id)

	for _, l := range w.Exercises {
		completedInt := 0
		if l.Completed {
			completedInt = 1
		}
		if _, err := tx.Exec(
			`INSERT INTO workout_exercises (workout_id, exercise, sets_done, sets_planned, completed) VALUES (?, ?, ?, ?, ?)`,
			id, l.Name, l.SetsDone, l.SetsPlanned, completedInt,
		); err != nil {
			return fmt.Errorf("importing exercise %q: %w", l.Name, err)
		}
	}

	return tx.Commit()
}

// Exists reports whether a workout with the given ref is already stored.
func (s *Store) Exists(ref string) (bool, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM workouts WHERE ref = ?`, ref).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkExercise records progress on one exercise of a workout.
func (s *Store) MarkExercise(workoutID int, name string, setsDone int, completed bool) error {
	completedInt := 0
	if completed {
		completedInt = 1
	}
	res, err := s.db.Exec(
		`UPDATE workout_exercises SET sets_done = ?, completed = ? WHERE workout_id = ? AND exercise = ?`,
		setsDone, completedInt, workoutID, name,
	)
	if err != nil {
		return fmt.Errorf("marking exercise: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("exercise %q not part of workout #%d", name, workoutID)
	}
	return nil
}

// Complete sets the workout's completion time.
func (s *Store) Complete(workoutID int, at time.Time) error {
	res, err := s.db.Exec(
		`UPDATE workouts SET completed_at = ? WHERE id = ? AND completed_at IS NULL`,
		at.UTC().Format(timeLayout), workoutID,
	)
	if err != nil {
		return fmt.Errorf("completing workout: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("workout #%d not found or already completed", workoutID)
	}
	return nil
}

// Get returns a single workout by ID with its exercise logs.
func (s *Store) Get(id int) (*Workout, error) {
	row := s.db.QueryRow(
		`SELECT id, ref, routine_id, day, started_at, completed_at FROM workouts WHERE id = ?`, id,
	)
	w, err := scanWorkoutRow(row)
	if err != nil {
		return nil, fmt.Errorf("getting workout #%d: %w", id, err)
	}
	if w == nil {
		return nil, fmt.Errorf("workout #%d not found", id)
	}
	if err := s.loadExercises(w); err != nil {
		return nil, err
	}
	return w, nil
}

// GetByRef returns a single workout by its uuid ref.
func (s *Store) GetByRef(ref string) (*Workout, error) {
	row := s.db.QueryRow(
		`SELECT id, ref, routine_id, day, started_at, completed_at FROM workouts WHERE ref = ?`, ref,
	)
	w, err := scanWorkoutRow(row)
	if err != nil {
		return nil, fmt.Errorf("getting workout %s: %w", ref, err)
	}
	if w == nil {
		return nil, fmt.Errorf("workout %s not found", ref)
	}
	if err := s.loadExercises(w); err != nil {
		return nil, err
	}
	return w, nil
}

// List returns all workouts ordered by started_at ascending, with
// exercise logs loaded. This is the full-history input the streak engine
// consumes.
func (s *Store) List() ([]Workout, error) {
	rows, err := s.db.Query(
		`SELECT id, ref, routine_id, day, started_at, completed_at
		 FROM workouts ORDER BY started_at ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts, err := scanWorkoutRows(rows)
	if err != nil {
		return nil, err
	}
	for i := range workouts {
		if err := s.loadExercises(&workouts[i]); err != nil {
			return nil, err
		}
	}
	return workouts, nil
}

// ListRecent returns the n most recent workouts, newest first.
func (s *Store) ListRecent(n int) ([]Workout, error) {
	rows, err := s.db.Query(
		`SELECT id, ref, routine_id, day, started_at, completed_at
		 FROM workouts ORDER BY started_at DESC, id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts, err := scanWorkoutRows(rows)
	if err != nil {
		return nil, err
	}
	for i := range workouts {
		if err := s.loadExercises(&workouts[i]); err != nil {
			return nil, err
		}
	}
	return workouts, nil
}

// Delete removes a workout and its exercise logs. Workouts are only ever
// deleted by explicit user action.
func (s *Store) Delete(id int) error {
	res, err := s.db.Exec(`DELETE FROM workouts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("workout #%d not found", id)
	}
	return nil
}

// loadExercises populates w.Exercises.
func (s *Store) loadExercises(w *Workout) error {
	rows, err := s.db.Query(
		`SELECT exercise, sets_done, sets_planned, completed
		 FROM workout_exercises WHERE workout_id = ? ORDER BY id`,
		w.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var l ExerciseLog
		var completedInt int
		if err := rows.Scan(&l.Name, &l.SetsDone, &l.SetsPlanned, &completedInt); err != nil {
			return err
		}
		l.Completed = completedInt == 1
		w.Exercises = append(w.Exercises, l)
	}
	return rows.Err()
}

// parseStoredTime reads a stored UTC timestamp and hands it back in the
// local frame, so day and week math downstream works on the user's clock.
func parseStoredTime(s string) time.Time {
	t, _ := time.ParseInLocation(timeLayout, s, time.UTC)
	return t.In(time.Local)
}

func scanWorkoutRow(row *sql.Row) (*Workout, error) {
	var w Workout
	var dayStr, startedStr string
	var completedStr sql.NullString

	if err := row.Scan(&w.ID, &w.Ref, &w.RoutineID, &dayStr, &startedStr, &completedStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	w.Day = calendar.Day(dayStr)
	w.StartedAt = parseStoredTime(startedStr)
	if completedStr.Valid && completedStr.String != "" {
		t := parseStoredTime(completedStr.String)
		w.CompletedAt = &t
	}
	return &w, nil
}

func scanWorkoutRows(rows *sql.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		var w Workout
		var dayStr, startedStr string
		var completedStr sql.NullString

		if err := rows.Scan(&w.ID, &w.Ref, &w.RoutineID, &dayStr, &startedStr, &completedStr); err != nil {
			return nil, err
		}
		w.Day = calendar.Day(dayStr)
		w.StartedAt = parseStoredTime(startedStr)
		if completedStr.Valid && completedStr.String != "" {
			t := parseStoredTime(completedStr.String)
			w.CompletedAt = &t
		}
		workouts = append(workouts, w)
	}
	return workouts, rows.Err()
}

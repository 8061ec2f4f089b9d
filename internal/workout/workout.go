// Package workout models concrete training sessions and the lookups that
// resolve "this week's workout for a given day".
package workout

import (
	"time"

	"github.com/nwarren/reps/internal/calendar"
	"github.com/nwarren/reps/internal/routine"
)

// ExerciseLog is the per-exercise completion record for one session.
type ExerciseLog struct {
	Name        string
	SetsDone    int
	SetsPlanned int
	Completed   bool
}

// Workout is one concrete attempt at a scheduled day's exercises.
// StartedAt identifies both the calendar week the session belongs to and
// its "occurred on" marker; the logical date it counts for is derived via
// calendar.ScheduledDate, never stored.
type Workout struct {
	ID          int
	Ref         string // uuid, stable across exports/backups
	RoutineID   int
	Day         calendar.Day
	StartedAt   time.Time
	CompletedAt *time.Time
	Exercises   []ExerciseLog
}

// Done reports whether the session was finished.
func (w *Workout) Done() bool {
	return w.CompletedAt != nil
}

// ScheduledDate returns the calendar date this workout was logically for.
func (w *Workout) ScheduledDate() time.Time {
	return calendar.ScheduledDate(w.StartedAt, w.Day)
}

// Status describes the state of a day's workout.
type Status int

const (
	// StatusNotStarted means no workout exists for the day this week.
	StatusNotStarted Status = iota
	// StatusInProgress means a workout exists but has no completion time.
	StatusInProgress
	// StatusCompleted means the workout was finished.
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in progress"
	case StatusCompleted:
		return "completed"
	default:
		return "not started"
	}
}

// FindForDay finds the workout instance for the routine scheduled on day
// in the calendar week containing ref. Returns nil when no routine
// schedules the day, or no workout matches (routine, day, ref's week).
// If multiple workouts match, the first in input order wins. Week
// membership is decided in ref's location, so UTC-stored start times
// land in the week the user actually trained in.
func FindForDay(workouts []Workout, routines []routine.Routine, day calendar.Day, ref time.Time) *Workout {
	r := routine.FindRoutineForDay(routines, day)
	if r == nil {
		return nil
	}
	for i := range workouts {
		w := &workouts[i]
		if w.RoutineID == r.ID && w.Day == day && calendar.SameWeek(w.StartedAt.In(ref.Location()), ref) {
			return w
		}
	}
	return nil
}

// StatusForDay reports the workout state for day in ref's week.
func StatusForDay(workouts []Workout, routines []routine.Routine, day calendar.Day, ref time.Time) Status {
	w := FindForDay(workouts, routines, day, ref)
	switch {
	case w == nil:
		return StatusNotStarted
	case w.Done():
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

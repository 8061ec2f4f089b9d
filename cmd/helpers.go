package cmd

import (
	"fmt"

	"github.com/nwarren/reps/internal/calendar"
	"github.com/nwarren/reps/internal/routine"
	"github.com/nwarren/reps/internal/store"
	"github.com/nwarren/reps/internal/workout"
)

// loadHistory pulls the full routine set and workout history, the two
// inputs every derived view (status, streak, export) starts from.
func loadHistory(db *store.DB) ([]routine.Routine, []workout.Workout, error) {
	rs := routine.NewStore(db.Conn())
	routines, err := rs.List()
	if err != nil {
		return nil, nil, fmt.Errorf("loading routines: %w", err)
	}

	ws := workout.NewStore(db.Conn())
	workouts, err := ws.List()
	if err != nil {
		return nil, nil, fmt.Errorf("loading workouts: %w", err)
	}
	return routines, workouts, nil
}

// findRoutineForToday picks the active routine scheduled on the given day,
// or nil when every active routine rests.
func findRoutineForToday(routines []routine.Routine, day calendar.Day) *routine.Routine {
	return routine.FindRoutineForDay(routine.ActiveOnly(routines), day)
}

// resolveRoutine finds a routine by name, or falls back to the active
// routine scheduled today when name is empty.
func resolveRoutine(rs *routine.Store, name string, day calendar.Day) (*routine.Routine, error) {
	if name != "" {
		return rs.GetByName(name)
	}

	routines, err := rs.ListActive()
	if err != nil {
		return nil, err
	}
	r := routine.FindRoutineForDay(routines, day)
	if r == nil {
		return nil, fmt.Errorf("no active routine trains on %s (rest day?)", day)
	}
	return r, nil
}

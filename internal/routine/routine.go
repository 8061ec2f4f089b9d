// Package routine models weekly exercise plans and the day-schedule
// lookups over them.
package routine

import (
	"time"

	"github.com/nwarren/reps/internal/calendar"
)

// Exercise is one scheduled exercise slot within a routine day.
type Exercise struct {
	Name        string
	Sets        int
	Reps        int
	WeightKg    float64
	RestSeconds int
}

// Routine is a named weekly plan. A day absent from Days, or present with
// an empty slice, is a rest day for this routine.
type Routine struct {
	ID        int
	Name      string
	Active    bool
	Days      map[calendar.Day][]Exercise
	CreatedAt time.Time
}

// RestDay reports whether the routine schedules nothing on the given day.
func (r *Routine) RestDay(day calendar.Day) bool {
	return len(r.Days[day]) == 0
}

// ExercisesOn returns the exercises scheduled on the given day, or an
// empty slice for a rest day.
func (r *Routine) ExercisesOn(day calendar.Day) []Exercise {
	return r.Days[day]
}

// HasScheduleForDay reports whether any routine in the set has at least
// one exercise scheduled for day.
func HasScheduleForDay(routines []Routine, day calendar.Day) bool {
	for i := range routines {
		if !routines[i].RestDay(day) {
			return true
		}
	}
	return false
}

// FindRoutineForDay returns the first routine (in input order, which the
// store yields in creation order) with at least one exercise scheduled
// for day, or nil if none. When several routines schedule the same day,
// the earliest-created one wins.
func FindRoutineForDay(routines []Routine, day calendar.Day) *Routine {
	for i := range routines {
		if !routines[i].RestDay(day) {
			return &routines[i]
		}
	}
	return nil
}

// ExercisesForDay returns the exercises the routine schedules on day, or
// an empty slice. A nil routine yields an empty slice.
func ExercisesForDay(r *Routine, day calendar.Day) []Exercise {
	if r == nil {
		return nil
	}
	return r.ExercisesOn(day)
}

// ActiveOnly filters a routine set down to the active ones, preserving order.
func ActiveOnly(routines []Routine) []Routine {
	var out []Routine
	for _, r := range routines {
		if r.Active {
			out = append(out, r)
		}
	}
	return out
}

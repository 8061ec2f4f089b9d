// Package streak reconstructs a day-by-day timeline from sparse workout
// history and derives the current streak and its status.
//
// The computation is pure: it takes the full workout and routine sets
// plus an explicit "now" and never touches the store or the wall clock,
// so it is safe to call repeatedly and cheap to test. Output changes only
// when its inputs (or the calendar day of "now") change.
package streak

import (
	"sort"
	"time"

	"github.com/nwarren/reps/internal/calendar"
	"github.com/nwarren/reps/internal/routine"
	"github.com/nwarren/reps/internal/workout"
)

// Status describes the state of the current streak.
type Status int

const (
	// StatusExpired means no active streak: either no completed workout
	// exists at all, or a scheduled day before today was missed.
	StatusExpired Status = iota
	// StatusUpToDate means the streak is intact and today demands nothing
	// more (today is a rest day, or already completed).
	StatusUpToDate
	// StatusPending means today is a scheduled day, not yet completed,
	// and an unbroken streak is riding on it.
	StatusPending
)

func (s Status) String() string {
	switch s {
	case StatusUpToDate:
		return "up to date"
	case StatusPending:
		return "pending"
	default:
		return "expired"
	}
}

// Day is one calendar date's classification in the timeline.
// Rest and Completed are mutually exclusive: rest days never count toward
// or against the streak, they are only non-breaking filler between
// workout days.
type Day struct {
	Date      time.Time
	Completed bool
	Rest      bool
	InStreak  bool
}

// Info is the derived streak state. Days maps every calendar date from
// the earliest scheduled-completed workout date through today inclusive,
// keyed by calendar.DateKey.
type Info struct {
	Streak int
	Status Status
	Days   map[string]Day
}

// Compute derives the streak from the full workout history and routine
// set, relative to now. With no completed workout it returns the terminal
// {0, expired, empty} state; it never errors.
//
// A workout counts for its scheduled date (week Sunday + day index), not
// for the literal date it was saved at, so a session finished after
// midnight still lands on its intended day. The rest-day check scans all
// routines regardless of their active flag, matching how schedules are
// interpreted when the timeline is rebuilt over weeks where flags may
// have changed since.
//
// All dates resolve in now's location. Stored timestamps come back in
// UTC, and a UTC instant can sit on a different calendar day (or week)
// than the same instant on the user's clock, so every start time is
// shifted into now's frame before its scheduled date is derived.
func Compute(workouts []workout.Workout, routines []routine.Routine, now time.Time) Info {
	loc := now.Location()

	// Distinct scheduled dates with at least one completed workout.
	completed := make(map[string]bool)
	var first time.Time
	for i := range workouts {
		w := &workouts[i]
		if !w.Done() {
			continue
		}
		date := calendar.ScheduledDate(w.StartedAt.In(loc), w.Day)
		completed[calendar.DateKey(date)] = true
		if first.IsZero() || date.Before(first) {
			first = date
		}
	}
	if len(completed) == 0 {
		return Info{Status: StatusExpired, Days: map[string]Day{}}
	}

	// Timeline from the earliest completed date through today. A workout
	// scheduled later this week than today can push first past today; the
	// timeline is empty then and the state degenerates like no history.
	today := calendar.Midnight(now)
	var days []Day
	for d := today; !d.Before(first); d = d.AddDate(0, 0, -1) {
		key := calendar.DateKey(d)
		days = append(days, Day{
			Date:      d,
			Completed: completed[key],
			Rest:      !routine.HasScheduleForDay(routines, calendar.DayOf(d)),
		})
	}
	if len(days) == 0 {
		return Info{Status: StatusExpired, Days: map[string]Day{}}
	}
	for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
		days[i], days[j] = days[j], days[i]
	}

	// Mark streak membership oldest to newest. Rest days inherit an
	// active run without extending it; a missed scheduled day breaks the
	// run unless it is today, which merely leaves it pending.
	inStreak := false
	last := len(days) - 1
	for i := range days {
		d := &days[i]
		switch {
		case d.Rest:
			if inStreak {
				d.InStreak = true
			}
		case d.Completed:
			inStreak = true
			d.InStreak = true
		case i == last:
			if inStreak {
				d.InStreak = true
			}
		default:
			inStreak = false
		}
	}

	// Count scheduled in-streak days backward from today. An uncompleted
	// in-streak day can only be today (pending): it neither counts nor
	// breaks the scan.
	streak := 0
	for i := last; i >= 0; i-- {
		d := days[i]
		if d.Rest {
			continue
		}
		if !d.InStreak {
			break
		}
		if d.Completed {
			streak++
		}
	}

	todayDay := days[last]
	var status Status
	switch {
	case !todayDay.Rest && !todayDay.Completed && inStreak:
		status = StatusPending
	case todayDay.InStreak:
		status = StatusUpToDate
	default:
		status = StatusExpired
		streak = 0
	}

	byDate := make(map[string]Day, len(days))
	for _, d := range days {
		byDate[calendar.DateKey(d.Date)] = d
	}
	return Info{Streak: streak, Status: status, Days: byDate}
}

// Order returns the Days map as a slice in ascending date order, for
// rendering the timeline as a calendar strip.
func Order(days map[string]Day) []Day {
	out := make([]Day, 0, len(days))
	for _, d := range days {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

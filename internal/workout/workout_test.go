package workout

import (
	"testing"
	"time"

	"github.com/nwarren/reps/internal/calendar"
	"github.com/nwarren/reps/internal/routine"
)

func mustTime(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func timePtr(t time.Time) *time.Time { return &t }

// Week under test: Sunday 2026-03-01 .. Saturday 2026-03-07.
var (
	monRoutine = routine.Routine{
		ID:     1,
		Name:   "upper",
		Active: true,
		Days: map[calendar.Day][]routine.Exercise{
			calendar.Monday:   {{Name: "Bench Press", Sets: 3, Reps: 8}},
			calendar.Thursday: {{Name: "Squat", Sets: 5, Reps: 5}},
		},
	}
	testRoutines = []routine.Routine{monRoutine}
)

func TestFindForDay_MatchInSameWeek(t *testing.T) {
	workouts := []Workout{
		{ID: 10, RoutineID: 1, Day: calendar.Monday, StartedAt: mustTime("2026-03-02 18:00")},
	}
	ref := mustTime("2026-03-04 09:00") // Wednesday same week

	got := FindForDay(workouts, testRoutines, calendar.Monday, ref)
	if got == nil || got.ID != 10 {
		t.Fatalf("FindForDay = %+v, want workout #10", got)
	}
}

func TestFindForDay_NoRoutineScheduled(t *testing.T) {
	workouts := []Workout{
		{ID: 10, RoutineID: 1, Day: calendar.Sunday, StartedAt: mustTime("2026-03-01 10:00")},
	}
	if got := FindForDay(workouts, testRoutines, calendar.Sunday, mustTime("2026-03-01 12:00")); got != nil {
		t.Errorf("Sunday is unscheduled, got %+v", got)
	}
}

func TestFindForDay_PreviousWeekExcluded(t *testing.T) {
	workouts := []Workout{
		{ID: 9, RoutineID: 1, Day: calendar.Monday, StartedAt: mustTime("2026-02-23 18:00")},
	}
	ref := mustTime("2026-03-04 09:00")

	if got := FindForDay(workouts, testRoutines, calendar.Monday, ref); got != nil {
		t.Errorf("last week's workout should not match, got #%d", got.ID)
	}
}

func TestFindForDay_UTCStartAcrossWeekBoundary(t *testing.T) {
	// A Sunday-morning session at UTC+13 is stored as Saturday UTC, the
	// closing day of the previous Sunday-based week. Week membership is
	// decided in ref's location, so the lookup must still find it.
	nzdt := time.FixedZone("NZDT", 13*60*60)
	sunRoutine := routine.Routine{
		ID:     3,
		Name:   "core",
		Active: true,
		Days: map[calendar.Day][]routine.Exercise{
			calendar.Sunday: {{Name: "Plank", Sets: 3, Reps: 1}},
		},
	}
	workouts := []Workout{
		// Sunday 2026-03-08 10:00 NZDT
		{ID: 20, RoutineID: 3, Day: calendar.Sunday, StartedAt: time.Date(2026, 3, 7, 21, 0, 0, 0, time.UTC)},
	}
	ref := time.Date(2026, 3, 8, 19, 0, 0, 0, nzdt)

	got := FindForDay(workouts, []routine.Routine{sunRoutine}, calendar.Sunday, ref)
	if got == nil || got.ID != 20 {
		t.Fatalf("FindForDay = %+v, want workout #20", got)
	}
}

func TestFindForDay_WrongRoutineOrDayExcluded(t *testing.T) {
	workouts := []Workout{
		{ID: 1, RoutineID: 2, Day: calendar.Monday, StartedAt: mustTime("2026-03-02 18:00")},
		{ID: 2, RoutineID: 1, Day: calendar.Thursday, StartedAt: mustTime("2026-03-02 18:00")},
	}
	ref := mustTime("2026-03-02 19:00")

	if got := FindForDay(workouts, testRoutines, calendar.Monday, ref); got != nil {
		t.Errorf("neither workout matches (routine 1, Monday), got #%d", got.ID)
	}
}

func TestFindForDay_FirstOfDuplicatesWins(t *testing.T) {
	workouts := []Workout{
		{ID: 1, RoutineID: 1, Day: calendar.Monday, StartedAt: mustTime("2026-03-02 07:00")},
		{ID: 2, RoutineID: 1, Day: calendar.Monday, StartedAt: mustTime("2026-03-02 19:00")},
	}
	ref := mustTime("2026-03-03 08:00")

	got := FindForDay(workouts, testRoutines, calendar.Monday, ref)
	if got == nil || got.ID != 1 {
		t.Errorf("first in input order should win, got %+v", got)
	}
}

func TestStatusForDay(t *testing.T) {
	ref := mustTime("2026-03-04 09:00")
	inProgress := Workout{ID: 1, RoutineID: 1, Day: calendar.Monday, StartedAt: mustTime("2026-03-02 18:00")}
	completed := inProgress
	completed.CompletedAt = timePtr(mustTime("2026-03-02 19:00"))

	if got := StatusForDay(nil, testRoutines, calendar.Monday, ref); got != StatusNotStarted {
		t.Errorf("no workouts: %v, want not started", got)
	}
	if got := StatusForDay([]Workout{inProgress}, testRoutines, calendar.Monday, ref); got != StatusInProgress {
		t.Errorf("open workout: %v, want in progress", got)
	}
	if got := StatusForDay([]Workout{completed}, testRoutines, calendar.Monday, ref); got != StatusCompleted {
		t.Errorf("finished workout: %v, want completed", got)
	}
}

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusNotStarted: "not started",
		StatusInProgress: "in progress",
		StatusCompleted:  "completed",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("%d.String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestScheduledDate_DivergesFromStartedAt(t *testing.T) {
	// Finished after midnight: started Tuesday 00:40 for Monday's slot.
	w := Workout{RoutineID: 1, Day: calendar.Monday, StartedAt: mustTime("2026-03-03 00:40")}
	if calendar.DateKey(w.ScheduledDate()) != "2026-03-02" {
		t.Errorf("ScheduledDate = %s, want Monday 2026-03-02", calendar.DateKey(w.ScheduledDate()))
	}
}

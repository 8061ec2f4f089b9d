// Package calendar provides the week and day primitives the rest of reps
// is built on. Weeks start on Sunday; a routine day maps to exactly one
// date per week regardless of when a session actually ran.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Day is a named day of the week.
type Day string

const (
	Sunday    Day = "Sunday"
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
)

// Week returns the seven days in Sunday-first order.
func Week() [7]Day {
	return [7]Day{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// DisplayWeek returns the seven days in rendering order. Monday-first is
// display only; Index, ScheduledDate, and week boundaries stay
// Sunday-based.
func DisplayWeek(mondayFirst bool) [7]Day {
	if mondayFirst {
		return [7]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
	}
	return Week()
}

// Index returns the day's position in the Sunday-first week, or -1.
func (d Day) Index() int {
	for i, day := range Week() {
		if day == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is one of the seven day names.
func (d Day) Valid() bool {
	return d.Index() >= 0
}

// Short returns the three-letter abbreviation.
func (d Day) Short() string {
	if len(d) < 3 {
		return string(d)
	}
	return string(d)[:3]
}

// Parse accepts a full day name or a three-letter prefix, case-insensitive.
func Parse(s string) (Day, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, day := range Week() {
		name := strings.ToLower(string(day))
		if lower == name || (len(lower) == 3 && lower == name[:3]) {
			return day, nil
		}
	}
	return "", fmt.Errorf("unknown day %q (use Monday, tue, ...)", s)
}

// DayOf returns the Day for a point in time.
func DayOf(t time.Time) Day {
	return Week()[int(t.Weekday())]
}

// Midnight truncates t to the start of its calendar day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday that opens t's week.
func StartOfWeek(t time.Time) time.Time {
	return Midnight(t.AddDate(0, 0, -int(t.Weekday())))
}

// SameWeek reports whether a and b fall in the same Sunday-started week.
func SameWeek(a, b time.Time) bool {
	return StartOfWeek(a).Equal(StartOfWeek(b))
}

// ScheduledDate resolves which date a routine day occupies in the week of
// startedAt. A Monday session started late Tuesday night still counts for
// that week's Monday.
func ScheduledDate(startedAt time.Time, day Day) time.Time {
	return StartOfWeek(startedAt).AddDate(0, 0, day.Index())
}

// DateKey renders t as the YYYY-MM-DD key used to bucket days.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

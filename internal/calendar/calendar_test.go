package calendar

import (
	"testing"
	"time"
)

// Reference week: Sunday 2026-03-01 through Saturday 2026-03-07.
func refDate(day int, hour int) time.Time {
	return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
}

func TestWeekOrder(t *testing.T) {
	week := Week()
	if week[0] != Sunday {
		t.Fatalf("week should start on Sunday, got %s", week[0])
	}
	if week[6] != Saturday {
		t.Fatalf("week should end on Saturday, got %s", week[6])
	}
	for i, d := range week {
		if d.Index() != i {
			t.Errorf("%s.Index() = %d, want %d", d, d.Index(), i)
		}
	}
}

func TestDisplayWeek(t *testing.T) {
	if week := DisplayWeek(false); week != Week() {
		t.Errorf("Sunday-first display = %v, want %v", week, Week())
	}
	week := DisplayWeek(true)
	if week[0] != Monday || week[6] != Sunday {
		t.Errorf("Monday-first display = %v", week)
	}
	// Rendering order never changes the canonical index.
	if Sunday.Index() != 0 || Monday.Index() != 1 {
		t.Error("Index must stay Sunday-based")
	}
}

func TestValid(t *testing.T) {
	if !Monday.Valid() {
		t.Error("Monday should be valid")
	}
	if Day("Moonday").Valid() {
		t.Error("Moonday should not be valid")
	}
}

func TestShort(t *testing.T) {
	if got := Wednesday.Short(); got != "Wed" {
		t.Errorf("Short() = %q, want Wed", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Day
		wantErr bool
	}{
		{"Monday", Monday, false},
		{"monday", Monday, false},
		{"mon", Monday, false},
		{"TUE", Tuesday, false},
		{" sunday ", Sunday, false},
		{"sat", Saturday, false},
		{"m", "", true},
		{"febuary", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q) should fail", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDayOf(t *testing.T) {
	if got := DayOf(refDate(1, 10)); got != Sunday {
		t.Errorf("2026-03-01 should be Sunday, got %s", got)
	}
	if got := DayOf(refDate(2, 10)); got != Monday {
		t.Errorf("2026-03-02 should be Monday, got %s", got)
	}
	if got := DayOf(refDate(7, 10)); got != Saturday {
		t.Errorf("2026-03-07 should be Saturday, got %s", got)
	}
}

func TestMidnight(t *testing.T) {
	got := Midnight(refDate(3, 18))
	want := refDate(3, 0)
	if !got.Equal(want) {
		t.Errorf("Midnight() = %v, want %v", got, want)
	}
}

func TestStartOfWeek(t *testing.T) {
	want := refDate(1, 0) // Sunday midnight
	for day := 1; day <= 7; day++ {
		got := StartOfWeek(refDate(day, 15))
		if !got.Equal(want) {
			t.Errorf("StartOfWeek(Mar %d) = %v, want %v", day, got, want)
		}
	}
	// the following Sunday opens a new week
	next := StartOfWeek(refDate(8, 1))
	if !next.Equal(refDate(8, 0)) {
		t.Errorf("StartOfWeek(Mar 8) = %v, want Mar 8 midnight", next)
	}
}

func TestSameWeek(t *testing.T) {
	if !SameWeek(refDate(1, 8), refDate(7, 23)) {
		t.Error("Sunday and Saturday of one week should match")
	}
	if SameWeek(refDate(7, 23), refDate(8, 1)) {
		t.Error("Saturday and next Sunday should not match")
	}
}

func TestScheduledDate(t *testing.T) {
	// Monday session started late Tuesday night still lands on Monday.
	started := refDate(3, 0).Add(40 * time.Minute) // Tue 00:40
	got := ScheduledDate(started, Monday)
	if !got.Equal(refDate(2, 0)) {
		t.Errorf("ScheduledDate = %v, want Monday 2026-03-02", got)
	}

	// Same-day start.
	got = ScheduledDate(refDate(2, 18), Monday)
	if !got.Equal(refDate(2, 0)) {
		t.Errorf("ScheduledDate = %v, want Monday 2026-03-02", got)
	}

	// A day later in the week than the start time.
	got = ScheduledDate(refDate(2, 18), Friday)
	if !got.Equal(refDate(6, 0)) {
		t.Errorf("ScheduledDate = %v, want Friday 2026-03-06", got)
	}
}

func TestDateKey(t *testing.T) {
	if got := DateKey(refDate(2, 18)); got != "2026-03-02" {
		t.Errorf("DateKey = %q, want 2026-03-02", got)
	}
}

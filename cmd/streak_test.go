package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nwarren/reps/internal/calendar"
	"github.com/nwarren/reps/internal/store"
	"github.com/nwarren/reps/internal/streak"
)

func TestRenderStrip(t *testing.T) {
	day := func(offset int, completed, rest, inStreak bool) streak.Day {
		return streak.Day{
			Date:      time.Date(2026, 3, 1+offset, 0, 0, 0, 0, time.UTC),
			Completed: completed,
			Rest:      rest,
			InStreak:  inStreak,
		}
	}

	days := map[string]streak.Day{}
	for _, d := range []streak.Day{
		day(0, true, false, true),  // completed
		day(1, false, true, true),  // rest inside streak
		day(2, false, false, true), // pending today
	} {
		days[calendar.DateKey(d.Date)] = d
	}

	strip := renderStrip(streak.Info{Days: days})
	for _, icon := range []string{"✅", "🛌", "⏱"} {
		if !strings.Contains(strip, icon) {
			t.Errorf("strip %q should contain %q", strip, icon)
		}
	}
}

func TestRenderStrip_CapsAtWindow(t *testing.T) {
	days := map[string]streak.Day{}
	for i := 0; i < 30; i++ {
		d := streak.Day{Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i), Completed: true}
		days[calendar.DateKey(d.Date)] = d
	}

	strip := renderStrip(streak.Info{Days: days})
	if n := strings.Count(strip, "✅"); n != streakStripDays {
		t.Errorf("strip shows %d days, want %d", n, streakStripDays)
	}
}

func TestRunStreakAndStatus_EmptyHistory(t *testing.T) {
	configTestEnv(t)

	out := captureStdout(t, func() {
		if err := runStreak(nil, nil); err != nil {
			t.Errorf("runStreak: %v", err)
		}
	})
	if !strings.Contains(out, "expired") {
		t.Errorf("empty history should show expired, got: %q", out)
	}

	out = captureStdout(t, func() {
		if err := runStatus(nil, nil); err != nil {
			t.Errorf("runStatus: %v", err)
		}
	})
	if !strings.Contains(out, "rest day") {
		t.Errorf("no routines means rest day, got: %q", out)
	}
}

func TestRunStreak_AfterCompletedSession(t *testing.T) {
	configTestEnv(t)
	resetStartFlags()
	seedTodayRoutine(t, "push-pull")

	captureStdout(t, func() {
		if err := runStart(nil, nil); err != nil {
			t.Errorf("runStart: %v", err)
		}
		if err := runDone(nil, nil); err != nil {
			t.Errorf("runDone: %v", err)
		}
	})

	out := captureStdout(t, func() {
		if err := runStreak(nil, nil); err != nil {
			t.Errorf("runStreak: %v", err)
		}
	})
	if !strings.Contains(out, "up to date") {
		t.Errorf("completed today should be up to date, got: %q", out)
	}
	if !strings.Contains(out, "1") {
		t.Errorf("streak should be 1, got: %q", out)
	}
}

func TestCachedStreak(t *testing.T) {
	configTestEnv(t)

	db, err := store.Open()
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer db.Close()

	now := time.Now()
	today := calendar.DateKey(now)

	count, status := cachedStreak(db, nil, nil, now)
	if count != 0 || status != streak.StatusExpired {
		t.Errorf("empty history = %d (%s), want 0 (expired)", count, status)
	}

	// A snapshot written today short-circuits the compute entirely.
	if err := db.SetKV(store.KeyStreakSnapshot, fmt.Sprintf("%s %d %d", today, 7, int(streak.StatusUpToDate))); err != nil {
		t.Fatalf("seeding snapshot: %v", err)
	}
	count, status = cachedStreak(db, nil, nil, now)
	if count != 7 || status != streak.StatusUpToDate {
		t.Errorf("cached = %d (%s), want 7 (up to date)", count, status)
	}

	// A stale snapshot is recomputed and replaced.
	if err := db.SetKV(store.KeyStreakSnapshot, fmt.Sprintf("2020-01-01 %d %d", 7, int(streak.StatusUpToDate))); err != nil {
		t.Fatalf("seeding snapshot: %v", err)
	}
	count, status = cachedStreak(db, nil, nil, now)
	if count != 0 || status != streak.StatusExpired {
		t.Errorf("stale cache = %d (%s), want 0 (expired)", count, status)
	}
	raw, err := db.GetKV(store.KeyStreakSnapshot)
	if err != nil || !strings.HasPrefix(raw, today) {
		t.Errorf("snapshot not refreshed: %q, %v", raw, err)
	}
}

func TestRunHistory(t *testing.T) {
	configTestEnv(t)
	resetStartFlags()
	seedTodayRoutine(t, "push-pull")

	captureStdout(t, func() {
		if err := runStart(nil, nil); err != nil {
			t.Errorf("runStart: %v", err)
		}
		if err := runDone(nil, nil); err != nil {
			t.Errorf("runDone: %v", err)
		}
	})

	out := captureStdout(t, func() {
		if err := runHistory(nil, nil); err != nil {
			t.Errorf("runHistory: %v", err)
		}
	})
	if !strings.Contains(out, "push-pull") {
		t.Errorf("expected session in history, got: %q", out)
	}

	if err := runHistory(nil, []string{"zero"}); err == nil {
		t.Error("non-numeric count should fail")
	}
}

func TestRunExport_JSONToFile(t *testing.T) {
	configTestEnv(t)
	resetStartFlags()
	seedTodayRoutine(t, "push-pull")

	captureStdout(t, func() {
		if err := runStart(nil, nil); err != nil {
			t.Errorf("runStart: %v", err)
		}
		if err := runDone(nil, nil); err != nil {
			t.Errorf("runDone: %v", err)
		}
	})

	path := filepath.Join(t.TempDir(), "history.json")
	exportFormat, exportOut = "json", path
	defer func() { exportFormat, exportOut = "json", "" }()

	captureStdout(t, func() {
		if err := runExport(nil, nil); err != nil {
			t.Errorf("runExport: %v", err)
		}
	})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	var parsed []map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(parsed) != 1 || parsed[0]["routine"] != "push-pull" {
		t.Errorf("export = %+v", parsed)
	}
}

func TestRunExport_BadFormat(t *testing.T) {
	configTestEnv(t)
	exportFormat, exportOut = "xml", ""
	defer func() { exportFormat = "json" }()

	if err := runExport(nil, nil); err == nil {
		t.Fatal("unknown format should fail")
	}
}

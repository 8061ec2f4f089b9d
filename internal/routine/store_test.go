package routine

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/nwarren/reps/internal/calendar"
	"github.com/nwarren/reps/internal/store"
)

// testDB opens an isolated reps database under a temp XDG root.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(tmpDir, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))

	db, err := store.Open()
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db.Conn()
}

func TestStoreAddGetSetDay(t *testing.T) {
	s := NewStore(testDB(t))

	id, err := s.Add("push/pull")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	monday := []Exercise{
		{Name: "Bench Press", Sets: 3, Reps: 8, WeightKg: 60, RestSeconds: 120},
		{Name: "Overhead Press", Sets: 3, Reps: 10, RestSeconds: 90},
	}
	if err := s.SetDay(id, calendar.Monday, monday); err != nil {
		t.Fatalf("SetDay: %v", err)
	}

	r, err := s.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if r.Name != "push/pull" || !r.Active {
		t.Errorf("routine = %+v", r)
	}
	got := r.ExercisesOn(calendar.Monday)
	if len(got) != 2 {
		t.Fatalf("expected 2 Monday exercises, got %d", len(got))
	}
	if got[0].Name != "Bench Press" || got[0].WeightKg != 60 {
		t.Errorf("first exercise = %+v", got[0])
	}
	if got[1].Name != "Overhead Press" {
		t.Errorf("position order not preserved: %+v", got)
	}
	if !r.RestDay(calendar.Tuesday) {
		t.Error("Tuesday should be a rest day")
	}
}

func TestStoreSetDayReplaces(t *testing.T) {
	s := NewStore(testDB(t))
	id, _ := s.Add("plan")

	if err := s.SetDay(id, calendar.Friday, []Exercise{{Name: "Squat", Sets: 5, Reps: 5}}); err != nil {
		t.Fatalf("SetDay: %v", err)
	}
	if err := s.SetDay(id, calendar.Friday, []Exercise{{Name: "Deadlift", Sets: 3, Reps: 5}}); err != nil {
		t.Fatalf("SetDay replace: %v", err)
	}

	r, _ := s.Get(id)
	got := r.ExercisesOn(calendar.Friday)
	if len(got) != 1 || got[0].Name != "Deadlift" {
		t.Errorf("SetDay should replace, got %+v", got)
	}

	if err := s.RemoveDay(id, calendar.Friday); err != nil {
		t.Fatalf("RemoveDay: %v", err)
	}
	r, _ = s.Get(id)
	if !r.RestDay(calendar.Friday) {
		t.Error("RemoveDay should make Friday a rest day")
	}
}

func TestStoreListCreationOrder(t *testing.T) {
	s := NewStore(testDB(t))
	for _, name := range []string{"alpha", "beta", "gamma"} {
		if _, err := s.Add(name); err != nil {
			t.Fatalf("Add %s: %v", name, err)
		}
	}

	routines, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(routines) != 3 {
		t.Fatalf("expected 3 routines, got %d", len(routines))
	}
	// Same-second inserts fall back to id order, which is insert order.
	for i, want := range []string{"alpha", "beta", "gamma"} {
		if routines[i].Name != want {
			t.Errorf("routines[%d] = %q, want %q", i, routines[i].Name, want)
		}
	}
}

func TestStoreSetActiveAndListActive(t *testing.T) {
	s := NewStore(testDB(t))
	a, _ := s.Add("keep")
	b, _ := s.Add("bench-only")

	if err := s.SetActive(b, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	active, err := s.ListActive()
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 1 || active[0].ID != a {
		t.Errorf("ListActive = %+v", active)
	}

	if err := s.SetActive(999, false); err == nil {
		t.Error("SetActive on missing routine should error")
	}
}

func TestStoreDeleteCascades(t *testing.T) {
	db := testDB(t)
	s := NewStore(db)
	id, _ := s.Add("gone")
	if err := s.SetDay(id, calendar.Monday, []Exercise{{Name: "Curl", Sets: 3, Reps: 12}}); err != nil {
		t.Fatalf("SetDay: %v", err)
	}

	if err := s.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(id); err == nil {
		t.Error("Get after Delete should error")
	}

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM routine_days`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("routine_days not cascaded, %d rows left", n)
	}

	if err := s.Delete(id); err == nil {
		t.Error("double Delete should error")
	}
}

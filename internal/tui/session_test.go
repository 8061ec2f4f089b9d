package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nwarren/reps/internal/routine"
)

func testExercises() []routine.Exercise {
	return []routine.Exercise{
		{Name: "bench press", Sets: 2, Reps: 8, WeightKg: 60},
		{Name: "rows", Sets: 3, Reps: 10},
	}
}

func spaceKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{' '}}
}

func TestNewSessionModel_Defaults(t *testing.T) {
	m := NewSessionModel("push-pull / Monday", testExercises(), 90*time.Second)

	if m.current != 0 {
		t.Fatalf("should start at first exercise, got %d", m.current)
	}
	if m.resting {
		t.Fatal("should not start resting")
	}
	if len(m.setsDone) != 2 {
		t.Fatalf("setsDone should track 2 exercises, got %d", len(m.setsDone))
	}
	if m.finished || m.canceled {
		t.Fatal("should not be finished or canceled initially")
	}
}

func TestSessionModel_SpaceCompletesSetAndStartsRest(t *testing.T) {
	m := NewSessionModel("session", testExercises(), 90*time.Second)

	m.Update(spaceKey())

	if m.setsDone[0] != 1 {
		t.Fatalf("setsDone[0] should be 1, got %d", m.setsDone[0])
	}
	if !m.resting {
		t.Fatal("should be resting after a mid-exercise set")
	}
	if m.restLeft != 90*time.Second {
		t.Fatalf("restLeft should be the default 90s, got %v", m.restLeft)
	}
}

func TestSessionModel_PerExerciseRestOverridesDefault(t *testing.T) {
	exercises := []routine.Exercise{
		{Name: "squats", Sets: 3, Reps: 5, RestSeconds: 180},
	}
	m := NewSessionModel("legs", exercises, 90*time.Second)

	m.Update(spaceKey())

	if m.restLeft != 180*time.Second {
		t.Fatalf("restLeft should use the exercise's 180s, got %v", m.restLeft)
	}
}

func TestSessionModel_SpaceDuringRestSkipsRest(t *testing.T) {
	m := NewSessionModel("session", testExercises(), 90*time.Second)
	m.Update(spaceKey()) // set 1 of 2, now resting

	m.Update(spaceKey())

	if m.resting {
		t.Fatal("space during rest should end the rest")
	}
	if m.setsDone[0] != 1 {
		t.Fatalf("skipping rest should not log a set, got %d", m.setsDone[0])
	}
}

func TestSessionModel_LastSetAdvancesExercise(t *testing.T) {
	m := NewSessionModel("session", testExercises(), 90*time.Second)
	m.Update(spaceKey()) // set 1
	m.Update(spaceKey()) // skip rest

	m.Update(spaceKey()) // set 2 of 2

	if m.current != 1 {
		t.Fatalf("should advance to second exercise, got %d", m.current)
	}
	if m.resting {
		t.Fatal("no rest between exercises")
	}
}

func TestSessionModel_FinishingLastExerciseQuits(t *testing.T) {
	exercises := []routine.Exercise{{Name: "bench press", Sets: 1, Reps: 8}}
	m := NewSessionModel("session", exercises, 90*time.Second)

	model, cmd := m.Update(spaceKey())
	result := model.(*SessionModel)

	if !result.finished {
		t.Fatal("completing the last set should finish the session")
	}
	if result.canceled {
		t.Fatal("finished session should not be canceled")
	}
	if cmd == nil {
		t.Fatal("finishing should return tea.Quit cmd")
	}
}

func TestSessionModel_SkipAdvancesWithoutCompleting(t *testing.T) {
	m := NewSessionModel("session", testExercises(), 90*time.Second)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	if m.current != 1 {
		t.Fatalf("s should advance to next exercise, got %d", m.current)
	}
	if !m.skipped[0] {
		t.Fatal("s should mark the exercise skipped")
	}
}

func TestSessionModel_QuitSetsCancel(t *testing.T) {
	m := NewSessionModel("session", testExercises(), 90*time.Second)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	result := model.(*SessionModel)

	if !result.canceled {
		t.Fatal("q should set canceled")
	}
	if cmd == nil {
		t.Fatal("q should return tea.Quit cmd")
	}
}

func TestSessionModel_CtrlCCancels(t *testing.T) {
	m := NewSessionModel("session", testExercises(), 90*time.Second)

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	result := model.(*SessionModel)

	if !result.canceled {
		t.Fatal("ctrl+c should set canceled")
	}
}

func TestSessionModel_TickCountsDownRest(t *testing.T) {
	m := NewSessionModel("session", testExercises(), 3*time.Second)
	m.Update(spaceKey()) // start resting, 3s

	m.Update(sessionTickMsg(time.Now()))
	if m.restLeft != 2*time.Second {
		t.Fatalf("restLeft should be 2s after one tick, got %v", m.restLeft)
	}

	m.Update(sessionTickMsg(time.Now()))
	m.Update(sessionTickMsg(time.Now()))
	if m.resting {
		t.Fatal("rest should end when the countdown hits zero")
	}
}

func TestSessionModel_Result(t *testing.T) {
	m := NewSessionModel("session", testExercises(), 90*time.Second)
	// bench: both sets, skipping the rest in between
	m.Update(spaceKey())
	m.Update(spaceKey())
	m.Update(spaceKey())
	// skip rows entirely
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})

	r := m.result()
	if !r.Finished {
		t.Fatal("result should be finished")
	}
	if !r.Outcomes[0].Completed || r.Outcomes[0].SetsDone != 2 {
		t.Fatalf("bench outcome = %+v", r.Outcomes[0])
	}
	if r.Outcomes[1].Completed || r.Outcomes[1].SetsDone != 0 {
		t.Fatalf("rows outcome = %+v", r.Outcomes[1])
	}
}

func TestSessionModel_WindowSizeMsg(t *testing.T) {
	m := NewSessionModel("session", testExercises(), 90*time.Second)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.width != 120 || m.height != 40 {
		t.Fatalf("size should be 120x40, got %dx%d", m.width, m.height)
	}
}

func TestSessionModel_ViewShowsCurrentExercise(t *testing.T) {
	m := NewSessionModel("push-pull / Monday", testExercises(), 90*time.Second)
	view := m.View()

	if !strings.Contains(view, "bench press") {
		t.Fatal("view should show the current exercise")
	}
	if !strings.Contains(view, "Exercise 1 of 2") {
		t.Fatal("view should show exercise progress")
	}
	if !strings.Contains(view, "60.0 kg") {
		t.Fatal("view should show the working weight")
	}
}

func TestSessionModel_ViewShowsRestCountdown(t *testing.T) {
	m := NewSessionModel("session", testExercises(), 90*time.Second)
	m.Update(spaceKey())
	view := m.View()

	if !strings.Contains(view, "rest 01:30") {
		t.Fatalf("view should show the rest countdown, got:\n%s", view)
	}
}

func TestSessionModel_InitReturnsCmd(t *testing.T) {
	m := NewSessionModel("session", testExercises(), 90*time.Second)
	if m.Init() == nil {
		t.Fatal("Init should return a tick command")
	}
}

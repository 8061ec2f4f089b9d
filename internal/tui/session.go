package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nwarren/reps/internal/routine"
	"github.com/nwarren/reps/internal/ui"
)

// ExerciseOutcome records how one exercise went during a session.
type ExerciseOutcome struct {
	Name        string
	SetsDone    int
	SetsPlanned int
	Completed   bool
}

// SessionResult is returned when the workout session TUI ends.
type SessionResult struct {
	Elapsed  time.Duration
	Outcomes []ExerciseOutcome
	Finished bool // true if every exercise was worked through
	Canceled bool // true if user quit before the last exercise
}

// SessionModel is a full-screen Bubbletea model that walks through a
// routine day set by set, with a rest countdown between sets.
type SessionModel struct {
	title     string
	exercises []routine.Exercise
	restFor   time.Duration // default rest when an exercise has none

	current  int    // index into exercises
	setsDone []int  // sets completed per exercise
	skipped  []bool // exercises skipped with s
	resting  bool
	restLeft time.Duration
	start    time.Time
	elapsed  time.Duration
	width    int
	height   int
	quitting bool
	finished bool
	canceled bool
}

type sessionTickMsg time.Time

// NewSessionModel creates a SessionModel for one routine day.
func NewSessionModel(title string, exercises []routine.Exercise, defaultRest time.Duration) *SessionModel {
	return &SessionModel{
		title:     title,
		exercises: exercises,
		restFor:   defaultRest,
		setsDone:  make([]int, len(exercises)),
		skipped:   make([]bool, len(exercises)),
		start:     time.Now(),
		width:     80,
		height:    24,
	}
}

// RunSession launches the full-screen workout session TUI.
func RunSession(title string, exercises []routine.Exercise, defaultRest time.Duration) (SessionResult, error) {
	m := NewSessionModel(title, exercises, defaultRest)
	prog := tea.NewProgram(m, tea.WithAltScreen())
	result, err := prog.Run()
	if err != nil {
		return SessionResult{}, fmt.Errorf("session tui: %w", err)
	}
	final := result.(*SessionModel)
	return final.result(), nil
}

func (m *SessionModel) result() SessionResult {
	outcomes := make([]ExerciseOutcome, len(m.exercises))
	for i, ex := range m.exercises {
		outcomes[i] = ExerciseOutcome{
			Name:        ex.Name,
			SetsDone:    m.setsDone[i],
			SetsPlanned: ex.Sets,
			Completed:   !m.skipped[i] && m.setsDone[i] >= ex.Sets,
		}
	}
	return SessionResult{
		Elapsed:  m.elapsed,
		Outcomes: outcomes,
		Finished: m.finished,
		Canceled: m.canceled,
	}
}

func sessionTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return sessionTickMsg(t)
	})
}

// restDuration is the rest countdown for the current exercise.
func (m *SessionModel) restDuration() time.Duration {
	if m.current < len(m.exercises) && m.exercises[m.current].RestSeconds > 0 {
		return time.Duration(m.exercises[m.current].RestSeconds) * time.Second
	}
	return m.restFor
}

func (m *SessionModel) Init() tea.Cmd {
	return sessionTick()
}

// advance moves to the next exercise, ending the session after the last one.
func (m *SessionModel) advance() (tea.Model, tea.Cmd) {
	m.resting = false
	m.current++
	if m.current >= len(m.exercises) {
		m.elapsed = time.Since(m.start).Round(time.Second)
		m.finished = true
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionTickMsg:
		m.elapsed = time.Since(m.start).Round(time.Second)
		if m.resting {
			m.restLeft -= time.Second
			if m.restLeft <= 0 {
				m.resting = false
				m.restLeft = 0
			}
		}
		return m, sessionTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.elapsed = time.Since(m.start).Round(time.Second)
			m.canceled = true
			m.quitting = true
			return m, tea.Quit

		case " ", "enter":
			if m.current >= len(m.exercises) {
				return m, nil
			}
			if m.resting {
				// cut the rest short
				m.resting = false
				m.restLeft = 0
				return m, nil
			}
			ex := m.exercises[m.current]
			m.setsDone[m.current]++
			if m.setsDone[m.current] >= ex.Sets {
				return m.advance()
			}
			m.resting = true
			m.restLeft = m.restDuration()
			return m, nil

		case "s":
			if m.current >= len(m.exercises) {
				return m, nil
			}
			m.skipped[m.current] = true
			return m.advance()
		}
	}
	return m, nil
}

func (m *SessionModel) View() string {
	var b strings.Builder

	contentLines := 12
	topPad := (m.height - contentLines) / 2
	if topPad < 0 {
		topPad = 0
	}
	for i := 0; i < topPad; i++ {
		b.WriteString("\n")
	}

	center := func(s string) string {
		return lipgloss.NewStyle().Width(m.width).Align(lipgloss.Center).Render(s)
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.Ember).
		Width(m.width).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("%s %s", ui.IconReps, m.title))
	b.WriteString(title + "\n\n")

	if m.current >= len(m.exercises) {
		b.WriteString(ui.Success.Width(m.width).Align(lipgloss.Center).Render("Workout complete!") + "\n")
		return b.String()
	}

	ex := m.exercises[m.current]

	progress := ui.Muted.Width(m.width).Align(lipgloss.Center).
		Render(fmt.Sprintf("Exercise %d of %d", m.current+1, len(m.exercises)))
	b.WriteString(progress + "\n\n")

	name := lipgloss.NewStyle().
		Bold(true).
		Foreground(ui.Bright).
		Width(m.width).
		Align(lipgloss.Center).
		Render(ex.Name)
	b.WriteString(name + "\n")

	detail := fmt.Sprintf("%d × %d", ex.Sets, ex.Reps)
	if ex.WeightKg > 0 {
		detail += fmt.Sprintf(" @ %.1f kg", ex.WeightKg)
	}
	b.WriteString(ui.Muted.Width(m.width).Align(lipgloss.Center).Render(detail) + "\n\n")

	// set markers
	marks := make([]string, ex.Sets)
	for i := 0; i < ex.Sets; i++ {
		if i < m.setsDone[m.current] {
			marks[i] = ui.Success.Render("●")
		} else {
			marks[i] = ui.Muted.Render("○")
		}
	}
	b.WriteString(center(strings.Join(marks, " ")) + "\n\n")

	if m.resting {
		mins := int(m.restLeft.Minutes())
		secs := int(m.restLeft.Seconds()) % 60
		restStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(ui.Flame).
			Width(m.width).
			Align(lipgloss.Center)
		b.WriteString(restStyle.Render(fmt.Sprintf("%s rest %02d:%02d", ui.IconTimer, mins, secs)) + "\n\n")
	} else {
		b.WriteString(center("") + "\n\n")
	}

	elapsedLine := ui.Muted.Width(m.width).Align(lipgloss.Center).
		Render(fmt.Sprintf("%s elapsed", m.elapsed.Round(time.Second)))
	b.WriteString(elapsedLine + "\n\n")

	var help string
	if m.resting {
		help = "space to skip rest · s to skip exercise · q to end"
	} else {
		help = "space when the set is done · s to skip exercise · q to end"
	}
	b.WriteString(ui.Muted.Width(m.width).Align(lipgloss.Center).Render(help) + "\n")

	return b.String()
}

package cmd

import (
	"fmt"
	"time"

	"github.com/nwarren/reps/internal/calendar"
	"github.com/nwarren/reps/internal/store"
	"github.com/nwarren/reps/internal/ui"
	"github.com/nwarren/reps/internal/workout"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's plan and where it stands",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	routines, workouts, err := loadHistory(db)
	if err != nil {
		return err
	}

	now := time.Now()
	today := calendar.DayOf(now)

	ui.Header("Today")
	fmt.Println()
	ui.Kv("Day", string(today))

	r := findRoutineForToday(routines, today)
	if r == nil {
		ui.Kv("Plan", ui.IconRest+" rest day")
		fmt.Println()
		return nil
	}

	ui.Kv("Routine", r.Name)
	status := workout.StatusForDay(workouts, routines, today, now)
	ui.Kv("Session", status.String())
	fmt.Println()

	for _, ex := range r.ExercisesOn(today) {
		fmt.Printf("    %s %s\n", ui.IconDot, formatExercise(ex))
	}
	fmt.Println()

	if status == workout.StatusNotStarted {
		ui.Tip(fmt.Sprintf("%s to get going", ui.Accent.Render("reps start --timer")))
		fmt.Println()
	}
	return nil
}

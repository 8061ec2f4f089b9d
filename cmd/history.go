package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/nwarren/reps/internal/routine"
	"github.com/nwarren/reps/internal/store"
	"github.com/nwarren/reps/internal/ui"
	"github.com/nwarren/reps/internal/workout"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history [n]",
	Short: "Show recent workout sessions",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

func runHistory(_ *cobra.Command, args []string) error {
	count := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("%q is not a valid count", args[0])
		}
		count = n
	}

	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	rs := routine.NewStore(db.Conn())
	routines, err := rs.List()
	if err != nil {
		return err
	}
	names := make(map[int]string, len(routines))
	for _, r := range routines {
		names[r.ID] = r.Name
	}

	ws := workout.NewStore(db.Conn())
	workouts, err := ws.ListRecent(count)
	if err != nil {
		return err
	}

	if len(workouts) == 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  No sessions yet."))
		fmt.Printf("  Start one: %s\n", ui.Accent.Render("reps start"))
		fmt.Println()
		return nil
	}

	fmt.Println()
	for _, w := range workouts {
		marker := ui.Warning.Render("…")
		if w.Done() {
			marker = ui.Success.Render("✓")
		}

		date := w.ScheduledDate().Format("Mon, Jan 2")
		line := fmt.Sprintf("  %s %s %s", marker,
			ui.Muted.Render(fmt.Sprintf("%-12s", date)),
			ui.Accent.Render(names[w.RoutineID]))

		completedSets := 0
		for _, l := range w.Exercises {
			completedSets += l.SetsDone
		}
		if completedSets > 0 {
			line += ui.Muted.Render(fmt.Sprintf(" · %d sets", completedSets))
		}
		if w.Done() && w.CompletedAt != nil {
			line += ui.Muted.Render(" · " + w.CompletedAt.Sub(w.StartedAt).Round(time.Minute).String())
		}

		fmt.Println(line)
	}
	fmt.Println()
	return nil
}

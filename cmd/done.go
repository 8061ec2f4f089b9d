package cmd

import (
	"fmt"
	"time"

	"github.com/nwarren/reps/internal/store"
	"github.com/nwarren/reps/internal/streak"
	"github.com/nwarren/reps/internal/ui"
	"github.com/nwarren/reps/internal/workout"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done",
	Short: "Finish the open session",
	RunE:  runDone,
}

func runDone(_ *cobra.Command, _ []string) error {
	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	w, err := activeSession(db)
	if err != nil {
		return err
	}

	ws := workout.NewStore(db.Conn())
	if err := ws.Complete(w.ID, time.Now()); err != nil {
		return err
	}
	if err := db.DeleteKV(store.KeyActiveSession); err != nil {
		return err
	}
	_ = db.DeleteKV(store.KeyStreakSnapshot)

	elapsed := time.Since(w.StartedAt).Round(time.Minute)
	ui.Ok(fmt.Sprintf("Workout done in %s %s", elapsed, ui.IconFire))
	printStreakAfterFinish(db)
	return nil
}

// printStreakAfterFinish shows the fresh streak right after completing a
// session, when the number just moved.
func printStreakAfterFinish(db *store.DB) {
	routines, workouts, err := loadHistory(db)
	if err != nil {
		return
	}
	info := streak.Compute(workouts, routines, time.Now())
	fmt.Println()
	ui.Kv(ui.IconFire+" Streak", fmt.Sprintf("%d (%s)", info.Streak, info.Status))
	fmt.Println()
}

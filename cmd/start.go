package cmd

import (
	"fmt"
	"time"

	"github.com/nwarren/reps/internal/calendar"
	"github.com/nwarren/reps/internal/config"
	"github.com/nwarren/reps/internal/routine"
	"github.com/nwarren/reps/internal/store"
	"github.com/nwarren/reps/internal/tui"
	"github.com/nwarren/reps/internal/ui"
	"github.com/nwarren/reps/internal/workout"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start [routine]",
	Short: "Start a workout session",
	Long: `Start a session for today's scheduled day. With no argument the active
routine that trains today is picked; pass a routine name to override.

With --timer (and a terminal) a full-screen session runner walks you
through each exercise set by set with a rest countdown. Without it the
session stays open for "reps log" and "reps done".`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStart,
}

var (
	startDay   string
	startTimer bool
)

func init() {
	startCmd.Flags().StringVar(&startDay, "day", "", "Train a specific day's plan (default: today)")
	startCmd.Flags().BoolVar(&startTimer, "timer", false, "Run the interactive session timer")
}

func runStart(_ *cobra.Command, args []string) error {
	now := time.Now()
	day := calendar.DayOf(now)
	if startDay != "" {
		parsed, err := calendar.Parse(startDay)
		if err != nil {
			return err
		}
		day = parsed
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}

	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	if ref, _ := db.GetKV(store.KeyActiveSession); ref != "" {
		return fmt.Errorf("a session is already open — finish it with %s or log against it with %s",
			ui.Accent.Render("reps done"), ui.Accent.Render("reps log"))
	}

	rs := routine.NewStore(db.Conn())
	r, err := resolveRoutine(rs, name, day)
	if err != nil {
		return err
	}

	planned := r.ExercisesOn(day)
	if len(planned) == 0 {
		return fmt.Errorf("%s rests on %s — pick another day with %s",
			r.Name, day, ui.Accent.Render("reps start --day <day>"))
	}

	ws := workout.NewStore(db.Conn())
	w, err := ws.Start(r.ID, day, now, planned)
	if err != nil {
		return err
	}
	if err := db.SetKV(store.KeyActiveSession, w.Ref); err != nil {
		return fmt.Errorf("tracking session: %w", err)
	}

	if startTimer && ui.IsStdoutTTY() {
		return runSessionTimer(db, w, r, planned)
	}

	ui.Ok(fmt.Sprintf("Started %s / %s", r.Name, day))
	fmt.Println()
	for _, ex := range planned {
		ui.Putsf("    %s %s", ui.IconDot, formatExercise(ex))
	}
	fmt.Println()
	ui.Tip(fmt.Sprintf("log progress with %s, finish with %s",
		ui.Accent.Render(`reps log "bench press" --sets 3`),
		ui.Accent.Render("reps done")))
	fmt.Println()
	return nil
}

// runSessionTimer drives the full-screen runner and persists its outcome.
func runSessionTimer(db *store.DB, w *workout.Workout, r *routine.Routine, planned []routine.Exercise) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	defaultRest := time.Duration(cfg.Workout.DefaultRestSeconds) * time.Second

	title := fmt.Sprintf("%s / %s", r.Name, w.Day)
	result, err := tui.RunSession(title, planned, defaultRest)
	if err != nil {
		return err
	}

	ws := workout.NewStore(db.Conn())
	for _, o := range result.Outcomes {
		if o.SetsDone == 0 && !o.Completed {
			continue
		}
		if err := ws.MarkExercise(w.ID, o.Name, o.SetsDone, o.Completed); err != nil {
			return err
		}
	}

	if result.Canceled {
		ui.Warn(fmt.Sprintf("Session paused after %s — it is still open.", result.Elapsed))
		ui.Tip(fmt.Sprintf("finish later with %s", ui.Accent.Render("reps done")))
		fmt.Println()
		return nil
	}

	if err := ws.Complete(w.ID, time.Now()); err != nil {
		return err
	}
	if err := db.DeleteKV(store.KeyActiveSession); err != nil {
		return err
	}
	_ = db.DeleteKV(store.KeyStreakSnapshot)

	ui.Ok(fmt.Sprintf("Workout done in %s %s", result.Elapsed, ui.IconFire))
	printStreakAfterFinish(db)
	return nil
}

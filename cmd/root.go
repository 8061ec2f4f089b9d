package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/nwarren/reps/internal/calendar"
	"github.com/nwarren/reps/internal/config"
	"github.com/nwarren/reps/internal/routine"
	"github.com/nwarren/reps/internal/store"
	"github.com/nwarren/reps/internal/streak"
	"github.com/nwarren/reps/internal/ui"
	"github.com/nwarren/reps/internal/workout"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reps",
	Short: "Track your training, keep your streak alive",
	Long:  `reps tracks weekly routines, timed workout sessions, and the streak they build.`,
	RunE:  runDashboard,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.Err(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(routineCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// runDashboard shows the at-a-glance status when you just type `reps`.
func runDashboard(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if !config.Initialized() {
		fmt.Println(ui.Greet(""))
		fmt.Println()
		fmt.Println("  Looks like this is your first time here.")
		fmt.Println()
		fmt.Printf("  Run %s to get set up.\n", ui.Accent.Render("reps init"))
		fmt.Println()
		return nil
	}

	now := time.Now()
	today := calendar.DayOf(now)

	fmt.Println(ui.Greet(cfg.User.Name))
	ui.Puts(ui.Subtitle.Render("  " + now.Format("Monday, January 2")))
	fmt.Println()

	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer db.Close()

	routines, workouts, err := loadHistory(db)
	if err != nil {
		return err
	}

	// Today's plan
	r := findRoutineForToday(routines, today)
	if r == nil {
		ui.Kv(ui.IconRest+" Today", fmt.Sprintf("%s, rest day", today))
	} else {
		status := workout.StatusForDay(workouts, routines, today, now)
		ui.Kv(ui.IconPlan+" Today", fmt.Sprintf("%s, %s (%s)", today, r.Name, status))
	}

	// Streak. The dashboard runs on every bare `reps`, so the result is
	// cached per day; completing a session drops the cache.
	count, status := cachedStreak(db, workouts, routines, now)
	ui.Kv(ui.IconFire+" Streak", fmt.Sprintf("%d (%s)", count, status))

	// Tip
	switch {
	case r != nil && status == streak.StatusPending:
		ui.Tip(fmt.Sprintf("`reps start` to keep the streak at %d alive.", count))
	case r != nil:
		ui.Tip("`reps start` when you hit the gym.")
	default:
		ui.Tip("`reps streak` to see the full timeline.")
	}

	fmt.Println()
	return nil
}

// cachedStreak returns today's streak count and status, reusing the kv
// snapshot when it was written today. Cache errors are ignored: the
// snapshot is an optimization, never a source of truth beyond one day.
func cachedStreak(db *store.DB, workouts []workout.Workout, routines []routine.Routine, now time.Time) (int, streak.Status) {
	today := calendar.DateKey(now)
	if raw, err := db.GetKV(store.KeyStreakSnapshot); err == nil && raw != "" {
		var date string
		var count, status int
		if _, err := fmt.Sscanf(raw, "%10s %d %d", &date, &count, &status); err == nil && date == today {
			return count, streak.Status(status)
		}
	}
	info := streak.Compute(workouts, routines, now)
	_ = db.SetKV(store.KeyStreakSnapshot, fmt.Sprintf("%s %d %d", today, info.Streak, int(info.Status)))
	return info.Streak, info.Status
}

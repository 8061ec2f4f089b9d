package cmd

import (
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/nwarren/reps/internal/backup"
	"github.com/nwarren/reps/internal/calendar"
	"github.com/nwarren/reps/internal/routine"
	"github.com/nwarren/reps/internal/store"
	"github.com/nwarren/reps/internal/ui"
	"github.com/nwarren/reps/internal/workout"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Encrypted backups of all data",
	Long: `Create and restore passphrase-encrypted snapshots of every routine and
workout. Snapshots are armored age files, safe to sync anywhere.

Set REPS_BACKUP_PASSPHRASE to skip the interactive prompt.`,
}

func init() {
	backupCmd.AddCommand(backupCreateCmd)
	backupCmd.AddCommand(backupRestoreCmd)
}

var backupCreateCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Write an encrypted snapshot",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupCreate,
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore a snapshot, skipping anything already present",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupRestore,
}

func runBackupCreate(_ *cobra.Command, args []string) error {
	path := args[0]

	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	routines, workouts, err := loadHistory(db)
	if err != nil {
		return err
	}

	passphrase, err := readPassphrase(true)
	if err != nil {
		return err
	}

	snap := buildSnapshot(routines, workouts, time.Now())
	if err := backup.WriteFile(path, snap, passphrase); err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("Backed up %d routines and %d sessions to %s",
		len(snap.Routines), len(snap.Workouts), path))
	fmt.Println()
	return nil
}

func runBackupRestore(_ *cobra.Command, args []string) error {
	path := args[0]

	passphrase, err := readPassphrase(false)
	if err != nil {
		return err
	}

	snap, err := backup.ReadFile(path, passphrase)
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	restoredRoutines, restoredWorkouts, skipped, err := applySnapshot(db, snap)
	if err != nil {
		return err
	}
	if restoredWorkouts > 0 {
		_ = db.DeleteKV(store.KeyStreakSnapshot)
	}

	ui.Ok(fmt.Sprintf("Restored %d routines and %d sessions", restoredRoutines, restoredWorkouts))
	if skipped > 0 {
		fmt.Println(ui.Muted.Render(fmt.Sprintf("    %d already present, skipped", skipped)))
	}
	fmt.Println()
	return nil
}

// buildSnapshot converts live data into the portable backup form.
func buildSnapshot(routines []routine.Routine, workouts []workout.Workout, now time.Time) *backup.Snapshot {
	names := make(map[int]string, len(routines))

	snap := &backup.Snapshot{CreatedAt: now.UTC()}
	for _, r := range routines {
		names[r.ID] = r.Name
		rec := backup.RoutineRecord{
			Name:      r.Name,
			Active:    r.Active,
			CreatedAt: r.CreatedAt,
			Days:      make(map[string][]backup.ExerciseSlot),
		}
		for day, exercises := range r.Days {
			for _, ex := range exercises {
				rec.Days[string(day)] = append(rec.Days[string(day)], backup.ExerciseSlot{
					Name:        ex.Name,
					Sets:        ex.Sets,
					Reps:        ex.Reps,
					WeightKg:    ex.WeightKg,
					RestSeconds: ex.RestSeconds,
				})
			}
		}
		snap.Routines = append(snap.Routines, rec)
	}

	for _, w := range workouts {
		rec := backup.WorkoutRecord{
			Ref:         w.Ref,
			Routine:     names[w.RoutineID],
			Day:         string(w.Day),
			StartedAt:   w.StartedAt,
			CompletedAt: w.CompletedAt,
		}
		for _, l := range w.Exercises {
			rec.Exercises = append(rec.Exercises, backup.SessionLog{
				Name:        l.Name,
				SetsDone:    l.SetsDone,
				SetsPlanned: l.SetsPlanned,
				Completed:   l.Completed,
			})
		}
		snap.Workouts = append(snap.Workouts, rec)
	}
	return snap
}

// applySnapshot merges a snapshot into the store. Routines merge by name,
// workouts by ref; whatever already exists is left untouched.
func applySnapshot(db *store.DB, snap *backup.Snapshot) (restoredRoutines, restoredWorkouts, skipped int, err error) {
	rs := routine.NewStore(db.Conn())
	ws := workout.NewStore(db.Conn())

	existing, err := rs.List()
	if err != nil {
		return 0, 0, 0, err
	}
	idByName := make(map[string]int, len(existing))
	for _, r := range existing {
		idByName[r.Name] = r.ID
	}

	for _, rec := range snap.Routines {
		if _, ok := idByName[rec.Name]; ok {
			skipped++
			continue
		}
		id, err := rs.Add(rec.Name)
		if err != nil {
			return restoredRoutines, restoredWorkouts, skipped, fmt.Errorf("restoring routine %q: %w", rec.Name, err)
		}
		for dayStr, slots := range rec.Days {
			day, err := calendar.Parse(dayStr)
			if err != nil {
				return restoredRoutines, restoredWorkouts, skipped, fmt.Errorf("routine %q: %w", rec.Name, err)
			}
			exercises := make([]routine.Exercise, 0, len(slots))
			for _, s := range slots {
				exercises = append(exercises, routine.Exercise{
					Name:        s.Name,
					Sets:        s.Sets,
					Reps:        s.Reps,
					WeightKg:    s.WeightKg,
					RestSeconds: s.RestSeconds,
				})
			}
			if err := rs.SetDay(id, day, exercises); err != nil {
				return restoredRoutines, restoredWorkouts, skipped, err
			}
		}
		if !rec.Active {
			if err := rs.SetActive(id, false); err != nil {
				return restoredRoutines, restoredWorkouts, skipped, err
			}
		}
		idByName[rec.Name] = id
		restoredRoutines++
	}

	for _, rec := range snap.Workouts {
		exists, err := ws.Exists(rec.Ref)
		if err != nil {
			return restoredRoutines, restoredWorkouts, skipped, err
		}
		if exists {
			skipped++
			continue
		}
		routineID, ok := idByName[rec.Routine]
		if !ok {
			return restoredRoutines, restoredWorkouts, skipped,
				fmt.Errorf("snapshot workout %s references unknown routine %q", rec.Ref, rec.Routine)
		}

		w := &workout.Workout{
			Ref:         rec.Ref,
			RoutineID:   routineID,
			Day:         calendar.Day(rec.Day),
			StartedAt:   rec.StartedAt,
			CompletedAt: rec.CompletedAt,
		}
		for _, l := range rec.Exercises {
			w.Exercises = append(w.Exercises, workout.ExerciseLog{
				Name:        l.Name,
				SetsDone:    l.SetsDone,
				SetsPlanned: l.SetsPlanned,
				Completed:   l.Completed,
			})
		}
		if err := ws.Import(w); err != nil {
			return restoredRoutines, restoredWorkouts, skipped, err
		}
		restoredWorkouts++
	}

	return restoredRoutines, restoredWorkouts, skipped, nil
}

// readPassphrase gets the backup passphrase from the environment or an
// interactive prompt. confirm asks twice, for snapshot creation.
func readPassphrase(confirm bool) (string, error) {
	if p := os.Getenv("REPS_BACKUP_PASSPHRASE"); p != "" {
		return p, nil
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", fmt.Errorf("backup passphrase required — set %s or run interactively",
			"REPS_BACKUP_PASSPHRASE")
	}

	fmt.Fprint(os.Stderr, ui.Muted.Render("  Backup passphrase: "))
	passBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	if len(passBytes) == 0 {
		return "", fmt.Errorf("passphrase must not be empty")
	}

	if confirm {
		fmt.Fprint(os.Stderr, ui.Muted.Render("  Confirm passphrase: "))
		confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading confirmation: %w", err)
		}
		if string(passBytes) != string(confirmBytes) {
			return "", fmt.Errorf("passphrases do not match")
		}
	}

	return string(passBytes), nil
}

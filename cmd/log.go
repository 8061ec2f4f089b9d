package cmd

import (
	"fmt"

	"github.com/nwarren/reps/internal/store"
	"github.com/nwarren/reps/internal/ui"
	"github.com/nwarren/reps/internal/workout"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log <exercise>",
	Short: "Log progress on the open session",
	Long: `Record sets for one exercise of the currently open session.

  reps log "bench press" --sets 2
  reps log "bench press" --done     marks it fully completed`,
	Args: cobra.ExactArgs(1),
	RunE: runLog,
}

var (
	logSets int
	logDone bool
)

func init() {
	logCmd.Flags().IntVar(&logSets, "sets", 0, "Sets completed so far")
	logCmd.Flags().BoolVar(&logDone, "done", false, "Mark the exercise fully completed")
}

func runLog(_ *cobra.Command, args []string) error {
	name := args[0]

	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	w, err := activeSession(db)
	if err != nil {
		return err
	}

	sets := logSets
	var planned int
	for _, l := range w.Exercises {
		if l.Name == name {
			planned = l.SetsPlanned
			if sets == 0 {
				sets = l.SetsDone
			}
			break
		}
	}
	if logDone && sets < planned {
		sets = planned
	}

	ws := workout.NewStore(db.Conn())
	if err := ws.MarkExercise(w.ID, name, sets, logDone || (planned > 0 && sets >= planned)); err != nil {
		return err
	}

	if logDone || (planned > 0 && sets >= planned) {
		ui.Ok(fmt.Sprintf("%s %s done", ui.IconDone, name))
	} else {
		ui.Ok(fmt.Sprintf("%s: %d/%d sets", name, sets, planned))
	}
	fmt.Println()
	return nil
}

// activeSession resolves the open workout tracked in the kv table.
func activeSession(db *store.DB) (*workout.Workout, error) {
	ref, err := db.GetKV(store.KeyActiveSession)
	if err != nil {
		return nil, err
	}
	if ref == "" {
		return nil, fmt.Errorf("no open session — start one with %s", ui.Accent.Render("reps start"))
	}

	ws := workout.NewStore(db.Conn())
	w, err := ws.GetByRef(ref)
	if err != nil {
		// stale pointer; clear it so the next start works
		db.DeleteKV(store.KeyActiveSession)
		return nil, fmt.Errorf("open session disappeared — start a new one with %s", ui.Accent.Render("reps start"))
	}
	return w, nil
}

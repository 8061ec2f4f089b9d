package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nwarren/reps/internal/calendar"
	"github.com/nwarren/reps/internal/config"
	"github.com/nwarren/reps/internal/routine"
	"github.com/nwarren/reps/internal/store"
	"github.com/nwarren/reps/internal/ui"
	"github.com/spf13/cobra"
)

var routineCmd = &cobra.Command{
	Use:     "routine",
	Aliases: []string{"r"},
	Short:   "Manage weekly training routines",
	Long: `Create and edit weekly routines. A routine names an exercise plan for
each day of the week; days with no exercises are rest days.

Exercise specs look like:
  "bench press:3x8"          3 sets of 8
  "squats:5x5@100"           5 sets of 5 at 100 kg
  "deadlift:3x5@140/180"     180 seconds rest between sets`,
	RunE: runRoutineList,
}

func init() {
	routineCmd.AddCommand(routineAddCmd)
	routineCmd.AddCommand(routineListCmd)
	routineCmd.AddCommand(routineShowCmd)
	routineCmd.AddCommand(routineSetCmd)
	routineCmd.AddCommand(routineRestCmd)
	routineCmd.AddCommand(routineOnCmd)
	routineCmd.AddCommand(routineOffCmd)
	routineCmd.AddCommand(routineRmCmd)
}

var routineAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a new routine",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoutineAdd,
}

var routineListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all routines",
	RunE:  runRoutineList,
}

var routineShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a routine's weekly schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoutineShow,
}

var routineSetCmd = &cobra.Command{
	Use:   "set <name> <day> <exercise>...",
	Short: "Schedule exercises on a day",
	Long: `Replace the exercise list for one day of a routine.

Each exercise argument is "name:SETSxREPS[@WEIGHT][/REST]", for example:
  reps routine set push-pull mon "bench press:3x8@60" "rows:3x10"`,
	Args: cobra.MinimumNArgs(3),
	RunE: runRoutineSet,
}

var routineRestCmd = &cobra.Command{
	Use:   "rest <name> <day>",
	Short: "Make a day a rest day",
	Args:  cobra.ExactArgs(2),
	RunE:  runRoutineRest,
}

var routineOnCmd = &cobra.Command{
	Use:   "on <name>",
	Short: "Activate a routine",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoutineOn,
}

var routineOffCmd = &cobra.Command{
	Use:   "off <name>",
	Short: "Deactivate a routine without deleting its history",
	Long: `Deactivate a routine. It stops being picked for new sessions but its
days still count as scheduled when past weeks are replayed for the streak.`,
	Args: cobra.ExactArgs(1),
	RunE: runRoutineOff,
}

var routineRmCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a routine and its schedule",
	Args:    cobra.ExactArgs(1),
	RunE:    runRoutineRm,
}

func runRoutineAdd(_ *cobra.Command, args []string) error {
	name := args[0]

	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	rs := routine.NewStore(db.Conn())
	id, err := rs.Add(name)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return fmt.Errorf("routine %q already exists", name)
		}
		return err
	}

	ui.Ok(fmt.Sprintf("Added routine %s (#%d)", ui.Accent.Render(name), id))
	ui.Tip(fmt.Sprintf("schedule a day: %s",
		ui.Accent.Render(fmt.Sprintf(`reps routine set %s mon "bench press:3x8"`, name))))
	fmt.Println()
	return nil
}

func runRoutineList(_ *cobra.Command, _ []string) error {
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

	if len(routines) == 0 {
		fmt.Println()
		fmt.Println(ui.Muted.Render("  No routines yet."))
		fmt.Println()
		fmt.Printf("  Add one: %s\n", ui.Accent.Render(`reps routine add "push-pull"`))
		fmt.Println()
		return nil
	}

	fmt.Println()
	for _, r := range routines {
		marker := ui.Success.Render("●")
		if !r.Active {
			marker = ui.Muted.Render("○")
		}

		trainDays := 0
		for _, day := range calendar.Week() {
			if !r.RestDay(day) {
				trainDays++
			}
		}

		line := fmt.Sprintf("  %s %s %s", marker, ui.Accent.Render(r.Name),
			ui.Muted.Render(fmt.Sprintf("(%d training days)", trainDays)))
		if !r.Active {
			line += ui.Muted.Render(" inactive")
		}
		fmt.Println(line)
	}
	fmt.Println()
	return nil
}

func runRoutineShow(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	rs := routine.NewStore(db.Conn())
	r, err := rs.GetByName(args[0])
	if err != nil {
		return err
	}

	ui.Header(r.Name)
	if !r.Active {
		fmt.Println(ui.Muted.Render("  (inactive)"))
	}
	fmt.Println()

	for _, day := range calendar.DisplayWeek(cfg.Workout.WeekStartsMonday) {
		exercises := r.ExercisesOn(day)
		if len(exercises) == 0 {
			fmt.Printf("  %s %s\n",
				ui.Muted.Render(fmt.Sprintf("%-10s", day)),
				ui.Muted.Render(ui.IconRest+" rest"))
			continue
		}
		fmt.Printf("  %s\n", ui.KeyStyle.Render(string(day)))
		for _, ex := range exercises {
			ui.Putsf("    %s %s", ui.IconDot, formatExercise(ex))
		}
	}
	fmt.Println()
	return nil
}

func runRoutineSet(_ *cobra.Command, args []string) error {
	name := args[0]
	day, err := calendar.Parse(args[1])
	if err != nil {
		return err
	}

	var exercises []routine.Exercise
	for _, spec := range args[2:] {
		ex, err := parseExerciseSpec(spec)
		if err != nil {
			return err
		}
		exercises = append(exercises, ex)
	}

	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	rs := routine.NewStore(db.Conn())
	r, err := rs.GetByName(name)
	if err != nil {
		return err
	}

	if err := rs.SetDay(r.ID, day, exercises); err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("%s / %s:", name, day))
	for _, ex := range exercises {
		fmt.Printf("    %s %s\n", ui.IconDot, formatExercise(ex))
	}
	fmt.Println()
	return nil
}

func runRoutineRest(_ *cobra.Command, args []string) error {
	day, err := calendar.Parse(args[1])
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	rs := routine.NewStore(db.Conn())
	r, err := rs.GetByName(args[0])
	if err != nil {
		return err
	}

	if err := rs.RemoveDay(r.ID, day); err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("%s now rests on %s %s", r.Name, day, ui.IconRest))
	fmt.Println()
	return nil
}

func runRoutineOn(_ *cobra.Command, args []string) error {
	return setRoutineActive(args[0], true)
}

func runRoutineOff(_ *cobra.Command, args []string) error {
	return setRoutineActive(args[0], false)
}

func setRoutineActive(name string, active bool) error {
	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	rs := routine.NewStore(db.Conn())
	r, err := rs.GetByName(name)
	if err != nil {
		return err
	}

	if err := rs.SetActive(r.ID, active); err != nil {
		return err
	}

	if active {
		ui.Ok(fmt.Sprintf("Activated %s", name))
	} else {
		ui.Ok(fmt.Sprintf("Deactivated %s (history is kept)", name))
	}
	fmt.Println()
	return nil
}

func runRoutineRm(_ *cobra.Command, args []string) error {
	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	rs := routine.NewStore(db.Conn())
	r, err := rs.GetByName(args[0])
	if err != nil {
		return err
	}

	if err := rs.Delete(r.ID); err != nil {
		return err
	}

	ui.Ok(fmt.Sprintf("Removed %s", r.Name))
	fmt.Println()
	return nil
}

// parseExerciseSpec parses "name:SETSxREPS[@WEIGHT][/REST]".
func parseExerciseSpec(spec string) (routine.Exercise, error) {
	var ex routine.Exercise

	idx := strings.LastIndex(spec, ":")
	if idx <= 0 || idx == len(spec)-1 {
		return ex, fmt.Errorf("invalid exercise %q (want \"name:3x8\" or \"name:3x8@60\")", spec)
	}
	ex.Name = strings.TrimSpace(spec[:idx])
	scheme := spec[idx+1:]

	// trailing /REST
	if i := strings.Index(scheme, "/"); i >= 0 {
		rest, err := strconv.Atoi(strings.TrimSuffix(scheme[i+1:], "s"))
		if err != nil || rest <= 0 {
			return ex, fmt.Errorf("invalid rest in %q (want seconds, like /120)", spec)
		}
		ex.RestSeconds = rest
		scheme = scheme[:i]
	}

	// trailing @WEIGHT
	if i := strings.Index(scheme, "@"); i >= 0 {
		weight, err := strconv.ParseFloat(scheme[i+1:], 64)
		if err != nil || weight < 0 {
			return ex, fmt.Errorf("invalid weight in %q (want kg, like @62.5)", spec)
		}
		ex.WeightKg = weight
		scheme = scheme[:i]
	}

	parts := strings.SplitN(strings.ToLower(scheme), "x", 2)
	if len(parts) != 2 {
		return ex, fmt.Errorf("invalid sets/reps in %q (want SETSxREPS, like 3x8)", spec)
	}
	sets, err1 := strconv.Atoi(parts[0])
	repCount, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || sets <= 0 || repCount <= 0 {
		return ex, fmt.Errorf("invalid sets/reps in %q (want SETSxREPS, like 3x8)", spec)
	}
	ex.Sets = sets
	ex.Reps = repCount

	return ex, nil
}

// formatExercise renders one slot as "bench press 3x8 @ 60 kg (180s rest)".
func formatExercise(ex routine.Exercise) string {
	s := fmt.Sprintf("%s %dx%d", ex.Name, ex.Sets, ex.Reps)
	if ex.WeightKg > 0 {
		s += fmt.Sprintf(" @ %g kg", ex.WeightKg)
	}
	if ex.RestSeconds > 0 {
		s += ui.Muted.Render(fmt.Sprintf(" (%ds rest)", ex.RestSeconds))
	}
	return s
}

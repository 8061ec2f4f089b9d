// Package export writes workout history in portable formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nwarren/reps/internal/routine"
	"github.com/nwarren/reps/internal/workout"
)

// Format selects an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown export format %q (want json or csv)", s)
}

// Record is one workout row in an export.
type Record struct {
	Ref         string     `json:"ref"`
	Routine     string     `json:"routine"`
	Day         string     `json:"day"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Exercises   []Exercise `json:"exercises,omitempty"`
}

// Exercise is one exercise's outcome inside a Record.
type Exercise struct {
	Name        string `json:"name"`
	SetsDone    int    `json:"sets_done"`
	SetsPlanned int    `json:"sets_planned"`
	Completed   bool   `json:"completed"`
}

// Build flattens workouts into export records, resolving routine names.
func Build(workouts []workout.Workout, routines []routine.Routine) []Record {
	names := make(map[int]string, len(routines))
	for _, r := range routines {
		names[r.ID] = r.Name
	}

	records := make([]Record, 0, len(workouts))
	for _, w := range workouts {
		rec := Record{
			Ref:         w.Ref,
			Routine:     names[w.RoutineID],
			Day:         string(w.Day),
			StartedAt:   w.StartedAt,
			CompletedAt: w.CompletedAt,
		}
		for _, ex := range w.Exercises {
			rec.Exercises = append(rec.Exercises, Exercise{
				Name:        ex.Name,
				SetsDone:    ex.SetsDone,
				SetsPlanned: ex.SetsPlanned,
				Completed:   ex.Completed,
			})
		}
		records = append(records, rec)
	}
	return records
}

// WriteJSON writes records as indented JSON.
func WriteJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding JSON export: %w", err)
	}
	return nil
}

// csvHeader is the column layout for CSV exports, one row per exercise.
var csvHeader = []string{
	"ref", "routine", "day", "started_at", "completed_at",
	"exercise", "sets_done", "sets_planned", "completed",
}

// WriteCSV writes records as CSV, one row per exercise. Workouts with no
// logged exercises still get a row with empty exercise columns.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range records {
		completed := ""
		if rec.CompletedAt != nil {
			completed = rec.CompletedAt.Format(time.RFC3339)
		}
		base := []string{
			rec.Ref, rec.Routine, rec.Day,
			rec.StartedAt.Format(time.RFC3339), completed,
		}

		if len(rec.Exercises) == 0 {
			if err := cw.Write(append(base, "", "", "", "")); err != nil {
				return fmt.Errorf("writing CSV row: %w", err)
			}
			continue
		}
		for _, ex := range rec.Exercises {
			row := append(append([]string{}, base...),
				ex.Name,
				strconv.Itoa(ex.SetsDone),
				strconv.Itoa(ex.SetsPlanned),
				strconv.FormatBool(ex.Completed),
			)
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("writing CSV row: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV export: %w", err)
	}
	return nil
}

// Write dispatches on format.
func Write(w io.Writer, format Format, records []Record) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, records)
	case FormatCSV:
		return WriteCSV(w, records)
	}
	return fmt.Errorf("unknown export format %q", format)
}

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/nwarren/reps/internal/store"
	"github.com/nwarren/reps/internal/streak"
	"github.com/nwarren/reps/internal/ui"
	"github.com/spf13/cobra"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current streak and recent timeline",
	RunE:  runStreak,
}

// streakStripDays is how many trailing days the timeline strip shows.
const streakStripDays = 14

func runStreak(_ *cobra.Command, _ []string) error {
	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	routines, workouts, err := loadHistory(db)
	if err != nil {
		return err
	}

	info := streak.Compute(workouts, routines, time.Now())

	ui.Header("Streak")
	fmt.Println()

	switch info.Status {
	case streak.StatusPending:
		ui.Kv(ui.IconFire+" Current", fmt.Sprintf("%d", info.Streak))
		ui.Kv("Status", "pending: today's session keeps it alive")
	case streak.StatusUpToDate:
		ui.Kv(ui.IconFire+" Current", fmt.Sprintf("%d", info.Streak))
		ui.Kv("Status", "up to date")
	default:
		ui.Kv("Current", "0")
		ui.Kv("Status", "expired")
	}
	fmt.Println()

	if len(info.Days) > 0 {
		fmt.Println("  " + renderStrip(info))
		fmt.Println()
	}

	if info.Status == streak.StatusPending {
		ui.Tip(fmt.Sprintf("%s before midnight", ui.Accent.Render("reps start")))
		fmt.Println()
	}
	return nil
}

// renderStrip draws the last stretch of the timeline as one icon per day,
// oldest to newest.
func renderStrip(info streak.Info) string {
	days := streak.Order(info.Days)
	if len(days) > streakStripDays {
		days = days[len(days)-streakStripDays:]
	}

	var b strings.Builder
	for _, d := range days {
		switch {
		case d.Completed:
			b.WriteString(ui.IconDone)
		case d.Rest:
			if d.InStreak {
				b.WriteString(ui.IconRest)
			} else {
				b.WriteString(ui.Muted.Render(ui.IconDot + " "))
			}
		case d.InStreak:
			// scheduled today, still pending
			b.WriteString(ui.IconTimer)
		default:
			b.WriteString(ui.IconMissed)
		}
		b.WriteString(" ")
	}
	return strings.TrimRight(b.String(), " ")
}

package cmd

import (
	"fmt"
	"os"

	"github.com/nwarren/reps/internal/export"
	"github.com/nwarren/reps/internal/store"
	"github.com/nwarren/reps/internal/ui"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export workout history",
	Long: `Write the full workout history to stdout or a file.

  reps export --format json
  reps export --format csv -o history.csv`,
	RunE: runExport,
}

var (
	exportFormat string
	exportOut    string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json or csv")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "Write to a file instead of stdout")
}

func runExport(_ *cobra.Command, _ []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	db, err := store.Open()
	if err != nil {
		return err
	}
	defer db.Close()

	routines, workouts, err := loadHistory(db)
	if err != nil {
		return err
	}

	records := export.Build(workouts, routines)

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOut, err)
		}
		defer f.Close()
		out = f
	}

	if err := export.Write(out, format, records); err != nil {
		return err
	}

	if exportOut != "" {
		ui.Ok(fmt.Sprintf("Exported %d sessions to %s", len(records), exportOut))
		fmt.Println()
	}
	return nil
}

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nwarren/reps/internal/config"
	"github.com/nwarren/reps/internal/store"
	"github.com/nwarren/reps/internal/ui"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up reps for the first time",
	Long:  `Initialize reps with your preferences. Creates config and data directories.`,
	RunE:  runInit,
}

func runInit(_ *cobra.Command, _ []string) error {
	return runInitWithReader(bufio.NewReader(os.Stdin))
}

func runInitWithReader(reader *bufio.Reader) error {
	fmt.Println(ui.Title.Render(ui.IconReps + "Welcome to reps!"))
	fmt.Println()
	ui.Inf("Let's get you set up. This takes less than a minute.")
	fmt.Println()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cfg.User.Name = prompt(reader, "  What should I call you?", guessName())
	fmt.Println()

	restInput := prompt(reader, "  Default rest between sets, in seconds?",
		strconv.Itoa(cfg.Workout.DefaultRestSeconds))
	if n, err := strconv.Atoi(restInput); err == nil && n > 0 {
		cfg.Workout.DefaultRestSeconds = n
	}
	fmt.Println()

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	// Create the database and run migrations now so the first real command
	// doesn't pay for it.
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	if err := db.SetKV(store.KeyWelcomeShown, "1"); err != nil {
		db.Close()
		return fmt.Errorf("recording first run: %w", err)
	}
	db.Close()

	paths := config.GetPaths()

	if cfg.User.Name != "" {
		ui.Ok("All set, " + cfg.User.Name + "!")
	} else {
		ui.Ok("All set!")
	}
	fmt.Println()
	fmt.Println(ui.Muted.Render("  Created:"))
	fmt.Printf("    Config  %s\n", ui.Muted.Render(paths.ConfigFile))
	fmt.Printf("    Data    %s\n", ui.Muted.Render(paths.DBFile))
	fmt.Println()
	fmt.Println("  Next steps:")
	ui.Putsf("    %s %s", ui.IconArrow, ui.Accent.Render(`reps routine add "push-pull"`))
	ui.Putsf("    %s %s", ui.IconArrow, ui.Accent.Render(`reps routine set push-pull mon "bench press:3x8@60"`))
	ui.Putsf("    %s %s", ui.IconArrow, ui.Accent.Render("reps start"))
	fmt.Println()

	return nil
}

func prompt(reader *bufio.Reader, question, defaultVal string) string {
	if defaultVal != "" {
		fmt.Printf("%s %s ", question, ui.Muted.Render(fmt.Sprintf("(%s)", defaultVal)))
	} else {
		fmt.Printf("%s ", question)
	}

	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

func guessName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return ""
}

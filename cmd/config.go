package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nwarren/reps/internal/config"
	"github.com/nwarren/reps/internal/ui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and manage configuration",
	RunE:  runConfigShow,
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print configuration file path",
	Run: func(_ *cobra.Command, _ []string) {
		paths := config.GetPaths()
		fmt.Println(paths.ConfigFile)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value. Supported keys:
  user.name                     Your display name
  workout.default_rest_seconds  Rest between sets when an exercise has none
  workout.week_starts_monday    List weekly schedules Monday-first (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

// configKeys maps user-facing key names to getter/setter pairs.
var configKeys = map[string]struct {
	get func(*config.Config) string
	set func(*config.Config, string) error
}{
	"user.name": {
		get: func(cfg *config.Config) string { return cfg.User.Name },
		set: func(cfg *config.Config, val string) error {
			cfg.User.Name = val
			return nil
		},
	},
	"workout.default_rest_seconds": {
		get: func(cfg *config.Config) string {
			return strconv.Itoa(cfg.Workout.DefaultRestSeconds)
		},
		set: func(cfg *config.Config, val string) error {
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid value %q for workout.default_rest_seconds (want a positive number)", val)
			}
			cfg.Workout.DefaultRestSeconds = n
			return nil
		},
	},
	"workout.week_starts_monday": {
		get: func(cfg *config.Config) string {
			return fmt.Sprintf("%t", cfg.Workout.WeekStartsMonday)
		},
		set: func(cfg *config.Config, val string) error {
			switch strings.ToLower(val) {
			case "true", "1", "yes", "on":
				cfg.Workout.WeekStartsMonday = true
			case "false", "0", "no", "off":
				cfg.Workout.WeekStartsMonday = false
			default:
				return fmt.Errorf("invalid value %q for workout.week_starts_monday (use true/false)", val)
			}
			return nil
		},
	},
}

func runConfigSet(_ *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	entry, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (run %s to see available keys)",
			key, ui.Accent.Render("reps config set --help"))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := entry.set(cfg, value); err != nil {
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	ui.Ok(fmt.Sprintf("%s = %s", key, value))
	return nil
}

func runConfigGet(_ *cobra.Command, args []string) error {
	key := args[0]

	entry, ok := configKeys[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	fmt.Println(entry.get(cfg))
	return nil
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	paths := config.GetPaths()

	ui.Header("Configuration")
	fmt.Println()
	ui.Kv("Name", cfg.User.Name)
	ui.Kv("Rest", fmt.Sprintf("%ds between sets", cfg.Workout.DefaultRestSeconds))
	ui.Kv("Week", weekStartLabel(cfg.Workout.WeekStartsMonday))
	fmt.Println()
	ui.Kv("Config", paths.ConfigFile)
	ui.Kv("Data", paths.DBFile)
	fmt.Println()
	ui.Tip(fmt.Sprintf("Edit directly: %s", ui.Accent.Render("$EDITOR "+paths.ConfigFile)))
	fmt.Println()

	return nil
}

func weekStartLabel(mondayFirst bool) string {
	if mondayFirst {
		return "starts Monday (display only)"
	}
	return "starts Sunday"
}

package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds the top-level reps configuration.
type Config struct {
	User    UserConfig    `toml:"user"`
	Workout WorkoutConfig `toml:"workout"`
}

type UserConfig struct {
	Name string `toml:"name"`
}

// WorkoutConfig controls session defaults.
type WorkoutConfig struct {
	// DefaultRestSeconds is the rest timer used between sets when an
	// exercise slot doesn't specify its own.
	DefaultRestSeconds int `toml:"default_rest_seconds"`
	// WeekStartsMonday lists weekly schedules Monday-first.
	// Streak math is always Sunday-based regardless of this setting.
	WeekStartsMonday bool `toml:"week_starts_monday"`
}

// Paths returns standard XDG-compliant paths.
type Paths struct {
	ConfigDir  string
	DataDir    string
	CacheDir   string
	StateDir   string
	ConfigFile string
	DBFile     string
}

// GetPaths returns the resolved paths, respecting XDG env vars.
func GetPaths() Paths {
	home, _ := os.UserHomeDir()

	configDir := envOr("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataDir := envOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheDir := envOr("XDG_CACHE_HOME", filepath.Join(home, ".cache"))
	stateDir := envOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state"))

	repsConfig := filepath.Join(configDir, "reps")
	repsData := filepath.Join(dataDir, "reps")

	return Paths{
		ConfigDir:  repsConfig,
		DataDir:    repsData,
		CacheDir:   filepath.Join(cacheDir, "reps"),
		StateDir:   filepath.Join(stateDir, "reps"),
		ConfigFile: filepath.Join(repsConfig, "config.toml"),
		DBFile:     filepath.Join(repsData, "reps.db"),
	}
}

// EnsureDirs creates all required directories.
func (p Paths) EnsureDirs() error {
	dirs := []string{p.ConfigDir, p.DataDir, p.CacheDir, p.StateDir}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Load reads config from disk, returning defaults if not found.
func Load() (*Config, error) {
	paths := GetPaths()
	cfg := &Config{}

	data, err := os.ReadFile(paths.ConfigFile)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Workout.DefaultRestSeconds <= 0 {
		cfg.Workout.DefaultRestSeconds = defaultRestSeconds
	}
	return cfg, nil
}

// Save writes config to disk.
func Save(cfg *Config) error {
	paths := GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	f, err := os.Create(paths.ConfigFile)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Initialized returns true if reps has been set up.
func Initialized() bool {
	paths := GetPaths()
	_, err := os.Stat(paths.ConfigFile)
	return err == nil
}

const defaultRestSeconds = 90

func defaultConfig() *Config {
	return &Config{
		Workout: WorkoutConfig{
			DefaultRestSeconds: defaultRestSeconds,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

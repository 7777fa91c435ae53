package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/timer"
)

// Config is the root configuration for tpt, stored in ~/.tpt/config.yaml.
// Every key can be overridden from the environment with the TPT_ prefix.
type Config struct {
	// DataFile is the JSON document holding projects, tasks and sessions.
	DataFile string `mapstructure:"data_file"`
	// LogFile receives the application log.
	LogFile string `mapstructure:"log_file"`
	// ExportDir is where exports go when no output path is given.
	ExportDir string `mapstructure:"export_dir"`
	// Sound enables audible cues.
	Sound bool `mapstructure:"sound"`

	Work           time.Duration `mapstructure:"work"`
	ShortBreak     time.Duration `mapstructure:"short_break"`
	LongBreak      time.Duration `mapstructure:"long_break"`
	LongBreakEvery int           `mapstructure:"long_break_every"`
}

// Durations returns the timer settings.
func (c Config) Durations() timer.Durations {
	return timer.Durations{
		Work:           c.Work,
		ShortBreak:     c.ShortBreak,
		LongBreak:      c.LongBreak,
		LongBreakEvery: c.LongBreakEvery,
	}
}

// BaseDir returns the root data directory (~/.tpt).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".tpt"), nil
}

// DefaultPath returns ~/.tpt/config.yaml.
func DefaultPath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.yaml"), nil
}

func setDefaults(v *viper.Viper, base string) {
	d := timer.DefaultDurations()
	v.SetDefault("data_file", filepath.Join(base, "pomodoro_data.json"))
	v.SetDefault("log_file", filepath.Join(base, "pomodoro.log"))
	v.SetDefault("export_dir", ".")
	v.SetDefault("sound", true)
	v.SetDefault("work", d.Work.String())
	v.SetDefault("short_break", d.ShortBreak.String())
	v.SetDefault("long_break", d.LongBreak.String())
	v.SetDefault("long_break_every", d.LongBreakEvery)
}

// Load reads the config file at path, or ~/.tpt/config.yaml when path is
// empty, creating it with defaults on first run. Relative data and log
// paths are resolved against the config file's directory.
func Load(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	base := filepath.Dir(path)

	v := viper.New()
	setDefaults(v, base)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TPT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		// First run: write the defaults so users can discover options.
		if writeErr := writeDefault(v, path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	cfg.DataFile = resolve(base, cfg.DataFile)
	cfg.LogFile = resolve(base, cfg.LogFile)

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	for name, d := range map[string]time.Duration{
		"work":        c.Work,
		"short_break": c.ShortBreak,
		"long_break":  c.LongBreak,
	} {
		if d < time.Second {
			return fmt.Errorf("%s must be at least 1s, got %s", name, d)
		}
		if d%time.Second != 0 {
			return fmt.Errorf("%s must be whole seconds, got %s", name, d)
		}
	}
	if c.LongBreakEvery < 1 {
		return fmt.Errorf("long_break_every must be at least 1, got %d", c.LongBreakEvery)
	}
	if c.DataFile == "" {
		return errors.New("data_file must not be empty")
	}
	return nil
}

// writeDefault creates the config directory and writes the current settings.
func writeDefault(v *viper.Viper, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if strings.HasPrefix(p, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return filepath.Join(base, p)
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/config"
)

func TestLoadWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Work != 25*time.Minute || cfg.ShortBreak != 5*time.Minute || cfg.LongBreak != 15*time.Minute {
		t.Errorf("durations = %v/%v/%v", cfg.Work, cfg.ShortBreak, cfg.LongBreak)
	}
	if cfg.LongBreakEvery != 4 {
		t.Errorf("LongBreakEvery = %d, want 4", cfg.LongBreakEvery)
	}
	if !cfg.Sound {
		t.Error("Sound should default to true")
	}
	if cfg.DataFile != filepath.Join(dir, "pomodoro_data.json") {
		t.Errorf("DataFile = %q", cfg.DataFile)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to be written on first run: %v", err)
	}

	d := cfg.Durations()
	if d.Of(0) != 1500 {
		t.Errorf("work seconds = %d, want 1500", d.Of(0))
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `data_file: data/pomo.json
sound: false
work: 50m
short_break: 10m
long_break: 30m
long_break_every: 3
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sound {
		t.Error("Sound = true, want false")
	}
	if cfg.Work != 50*time.Minute || cfg.ShortBreak != 10*time.Minute || cfg.LongBreak != 30*time.Minute {
		t.Errorf("durations = %v/%v/%v", cfg.Work, cfg.ShortBreak, cfg.LongBreak)
	}
	if cfg.LongBreakEvery != 3 {
		t.Errorf("LongBreakEvery = %d, want 3", cfg.LongBreakEvery)
	}
	if cfg.DataFile != filepath.Join(dir, "data", "pomo.json") {
		t.Errorf("DataFile = %q, want path relative to config dir", cfg.DataFile)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("TPT_SOUND", "false")
	t.Setenv("TPT_LONG_BREAK_EVERY", "2")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sound {
		t.Error("TPT_SOUND=false not applied")
	}
	if cfg.LongBreakEvery != 2 {
		t.Errorf("LongBreakEvery = %d, want 2", cfg.LongBreakEvery)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"zero work":          "work: 0s\n",
		"fractional seconds": "short_break: 1500ms\n",
		"no long breaks":     "long_break_every: 0\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := config.Load(path); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("work: [unclosed\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/app"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/catalog"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/config"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/report"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/sound"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/storage"
)

var (
	cfgFile  string
	dataFile string
	verbose  bool
	noSound  bool

	cfg     config.Config
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "tpt",
	Short: "Trivial Pomodoro Timer – a file-based Pomodoro timer",
	Long: `tpt runs Pomodoro work intervals and breaks, records focused time
against projects and tasks, and reports or exports the history.
All data is stored in a single human-readable JSON file in ~/.tpt/.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.tpt/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataFile, "data", "", "Data file (overrides data_file from the config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVar(&noSound, "no-sound", false, "Disable sound cues")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dataCmd)
}

// setup loads the configuration and routes the log to the log file, since
// the interactive timer owns the terminal.
func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if dataFile != "" {
		c.DataFile = dataFile
	}
	if noSound {
		c.Sound = false
	}
	cfg = c

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	out, err := openLog(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging to stderr: %v\n", err)
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
		return nil
	}
	logFile = out
	slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})))
	slog.Debug("configuration loaded", "data_file", cfg.DataFile, "sound", cfg.Sound)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if logFile != nil {
		return logFile.Close()
	}
	return nil
}

func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, nil
}

// openCatalog loads the data file. Storage errors exit with status 2.
func openCatalog() *catalog.Catalog {
	store := storage.New(cfg.DataFile)
	data, err := store.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	return catalog.New(data, store)
}

// newApp wires an App over cat using the loaded configuration.
func newApp(cat *catalog.Catalog, format report.Format, choose app.PathChooser) *app.App {
	return app.New(cat, app.Options{
		Durations: cfg.Durations(),
		Sound:     sound.New(cfg.Sound),
		ExportDir: cfg.ExportDir,
		Format:    format,
		Choose:    choose,
	})
}

// printNotices writes info notices to stdout and the rest to stderr. It
// returns the most severe level seen.
func printNotices(notices []app.Notice) app.Level {
	worst := app.Info
	for _, n := range notices {
		if n.Level == app.Info {
			fmt.Println(n.Message)
			continue
		}
		worst = max(worst, n.Level)
		fmt.Fprintln(os.Stderr, n.Message)
	}
	return worst
}

// exitOnNotices prints notices and exits with status 1 on a warning or 2
// on an error.
func exitOnNotices(notices []app.Notice) {
	switch printNotices(notices) {
	case app.Warning:
		os.Exit(1)
	case app.Error:
		os.Exit(2)
	}
}

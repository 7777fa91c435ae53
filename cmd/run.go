package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/tui"
)

var (
	runProject string
	runTask    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive Pomodoro timer",
	Long: `Opens the timer screen. Select a task with t (or --project/--task),
start with s, pause with p. Press ? for all keys.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runProject, "project", "", "Project to select")
	runCmd.Flags().StringVar(&runTask, "task", "", "Task to select (requires --project)")
}

func runRun(cmd *cobra.Command, args []string) error {
	if runTask != "" && runProject == "" {
		fmt.Fprintln(os.Stderr, "--task requires --project")
		os.Exit(1)
	}

	cat := openCatalog()
	a := newApp(cat, "", nil)
	if runProject != "" {
		exitOnNotices(a.Select(runProject, runTask))
	}

	if err := tui.Run(a); err != nil {
		return fmt.Errorf("running timer: %w", err)
	}
	return nil
}

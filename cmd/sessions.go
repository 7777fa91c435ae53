package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/report"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/timecalc"
)

var sessionsFilter string

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded sessions, most recent first",
	Args:  cobra.NoArgs,
	RunE:  runSessions,
}

func init() {
	sessionsCmd.Flags().StringVar(&sessionsFilter, "filter", "today", "Date filter: today, yesterday, 7d, 30d, all")
}

func runSessions(cmd *cobra.Command, args []string) error {
	f, err := report.ParseFilter(sessionsFilter)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cat := openCatalog()
	printSessions(cmd.OutOrStdout(), report.Populate(cat.Sessions(), f, time.Now()))
	return nil
}

// printSessions groups sessions by date and prints them with the totals.
func printSessions(w io.Writer, sum report.Summary) {
	if sum.Count == 0 {
		fmt.Fprintf(w, "No sessions (%s).\n", sum.Filter)
		return
	}

	var currentDay string
	for _, s := range sum.Sessions {
		day := s.Start().Format("2006-01-02")
		if day != currentDay {
			fmt.Fprintln(w, day)
			currentDay = day
		}
		fmt.Fprintf(w, "%s–%s  %s  %s (%s)\n",
			s.Start().Format("15:04"),
			s.End().Format("15:04"),
			s.Project,
			s.Task,
			timecalc.FormatClock(int(s.DurationSeconds)))
	}
	fmt.Fprintf(w, "Total Time: %s\n", sum.TotalText())
	fmt.Fprintf(w, "Sessions: %d\n", sum.Count)
}

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/model"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/report"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/timecalc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's focused time",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cat := openCatalog()
	printStatus(cmd.OutOrStdout(), cat.Sessions(), time.Now())
	return nil
}

func printStatus(w io.Writer, sessions []model.Session, now time.Time) {
	today := report.Populate(sessions, report.Today, now)
	if today.Count == 0 {
		fmt.Fprintln(w, "No sessions recorded today.")
	} else {
		fmt.Fprintf(w, "Today: %s in %d sessions.\n", today.TotalText(), today.Count)
		last := today.Sessions[0]
		fmt.Fprintf(w, "  Last: %s (%s–%s)\n",
			model.Task{Project: last.Project, Name: last.Task}.Key(),
			last.Start().Format("15:04"),
			last.End().Format("15:04"))
	}

	from, to := report.WeeklyRange(now)
	var week float64
	for _, s := range report.InRange(sessions, from, to) {
		week += s.DurationSeconds
	}
	fmt.Fprintf(w, "Week %s: %s.\n", timecalc.ISOWeekLabel(now), timecalc.FormatDuration(week))
}

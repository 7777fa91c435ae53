package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/report"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/timecalc"
)

var (
	reportFilter string
	reportFormat string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show focused time per project",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFilter, "filter", "7d", "Date filter: today, yesterday, 7d, 30d, all")
	reportCmd.Flags().StringVar(&reportFormat, "format", "md", "Output format: md, csv, json")
}

func runReport(cmd *cobra.Command, args []string) error {
	f, err := report.ParseFilter(reportFilter)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cat := openCatalog()
	sum := report.Populate(cat.Sessions(), f, time.Now())
	if err := writeReport(cmd.OutOrStdout(), sum, reportFormat); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return nil
}

type projectJSON struct {
	Project         string  `json:"project"`
	DurationMinutes float64 `json:"duration_minutes"`
	Sessions        int     `json:"sessions"`
}

type reportJSON struct {
	Filter       string        `json:"filter"`
	Projects     []projectJSON `json:"projects"`
	TotalMinutes float64       `json:"total_minutes"`
	Sessions     int           `json:"sessions"`
}

func minutes(seconds float64) float64 {
	return math.Round(seconds/6) / 10
}

// writeReport renders per-project totals of sum as md, csv or json.
func writeReport(w io.Writer, sum report.Summary, format string) error {
	totals := report.ByProject(sum.Sessions)

	switch strings.ToLower(format) {
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"project", "duration_minutes", "sessions"}); err != nil {
			return err
		}
		for _, pt := range totals {
			row := []string{pt.Project, fmt.Sprintf("%.1f", minutes(pt.Seconds)), fmt.Sprint(pt.Sessions)}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case "json":
		out := reportJSON{
			Filter:       sum.Filter.String(),
			Projects:     []projectJSON{},
			TotalMinutes: minutes(sum.Total),
			Sessions:     sum.Count,
		}
		for _, pt := range totals {
			out.Projects = append(out.Projects, projectJSON{
				Project:         pt.Project,
				DurationMinutes: minutes(pt.Seconds),
				Sessions:        pt.Sessions,
			})
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "md", "":
		fmt.Fprintln(w, sum.Filter)
		fmt.Fprintln(w, "--------------------------------")
		for _, pt := range totals {
			fmt.Fprintf(w, "%-20s%s\n", pt.Project, timecalc.FormatDuration(pt.Seconds))
		}
		fmt.Fprintln(w, "--------------------------------")
		fmt.Fprintf(w, "%-20s%s\n", "Total", sum.TotalText())
		return nil
	}
	return fmt.Errorf("unknown report format %q (want md, csv or json)", format)
}

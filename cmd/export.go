package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/report"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/timecalc"
)

var (
	exportFormat string
	exportOutput string
	exportFrom   string
	exportTo     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded sessions to a CSV or PDF file",
}

var exportDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Export today's sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to := report.DailyRange(time.Now())
		return runExport("daily", from, to)
	},
}

var exportWeeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Export the sessions since Monday",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to := report.WeeklyRange(time.Now())
		return runExport("weekly", from, to)
	},
}

var exportRangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Export the sessions between --from and --to, inclusive",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := parseRange(exportFrom, exportTo)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return runExport("custom", from, to)
	},
}

func init() {
	exportCmd.PersistentFlags().StringVar(&exportFormat, "format", "csv", "File format: csv, pdf")
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "Output file (default pomodoro_<type>_report_<start>.<format> in export_dir)")
	exportRangeCmd.Flags().StringVar(&exportFrom, "from", "", "First day, YYYY-MM-DD")
	exportRangeCmd.Flags().StringVar(&exportTo, "to", "", "Last day, YYYY-MM-DD (default today)")
	_ = exportRangeCmd.MarkFlagRequired("from")
	exportCmd.AddCommand(exportDailyCmd, exportWeeklyCmd, exportRangeCmd)
}

// parseRange parses --from and --to. An empty to means today.
func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := timecalc.ParseDate(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to := timecalc.StartOfDay(time.Now())
	if toStr != "" {
		if to, err = timecalc.ParseDate(toStr); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", toStr, fromStr)
	}
	return from, to, nil
}

func runExport(kind string, from, to time.Time) error {
	format, err := report.ParseFormat(exportFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	choose := func(suggested string) string {
		if exportOutput != "" {
			return exportOutput
		}
		return filepath.Join(cfg.ExportDir, suggested)
	}

	cat := openCatalog()
	a := newApp(cat, format, choose)
	exitOnNotices(a.Export(kind, from, to))
	return nil
}

package report_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/model"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/report"
)

// 2026-02-27 is a Friday.
var now = time.Date(2026, 2, 27, 18, 0, 0, 0, time.Local)

func sessionAt(daysAgo int, hour int, project string, seconds float64) model.Session {
	start := time.Date(now.Year(), now.Month(), now.Day()-daysAgo, hour, 0, 0, 0, time.Local)
	return model.Session{
		ID:              project,
		StartTime:       model.At(start),
		EndTime:         model.At(start.Add(time.Duration(seconds) * time.Second)),
		Project:         project,
		Task:            "Draft",
		TaskKey:         project + ": Draft",
		DurationSeconds: seconds,
	}
}

func ids(sessions []model.Session) []string {
	var out []string
	for _, s := range sessions {
		out = append(out, s.ID)
	}
	return out
}

func TestPopulateLast7Days(t *testing.T) {
	sessions := []model.Session{
		sessionAt(8, 9, "d8", 1500),
		sessionAt(0, 9, "d0", 1500),
		sessionAt(6, 9, "d6", 1500),
		sessionAt(3, 9, "d3", 1500),
	}
	got := report.Populate(sessions, report.Last7Days, now)

	want := []string{"d0", "d3", "d6"}
	if strings.Join(ids(got.Sessions), ",") != strings.Join(want, ",") {
		t.Errorf("sessions = %v, want %v", ids(got.Sessions), want)
	}
	if got.Count != 3 {
		t.Errorf("Count = %d, want 3", got.Count)
	}
	if got.Total != 4500 {
		t.Errorf("Total = %v, want 4500", got.Total)
	}
	if got.TotalText() != "1h 15m 0s" {
		t.Errorf("TotalText = %q", got.TotalText())
	}
}

func TestPopulateFilters(t *testing.T) {
	sessions := []model.Session{
		sessionAt(0, 9, "today", 60),
		sessionAt(1, 9, "yesterday", 60),
		sessionAt(2, 9, "twoDays", 60),
		sessionAt(29, 9, "d29", 60),
		sessionAt(30, 9, "d30", 60),
	}
	tests := []struct {
		filter report.Filter
		want   []string
	}{
		{report.Today, []string{"today"}},
		{report.Yesterday, []string{"yesterday"}},
		{report.Last7Days, []string{"today", "yesterday", "twoDays"}},
		{report.Last30Days, []string{"today", "yesterday", "twoDays", "d29"}},
		{report.AllTime, []string{"today", "yesterday", "twoDays", "d29", "d30"}},
	}
	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			got := report.Populate(sessions, tt.filter, now)
			if strings.Join(ids(got.Sessions), ",") != strings.Join(tt.want, ",") {
				t.Errorf("sessions = %v, want %v", ids(got.Sessions), tt.want)
			}
		})
	}
}

func TestPopulateSortsMostRecentFirst(t *testing.T) {
	sessions := []model.Session{
		sessionAt(0, 8, "early", 60),
		sessionAt(0, 14, "late", 60),
		sessionAt(0, 11, "mid", 60),
	}
	got := report.Populate(sessions, report.Today, now)
	if strings.Join(ids(got.Sessions), ",") != "late,mid,early" {
		t.Errorf("order = %v", ids(got.Sessions))
	}
}

func TestParseFilter(t *testing.T) {
	tests := map[string]report.Filter{
		"today":        report.Today,
		"Yesterday":    report.Yesterday,
		"7d":           report.Last7Days,
		"Last 7 Days":  report.Last7Days,
		"30d":          report.Last30Days,
		"Last 30 Days": report.Last30Days,
		"all":          report.AllTime,
		"All Time":     report.AllTime,
	}
	for in, want := range tests {
		got, err := report.ParseFilter(in)
		if err != nil || got != want {
			t.Errorf("ParseFilter(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := report.ParseFilter("fortnight"); !errors.Is(err, report.ErrUnknownFilter) {
		t.Errorf("ParseFilter(fortnight) err = %v, want ErrUnknownFilter", err)
	}
}

func TestFilterNextWraps(t *testing.T) {
	if report.AllTime.Next() != report.Today {
		t.Error("AllTime.Next() should wrap to Today")
	}
	if report.Today.Next() != report.Yesterday {
		t.Error("Today.Next() should be Yesterday")
	}
}

func TestRanges(t *testing.T) {
	from, to := report.DailyRange(now)
	today := time.Date(2026, 2, 27, 0, 0, 0, 0, time.Local)
	if !from.Equal(today) || !to.Equal(today) {
		t.Errorf("DailyRange = %v..%v", from, to)
	}
	from, to = report.WeeklyRange(now)
	monday := time.Date(2026, 2, 23, 0, 0, 0, 0, time.Local)
	if !from.Equal(monday) || !to.Equal(today) {
		t.Errorf("WeeklyRange = %v..%v, want %v..%v", from, to, monday, today)
	}
}

func TestWriteCSV(t *testing.T) {
	s := sessionAt(0, 9, "Writing, Inc.", 1530)
	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, []model.Session{s}); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	want := "Date,Start Time,End Time,Project,Task,Duration (min)\n" +
		"2026-02-27,09:00:00,09:25:30,\"Writing, Inc.\",Draft,25.5\n"
	if buf.String() != want {
		t.Errorf("CSV =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestExportNoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	sessions := []model.Session{sessionAt(3, 9, "old", 1500)}
	from, to := report.DailyRange(now)

	n, err := report.Export(path, report.CSV, sessions, from, to)
	if !errors.Is(err, report.ErrNoData) {
		t.Fatalf("Export err = %v, want ErrNoData", err)
	}
	if n != 0 {
		t.Errorf("exported = %d, want 0", n)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file may be written when there is no data")
	}
}

func TestExportCSVRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.csv")
	sessions := []model.Session{
		sessionAt(5, 9, "beforeWeek", 1500),
		sessionAt(4, 9, "monday", 1500),
		sessionAt(0, 9, "today", 1500),
	}
	from, to := report.WeeklyRange(now)

	n, err := report.Export(path, report.CSV, sessions, from, to)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != 2 {
		t.Errorf("exported = %d, want 2", n)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows:\n%s", len(lines), raw)
	}
	if !strings.HasPrefix(lines[1], "2026-02-23,") || !strings.HasPrefix(lines[2], "2026-02-27,") {
		t.Errorf("rows = %v", lines[1:])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xls")
	sessions := []model.Session{sessionAt(0, 9, "today", 1500)}
	from, to := report.DailyRange(now)
	if _, err := report.Export(path, report.Format("xls"), sessions, from, to); !errors.Is(err, report.ErrUnknownFormat) {
		t.Errorf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := report.ParseFormat("PDF"); err != nil || f != report.PDF {
		t.Errorf("ParseFormat(PDF) = %v, %v", f, err)
	}
	if _, err := report.ParseFormat("docx"); !errors.Is(err, report.ErrUnknownFormat) {
		t.Errorf("ParseFormat(docx) err = %v", err)
	}
}

func TestDefaultFilename(t *testing.T) {
	from := time.Date(2026, 2, 23, 0, 0, 0, 0, time.Local)
	got := report.DefaultFilename("weekly", from, report.CSV)
	if got != "pomodoro_weekly_report_2026-02-23.csv" {
		t.Errorf("DefaultFilename = %q", got)
	}
}

func TestByProject(t *testing.T) {
	sessions := []model.Session{
		sessionAt(0, 9, "Writing", 1500),
		sessionAt(0, 10, "Ops", 600),
		sessionAt(0, 11, "Writing", 300),
	}
	got := report.ByProject(sessions)
	if len(got) != 2 {
		t.Fatalf("ByProject = %+v", got)
	}
	if got[0].Project != "Ops" || got[0].Seconds != 600 || got[0].Sessions != 1 {
		t.Errorf("got[0] = %+v", got[0])
	}
	if got[1].Project != "Writing" || got[1].Seconds != 1800 || got[1].Sessions != 2 {
		t.Errorf("got[1] = %+v", got[1])
	}
}

package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/model"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/report"
)

var now = time.Date(2026, 2, 27, 18, 0, 0, 0, time.Local)

func session(project, task string, daysAgo, hour int, seconds float64) model.Session {
	start := time.Date(2026, 2, 27-daysAgo, hour, 0, 0, 0, time.Local)
	t := model.Task{Project: project, Name: task}
	return model.Session{
		StartTime:       model.At(start),
		EndTime:         model.At(start.Add(time.Duration(seconds) * time.Second)),
		Project:         project,
		Task:            task,
		TaskKey:         t.Key(),
		DurationSeconds: seconds,
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{" y \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got := confirm(strings.NewReader(tt.input), &out, "Delete project 'Writing'? This will remove all associated task records.")
		if got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if !strings.HasPrefix(out.String(), "Delete project 'Writing'? This will remove all associated task records. [y/N] ") {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

func TestWriteReport(t *testing.T) {
	sessions := []model.Session{
		session("Writing", "Draft", 0, 9, 1500),
		session("Ops", "Deploy", 1, 9, 600),
		session("Writing", "Edit", 2, 9, 1530),
	}
	sum := report.Populate(sessions, report.Last7Days, now)

	t.Run("md", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeReport(&buf, sum, "md"); err != nil {
			t.Fatal(err)
		}
		want := "Last 7 Days\n" +
			"--------------------------------\n" +
			"Ops                 10m 0s\n" +
			"Writing             50m 30s\n" +
			"--------------------------------\n" +
			"Total               1h 0m 30s\n"
		if buf.String() != want {
			t.Errorf("md =\n%s\nwant\n%s", buf.String(), want)
		}
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeReport(&buf, sum, "csv"); err != nil {
			t.Fatal(err)
		}
		want := "project,duration_minutes,sessions\nOps,10.0,1\nWriting,50.5,2\n"
		if buf.String() != want {
			t.Errorf("csv = %q, want %q", buf.String(), want)
		}
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		if err := writeReport(&buf, sum, "json"); err != nil {
			t.Fatal(err)
		}
		var got reportJSON
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
		}
		if got.Filter != "Last 7 Days" || got.Sessions != 3 || got.TotalMinutes != 60.5 || len(got.Projects) != 2 {
			t.Errorf("json = %+v", got)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if err := writeReport(&bytes.Buffer{}, sum, "xml"); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestPrintSessions(t *testing.T) {
	sessions := []model.Session{
		session("Writing", "Draft", 0, 9, 1500),
		session("Writing", "Edit", 0, 11, 90),
	}
	var buf bytes.Buffer
	printSessions(&buf, report.Populate(sessions, report.Today, now))
	want := "2026-02-27\n" +
		"11:00–11:01  Writing  Edit (01:30)\n" +
		"09:00–09:25  Writing  Draft (25:00)\n" +
		"Total Time: 26m 30s\n" +
		"Sessions: 2\n"
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}

	buf.Reset()
	printSessions(&buf, report.Populate(sessions, report.Yesterday, now))
	if buf.String() != "No sessions (Yesterday).\n" {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestPrintStatus(t *testing.T) {
	sessions := []model.Session{
		session("Writing", "Draft", 0, 9, 1500),
		session("Ops", "Deploy", 2, 9, 600),
		session("Ops", "Deploy", 10, 9, 600),
	}
	var buf bytes.Buffer
	printStatus(&buf, sessions, now)
	want := "Today: 25m 0s in 1 sessions.\n" +
		"  Last: Writing: Draft (09:00–09:25)\n" +
		"Week 2026-W09: 35m 0s.\n"
	if buf.String() != want {
		t.Errorf("output =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestParseRange(t *testing.T) {
	from, to, err := parseRange("2026-02-01", "2026-02-07")
	if err != nil {
		t.Fatal(err)
	}
	if from.Day() != 1 || to.Day() != 7 {
		t.Errorf("range = %v..%v", from, to)
	}
	if _, _, err := parseRange("2026-02-07", "2026-02-01"); err == nil {
		t.Error("expected error for reversed range")
	}
	if _, _, err := parseRange("02/01/2026", ""); err == nil {
		t.Error("expected error for malformed date")
	}
}

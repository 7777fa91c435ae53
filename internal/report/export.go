package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/model"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export file format.
type Format string

const (
	CSV Format = "csv"
	PDF Format = "pdf"
)

// ParseFormat accepts "csv" or "pdf".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case CSV, PDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Header is the first row of every export.
var Header = []string{"Date", "Start Time", "End Time", "Project", "Task", "Duration (min)"}

// Row renders one session as export columns.
func Row(s model.Session) []string {
	return []string{
		s.Start().Format("2006-01-02"),
		s.Start().Format("15:04:05"),
		s.End().Format("15:04:05"),
		s.Project,
		s.Task,
		fmt.Sprintf("%.1f", s.DurationSeconds/60),
	}
}

// WriteCSV writes the header and one row per session.
func WriteCSV(w io.Writer, sessions []model.Session) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, s := range sessions {
		if err := cw.Write(Row(s)); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// DefaultFilename returns "pomodoro_<kind>_report_<from>.<ext>".
func DefaultFilename(kind string, from time.Time, f Format) string {
	return fmt.Sprintf("pomodoro_%s_report_%s.%s", kind, from.Format("2006-01-02"), f)
}

// Export writes the sessions whose start date lies in [from, to] to path.
// It returns ErrNoData without creating a file when nothing matches.
func Export(path string, f Format, sessions []model.Session, from, to time.Time) (int, error) {
	rows := InRange(sessions, from, to)
	if len(rows) == 0 {
		return 0, ErrNoData
	}

	switch f {
	case PDF:
		if err := WritePDF(path, rows, from, to); err != nil {
			return 0, err
		}
	case CSV, "":
		file, err := os.Create(path)
		if err != nil {
			return 0, fmt.Errorf("creating export file: %w", err)
		}
		if err := WriteCSV(file, rows); err != nil {
			file.Close()
			return 0, err
		}
		if err := file.Close(); err != nil {
			return 0, fmt.Errorf("closing export file: %w", err)
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	slog.Info("exported report", "sessions", len(rows), "path", path, "format", string(f))
	return len(rows), nil
}

package timecalc

import (
	"fmt"
	"time"
)

// FormatClock formats seconds as the countdown display MM:SS.
// Minutes are not wrapped into hours.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// FormatDuration formats a report total like "1h 2m 3s" or "25m 0s".
// Fractional seconds are truncated.
func FormatDuration(seconds float64) string {
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

// WeekStart returns 00:00 of the Monday on or before t.
func WeekStart(t time.Time) time.Time {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	return StartOfDay(t.AddDate(0, 0, -(wd - 1)))
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBefore returns 00:00:00 of the calendar day n days before t.
func DaysBefore(t time.Time, n int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()-n, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayWithin reports whether the calendar day of t lies in [from, to],
// comparing dates only.
func DayWithin(t, from, to time.Time) bool {
	d := StartOfDay(t)
	return !d.Before(StartOfDay(from)) && !d.After(StartOfDay(to))
}

// ParseDate parses a YYYY-MM-DD date in the local time zone.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return d, nil
}

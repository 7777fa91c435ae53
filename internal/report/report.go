// Package report filters the session history by date and exports it.
package report

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/model"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/timecalc"
)

var (
	ErrNoData        = errors.New("no sessions in range")
	ErrUnknownFilter = errors.New("unknown date filter")
)

// Filter selects a date range relative to today.
type Filter int

const (
	Today Filter = iota
	Yesterday
	Last7Days
	Last30Days
	AllTime
)

// Filters lists every filter in display order.
var Filters = []Filter{Today, Yesterday, Last7Days, Last30Days, AllTime}

func (f Filter) String() string {
	switch f {
	case Today:
		return "Today"
	case Yesterday:
		return "Yesterday"
	case Last7Days:
		return "Last 7 Days"
	case Last30Days:
		return "Last 30 Days"
	case AllTime:
		return "All Time"
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	i := slices.Index(Filters, f)
	return Filters[(i+1)%len(Filters)]
}

// ParseFilter accepts a display name ("Last 7 Days") or a short form
// ("today", "yesterday", "7d", "30d", "all"), case-insensitively.
func ParseFilter(s string) (Filter, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch norm {
	case "today":
		return Today, nil
	case "yesterday":
		return Yesterday, nil
	case "7d", "week", "last7days", "last 7 days":
		return Last7Days, nil
	case "30d", "month", "last30days", "last 30 days":
		return Last30Days, nil
	case "all", "alltime", "all time":
		return AllTime, nil
	}
	return Today, fmt.Errorf("%w: %q", ErrUnknownFilter, s)
}

// Matches reports whether a session starting at start falls in f relative
// to now, comparing calendar dates only.
func (f Filter) Matches(start, now time.Time) bool {
	switch f {
	case Today:
		return timecalc.SameDay(start, now)
	case Yesterday:
		return timecalc.SameDay(start, timecalc.DaysBefore(now, 1))
	case Last7Days:
		return timecalc.DayWithin(start, timecalc.DaysBefore(now, 6), now)
	case Last30Days:
		return timecalc.DayWithin(start, timecalc.DaysBefore(now, 29), now)
	case AllTime:
		return true
	}
	return false
}

// Summary is the filtered session list with its aggregates.
type Summary struct {
	Filter   Filter
	Sessions []model.Session
	Total    float64
	Count    int
}

// TotalText formats Total for display.
func (s Summary) TotalText() string { return timecalc.FormatDuration(s.Total) }

// Populate filters sessions by f relative to now, most recent first.
func Populate(sessions []model.Session, f Filter, now time.Time) Summary {
	out := Summary{Filter: f, Sessions: []model.Session{}}
	for _, s := range sessions {
		if f.Matches(s.Start(), now) {
			out.Sessions = append(out.Sessions, s)
			out.Total += s.DurationSeconds
		}
	}
	out.Count = len(out.Sessions)
	sort.SliceStable(out.Sessions, func(i, j int) bool {
		return out.Sessions[i].Start().After(out.Sessions[j].Start())
	})

	if out.Count == 0 {
		slog.Info("no sessions found", "filter", f.String())
	} else {
		slog.Info("showing sessions", "filter", f.String(), "count", out.Count, "total", out.TotalText())
	}
	return out
}

// InRange returns the sessions whose start date lies in [from, to],
// inclusive, in recording order.
func InRange(sessions []model.Session, from, to time.Time) []model.Session {
	var out []model.Session
	for _, s := range sessions {
		if timecalc.DayWithin(s.Start(), from, to) {
			out = append(out, s)
		}
	}
	return out
}

// DailyRange returns [today, today].
func DailyRange(now time.Time) (time.Time, time.Time) {
	d := timecalc.StartOfDay(now)
	return d, d
}

// WeeklyRange returns [most recent Monday, today].
func WeeklyRange(now time.Time) (time.Time, time.Time) {
	return timecalc.WeekStart(now), timecalc.StartOfDay(now)
}

// ProjectTotal is the focused time spent on one project.
type ProjectTotal struct {
	Project  string
	Seconds  float64
	Sessions int
}

// ByProject aggregates sessions per project, sorted by project name.
func ByProject(sessions []model.Session) []ProjectTotal {
	totals := map[string]*ProjectTotal{}
	var order []string
	for _, s := range sessions {
		pt, seen := totals[s.Project]
		if !seen {
			pt = &ProjectTotal{Project: s.Project}
			totals[s.Project] = pt
			order = append(order, s.Project)
		}
		pt.Seconds += s.DurationSeconds
		pt.Sessions++
	}
	sort.Strings(order)

	out := make([]ProjectTotal, 0, len(order))
	for _, p := range order {
		out = append(out, *totals[p])
	}
	return out
}

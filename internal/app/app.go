// Package app is the command surface consumed by presentation layers. It
// wires the catalog, the timer and the sound player together and turns
// every command outcome into user-visible notices.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/catalog"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/model"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/report"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/sound"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/timecalc"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/timer"
)

// Level is the severity of a Notice.
type Level int

const (
	Info Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	}
	return "Info"
}

// Notice is a message the presentation layer must show to the user.
type Notice struct {
	Level   Level
	Title   string
	Message string
}

func (n Notice) String() string {
	return n.Title + ": " + n.Message
}

func info(title, msg string) Notice    { return Notice{Level: Info, Title: title, Message: msg} }
func warning(msg string) Notice        { return Notice{Level: Warning, Title: "Warning", Message: msg} }
func failure(err error) Notice         { return Notice{Level: Error, Title: "Error", Message: err.Error()} }
func failures(err error) []Notice      { return []Notice{failure(err)} }
func warnings(msg string) []Notice     { return []Notice{warning(msg)} }
func infos(title, msg string) []Notice { return []Notice{info(title, msg)} }

// Sound plays cues for timer events.
type Sound interface {
	PlayAsync(sound.Cue)
	Enabled() bool
	SetEnabled(bool)
}

// PathChooser returns the export destination for a suggested file name.
// An empty result cancels the export.
type PathChooser func(suggested string) string

// Options configures an App. Zero values select the defaults.
type Options struct {
	Durations timer.Durations
	Sound     Sound
	ExportDir string
	Format    report.Format
	Choose    PathChooser
	Now       func() time.Time
}

// State is everything a presentation layer displays.
type State struct {
	timer.Snapshot
	Label    string
	Clock    string
	Progress float64
	SoundOn  bool
	Filter   report.Filter
}

// App holds one catalog and one timer. It is not safe for concurrent use;
// a presentation layer drives it from a single goroutine.
type App struct {
	cat     *catalog.Catalog
	machine *timer.Machine
	sound   Sound
	now     func() time.Time
	choose  PathChooser
	format  report.Format
	filter  report.Filter

	pending []Notice
}

// New returns an idle App over cat.
func New(cat *catalog.Catalog, opts Options) *App {
	a := &App{
		cat:    cat,
		sound:  opts.Sound,
		now:    opts.Now,
		choose: opts.Choose,
		format: opts.Format,
		filter: report.Today,
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.sound == nil {
		a.sound = sound.New(false)
	}
	if a.format == "" {
		a.format = report.CSV
	}
	if a.choose == nil {
		dir := opts.ExportDir
		a.choose = func(suggested string) string { return filepath.Join(dir, suggested) }
	}
	d := opts.Durations
	if d == (timer.Durations{}) {
		d = timer.DefaultDurations()
	}
	a.machine = timer.New(d, cat, timer.WithClock(a.now), timer.WithNotifier(a))
	return a
}

// Notify turns timer events into notices and sound cues.
func (a *App) Notify(e timer.Event) {
	switch e.Kind {
	case timer.WorkComplete:
		a.play(sound.WorkComplete)
		a.pending = append(a.pending, info("Pomodoro Complete", "Time to take a break!"))
	case timer.BreakComplete:
		a.play(sound.BreakComplete)
		a.pending = append(a.pending, info("Break Complete", "Time to focus!"))
	case timer.BreakSkipped:
		a.play(sound.BreakSkipped)
		a.pending = append(a.pending, info("Break Skipped", "Break skipped. Ready to start next Pomodoro!"))
	case timer.SessionRecorded:
		s := e.Session
		a.pending = append(a.pending, info("Session Recorded", fmt.Sprintf(
			"Session recorded:\nProject: %s\nTask: %s\nDuration: %s",
			s.Project, s.Task, timecalc.FormatClock(int(s.DurationSeconds)))))
	}
}

func (a *App) play(c sound.Cue) {
	if a.sound.Enabled() {
		slog.Debug("playing sound", "cue", c.String())
		a.sound.PlayAsync(c)
	}
}

// flush returns the notices collected from timer events, followed by a
// notice for err if it is not nil.
func (a *App) flush(err error) []Notice {
	out := a.pending
	a.pending = nil
	if err != nil {
		out = append(out, failure(err))
	}
	return out
}

// State returns the current display state.
func (a *App) State() State {
	snap := a.machine.Snapshot()
	d := a.machine.Durations()
	total := d.Of(snap.Mode)
	var progress float64
	if total > 0 {
		progress = float64(total-snap.Remaining) / float64(total)
	}
	return State{
		Snapshot: snap,
		Label:    modeLabel(snap, d.LongBreakEvery),
		Clock:    timecalc.FormatClock(snap.Remaining),
		Progress: progress,
		SoundOn:  a.sound.Enabled(),
		Filter:   a.filter,
	}
}

func modeLabel(s timer.Snapshot, every int) string {
	if s.Mode == timer.Pomodoro {
		return fmt.Sprintf("Pomodoro Mode (%d/%d)", s.Completed%every, every)
	}
	return s.Mode.String()
}

// Projects lists the known projects.
func (a *App) Projects() []string { return a.cat.Projects() }

// Tasks lists the tasks of project.
func (a *App) Tasks(project string) []model.Task { return a.cat.TasksFor(project) }

// Start starts the countdown of the current mode.
func (a *App) Start() []Notice {
	err := a.machine.Start()
	switch {
	case errors.Is(err, timer.ErrNoProject):
		return warnings("Please select a project before starting the timer.")
	case errors.Is(err, timer.ErrNoTask):
		return warnings("Please select a task before starting the timer.")
	case errors.Is(err, timer.ErrRunning):
		return nil
	}
	return a.flush(err)
}

// Pause stops the countdown, recording the running work interval.
func (a *App) Pause() []Notice {
	err := a.machine.Pause()
	if errors.Is(err, timer.ErrNotRunning) {
		return nil
	}
	return a.flush(err)
}

// Reset refills the current mode, recording the running work interval.
func (a *App) Reset() []Notice {
	return a.flush(a.machine.Reset())
}

// SkipBreak ends a break early. Outside a break it does nothing.
func (a *App) SkipBreak() []Notice {
	err := a.machine.SkipBreak()
	if errors.Is(err, timer.ErrNotBreak) {
		return nil
	}
	return a.flush(err)
}

// Tick advances the timer by one second.
func (a *App) Tick() []Notice {
	return a.flush(a.machine.Tick())
}

// Select sets the active project and task. Either may be empty. The
// selection cannot change while the timer runs.
func (a *App) Select(project, task string) []Notice {
	snap := a.machine.Snapshot()
	if snap.Running && (snap.Project != project || snap.Task != task) {
		return warnings("Pause the timer before changing the task.")
	}
	if project != "" && !a.cat.HasProject(project) {
		return warnings("Please select or add a project first.")
	}
	if task != "" && !a.cat.HasTask(model.Task{Project: project, Name: task}) {
		return warnings(fmt.Sprintf("Unknown task '%s: %s'.", project, task))
	}
	a.machine.Select(project, task)
	slog.Debug("selection changed", "project", project, "task", task)
	return nil
}

// AddProject adds a project. Blank or known names are ignored.
func (a *App) AddProject(name string) []Notice {
	if _, err := a.cat.AddProject(name); err != nil {
		return failures(err)
	}
	return nil
}

// DeleteProject removes a project with its tasks and sessions. The caller
// must have obtained confirmation.
func (a *App) DeleteProject(name string) []Notice {
	snap := a.machine.Snapshot()
	active := snap.Project == name
	if active && snap.Running {
		return warnings("Pause the timer before deleting the active project.")
	}
	removed, err := a.cat.DeleteProject(name)
	if err != nil {
		return failures(err)
	}
	if removed && active {
		a.machine.Select("", "")
	}
	return nil
}

// AddTask adds a task under project.
func (a *App) AddTask(project, name string) []Notice {
	_, err := a.cat.AddTask(project, name)
	if errors.Is(err, catalog.ErrNoProject) {
		return warnings("Please select or add a project first.")
	}
	if err != nil {
		return failures(err)
	}
	return nil
}

// DeleteTask removes a task with its sessions. The caller must have
// obtained confirmation.
func (a *App) DeleteTask(t model.Task) []Notice {
	snap := a.machine.Snapshot()
	active := snap.Project == t.Project && snap.Task == t.Name
	if active && snap.Running {
		return warnings("Pause the timer before deleting the active task.")
	}
	removed, err := a.cat.DeleteTask(t)
	if err != nil {
		return failures(err)
	}
	if removed && active {
		a.machine.Select(t.Project, "")
	}
	return nil
}

// SetDateFilter changes the filter used by Summary.
func (a *App) SetDateFilter(f report.Filter) []Notice {
	a.filter = f
	return nil
}

// Summary returns the sessions matching the current date filter.
func (a *App) Summary() report.Summary {
	return report.Populate(a.cat.Sessions(), a.filter, a.now())
}

// ToggleSound enables or disables sound cues.
func (a *App) ToggleSound(on bool) []Notice {
	a.sound.SetEnabled(on)
	slog.Info("sound toggled", "enabled", on)
	return nil
}

// ExportDaily exports today's sessions.
func (a *App) ExportDaily() []Notice {
	from, to := report.DailyRange(a.now())
	return a.Export("daily", from, to)
}

// ExportWeekly exports the sessions since Monday.
func (a *App) ExportWeekly() []Notice {
	from, to := report.WeeklyRange(a.now())
	return a.Export("weekly", from, to)
}

// Export writes the sessions started between from and to, inclusive, to a
// file chosen through the PathChooser. kind names the report in messages.
func (a *App) Export(kind string, from, to time.Time) []Notice {
	noData := infos("No Data", fmt.Sprintf("No task sessions found for the %s report period.", kind))
	sessions := a.cat.Sessions()
	if len(report.InRange(sessions, from, to)) == 0 {
		return noData
	}

	path := a.choose(report.DefaultFilename(kind, from, a.format))
	if path == "" {
		return infos("Export", "Export cancelled.")
	}
	_, err := report.Export(path, a.format, sessions, from, to)
	if errors.Is(err, report.ErrNoData) {
		return noData
	}
	if err != nil {
		return failures(err)
	}
	return infos("Report Exported", fmt.Sprintf("The %s report has been exported to %s", kind, path))
}

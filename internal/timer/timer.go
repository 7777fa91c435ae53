// Package timer implements the Pomodoro countdown: work intervals
// alternating with short and long breaks, with focused time recorded
// as sessions against the selected project and task.
package timer

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/model"
)

// MinSessionDuration is the shortest work interval that is recorded.
const MinSessionDuration = 60 * time.Second

var (
	ErrNoProject  = errors.New("no project selected")
	ErrNoTask     = errors.New("no task selected")
	ErrRunning    = errors.New("timer already running")
	ErrNotRunning = errors.New("timer not running")
	ErrNotBreak   = errors.New("not on a break")
)

// Mode is the kind of interval being counted down.
type Mode int

const (
	Pomodoro Mode = iota
	ShortBreak
	LongBreak
)

func (m Mode) String() string {
	switch m {
	case ShortBreak:
		return "Short Break"
	case LongBreak:
		return "Long Break"
	default:
		return "Pomodoro"
	}
}

// IsBreak reports whether m is a break mode.
func (m Mode) IsBreak() bool { return m != Pomodoro }

// Durations holds the nominal length of each mode and how often a long
// break replaces a short one.
type Durations struct {
	Work           time.Duration
	ShortBreak     time.Duration
	LongBreak      time.Duration
	LongBreakEvery int
}

// DefaultDurations returns 25/5/15 minutes with a long break every 4th interval.
func DefaultDurations() Durations {
	return Durations{
		Work:           25 * time.Minute,
		ShortBreak:     5 * time.Minute,
		LongBreak:      15 * time.Minute,
		LongBreakEvery: 4,
	}
}

// Of returns the nominal duration of m in whole seconds.
func (d Durations) Of(m Mode) int {
	switch m {
	case ShortBreak:
		return int(d.ShortBreak / time.Second)
	case LongBreak:
		return int(d.LongBreak / time.Second)
	default:
		return int(d.Work / time.Second)
	}
}

// Recorder stores a finished session.
type Recorder interface {
	AppendSession(model.Session) error
}

// EventKind identifies something the presentation layer should announce.
type EventKind int

const (
	WorkComplete EventKind = iota
	BreakComplete
	BreakSkipped
	SessionRecorded
)

// Event is emitted synchronously to the Notifier.
// Session is set for SessionRecorded only.
type Event struct {
	Kind    EventKind
	Mode    Mode
	Session *model.Session
}

// Notifier receives timer events.
type Notifier interface {
	Notify(Event)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

// Snapshot is the display state of the machine.
type Snapshot struct {
	Mode      Mode
	Remaining int
	Running   bool
	Completed int
	Project   string
	Task      string
	Started   time.Time
}

// Machine is the timer state machine. It is driven by a single caller:
// commands and Tick must not be invoked concurrently.
type Machine struct {
	durations Durations
	recorder  Recorder
	notifier  Notifier
	now       func() time.Time

	mode      Mode
	remaining int
	running   bool
	completed int
	startedAt time.Time
	project   string
	task      string
}

// Option configures a Machine.
type Option func(*Machine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// WithNotifier sets the event receiver.
func WithNotifier(n Notifier) Option {
	return func(m *Machine) { m.notifier = n }
}

// New returns an idle machine in Pomodoro mode with a full countdown.
func New(d Durations, rec Recorder, opts ...Option) *Machine {
	if d.LongBreakEvery < 1 {
		d.LongBreakEvery = 1
	}
	m := &Machine{
		durations: d,
		recorder:  rec,
		now:       time.Now,
		mode:      Pomodoro,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.remaining = d.Of(Pomodoro)
	return m
}

// Select sets the active project and task. The selection is read at the
// next Start of a work interval.
func (m *Machine) Select(project, task string) {
	m.project = project
	m.task = task
}

// Snapshot returns the current display state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Mode:      m.mode,
		Remaining: m.remaining,
		Running:   m.running,
		Completed: m.completed,
		Project:   m.project,
		Task:      m.task,
		Started:   m.startedAt,
	}
}

// Durations returns the configured nominal durations.
func (m *Machine) Durations() Durations { return m.durations }

// Start begins counting down. A work interval needs a project and a task.
func (m *Machine) Start() error {
	if m.running {
		return ErrRunning
	}
	if m.mode == Pomodoro {
		if m.project == "" {
			return ErrNoProject
		}
		if m.task == "" {
			return ErrNoTask
		}
		m.startedAt = m.now()
		slog.Info("started session", "project", m.project, "task", m.task, "at", m.startedAt)
	}
	m.running = true
	return nil
}

// Tick advances the countdown by one second. When it reaches zero the
// interval completes and the machine moves to the next mode, idle.
// The returned error is a failure to persist a completed session.
func (m *Machine) Tick() error {
	if !m.running {
		return nil
	}
	if m.remaining > 0 {
		m.remaining--
	}
	if m.remaining > 0 {
		return nil
	}

	m.running = false
	finished := m.mode
	var err error
	if finished == Pomodoro {
		m.emit(Event{Kind: WorkComplete, Mode: finished})
		err = m.record()
		m.completed++
		if m.completed%m.durations.LongBreakEvery == 0 {
			m.mode = LongBreak
		} else {
			m.mode = ShortBreak
		}
	} else {
		m.emit(Event{Kind: BreakComplete, Mode: finished})
		m.mode = Pomodoro
	}
	m.remaining = m.durations.Of(m.mode)
	m.startedAt = time.Time{}
	return err
}

// Pause stops the countdown without resetting it. A running work interval
// is recorded.
func (m *Machine) Pause() error {
	if !m.running {
		return ErrNotRunning
	}
	m.running = false
	var err error
	if m.mode == Pomodoro && !m.startedAt.IsZero() {
		err = m.record()
	}
	m.startedAt = time.Time{}
	return err
}

// Reset refills the countdown of the current mode and stops. A running
// work interval is recorded first.
func (m *Machine) Reset() error {
	var err error
	if m.running && m.mode == Pomodoro && !m.startedAt.IsZero() {
		err = m.record()
	}
	m.running = false
	m.remaining = m.durations.Of(m.mode)
	m.startedAt = time.Time{}
	return err
}

// SkipBreak abandons the current break and prepares an idle work interval.
// Breaks are never recorded.
func (m *Machine) SkipBreak() error {
	if !m.mode.IsBreak() {
		return ErrNotBreak
	}
	skipped := m.mode
	slog.Info("skipping break", "mode", skipped.String())
	m.running = false
	m.mode = Pomodoro
	m.remaining = m.durations.Of(Pomodoro)
	m.startedAt = time.Time{}
	m.emit(Event{Kind: BreakSkipped, Mode: skipped})
	return nil
}

// record stores the in-progress work interval if it is long enough and
// clears the start time. Calling it again without a new Start is a no-op.
func (m *Machine) record() error {
	start := m.startedAt
	m.startedAt = time.Time{}
	if start.IsZero() || m.task == "" || m.project == "" {
		return nil
	}

	end := m.now()
	elapsed := end.Sub(start)
	if elapsed < MinSessionDuration {
		slog.Info("discarding short session", "project", m.project, "task", m.task, "seconds", elapsed.Seconds())
		return nil
	}

	task := model.Task{Project: m.project, Name: m.task}
	s := model.Session{
		ID:              uuid.NewString(),
		StartTime:       model.At(start),
		EndTime:         model.At(end),
		Project:         task.Project,
		Task:            task.Name,
		TaskKey:         task.Key(),
		DurationSeconds: elapsed.Seconds(),
	}
	if m.recorder != nil {
		if err := m.recorder.AppendSession(s); err != nil {
			return fmt.Errorf("recording session: %w", err)
		}
	}
	slog.Info("recorded session", "project", s.Project, "task", s.Task, "seconds", s.DurationSeconds)
	m.emit(Event{Kind: SessionRecorded, Mode: Pomodoro, Session: &s})
	return nil
}

func (m *Machine) emit(e Event) {
	if m.notifier != nil {
		m.notifier.Notify(e)
	}
}

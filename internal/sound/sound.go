// Package sound plays short tone patterns for timer events.
package sound

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gen2brain/beeep"
)

// Cue names a tone pattern.
type Cue int

const (
	WorkComplete Cue = iota
	BreakComplete
	BreakSkipped
)

func (c Cue) String() string {
	switch c {
	case WorkComplete:
		return "work complete"
	case BreakComplete:
		return "break complete"
	case BreakSkipped:
		return "break skipped"
	}
	return "unknown"
}

// Tone is one beep followed by a pause.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Gap      time.Duration
}

// Patterns maps each cue to its tones.
var Patterns = map[Cue][]Tone{
	WorkComplete: {
		{Freq: 1000, Duration: 500 * time.Millisecond, Gap: 200 * time.Millisecond},
		{Freq: 1000, Duration: 500 * time.Millisecond, Gap: 200 * time.Millisecond},
		{Freq: 1000, Duration: 500 * time.Millisecond},
	},
	BreakComplete: {
		{Freq: 800, Duration: 800 * time.Millisecond, Gap: 300 * time.Millisecond},
		{Freq: 800, Duration: 800 * time.Millisecond},
	},
	BreakSkipped: {
		{Freq: 700, Duration: 300 * time.Millisecond, Gap: 100 * time.Millisecond},
		{Freq: 900, Duration: 300 * time.Millisecond},
	},
}

// Player plays cues when enabled. Failures are logged and swallowed; a
// missing audio device never interrupts the timer.
type Player struct {
	enabled atomic.Bool
	beep    func(freq float64, ms int) error
	sleep   func(time.Duration)
}

// Option configures a Player.
type Option func(*Player)

// WithBeeper replaces the system beeper.
func WithBeeper(beep func(freq float64, ms int) error) Option {
	return func(p *Player) { p.beep = beep }
}

// WithSleep replaces time.Sleep between tones.
func WithSleep(sleep func(time.Duration)) Option {
	return func(p *Player) { p.sleep = sleep }
}

// New returns a player using the system beeper.
func New(enabled bool, opts ...Option) *Player {
	p := &Player{beep: beeep.Beep, sleep: time.Sleep}
	p.enabled.Store(enabled)
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Enabled reports whether cues are audible.
func (p *Player) Enabled() bool { return p.enabled.Load() }

// SetEnabled turns cues on or off.
func (p *Player) SetEnabled(on bool) { p.enabled.Store(on) }

// Play blocks until the pattern for c has finished. It does nothing when
// disabled.
func (p *Player) Play(c Cue) {
	if !p.Enabled() {
		return
	}
	for _, t := range Patterns[c] {
		if err := p.beep(t.Freq, int(t.Duration/time.Millisecond)); err != nil {
			slog.Warn("sound playback failed", "cue", c.String(), "err", err)
			return
		}
		if t.Gap > 0 {
			p.sleep(t.Gap)
		}
	}
}

// PlayAsync plays c on its own goroutine.
func (p *Player) PlayAsync(c Cue) {
	if !p.Enabled() {
		return
	}
	go p.Play(c)
}

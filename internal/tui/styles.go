package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/app"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/timer"
)

// Mode colours.
var (
	ColorPomodoro   = lipgloss.Color("#ff6347")
	ColorShortBreak = lipgloss.Color("#4682B4")
	ColorLongBreak  = lipgloss.Color("#6A5ACD")

	ColorMuted   = lipgloss.Color("#828997")
	ColorBorder  = lipgloss.Color("#3F4451")
	ColorWarning = lipgloss.Color("#E5C07B")
	ColorError   = lipgloss.Color("#E06C75")
	ColorInfo    = lipgloss.Color("#98C379")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			PaddingLeft(1)

	ClockStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder())

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	HeaderRowStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)
)

// modeColor returns the accent colour of m.
func modeColor(m timer.Mode) lipgloss.Color {
	switch m {
	case timer.ShortBreak:
		return ColorShortBreak
	case timer.LongBreak:
		return ColorLongBreak
	}
	return ColorPomodoro
}

func noticeStyle(l app.Level) lipgloss.Style {
	c := ColorInfo
	switch l {
	case app.Warning:
		c = ColorWarning
	case app.Error:
		c = ColorError
	}
	return lipgloss.NewStyle().Foreground(c)
}

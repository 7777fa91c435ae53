// Package tui is the interactive terminal front end of the timer.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/app"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/model"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/timecalc"
)

// maxRows caps the session list.
const maxRows = 10

const barWidth = 30

// tickMsg carries the generation of the tick loop that produced it, so a
// tick scheduled before a pause is dropped after a later restart.
type tickMsg struct{ gen int }

// Model is the bubbletea model of the timer screen.
type Model struct {
	app     *app.App
	keys    KeyMap
	help    help.Model
	gen     int
	notices []app.Notice
}

// New returns a model driving a.
func New(a *app.App) Model {
	return Model{app: a, keys: DefaultKeyMap(), help: help.New()}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if msg.gen != m.gen || !m.app.State().Running {
			return m, nil
		}
		if n := m.app.Tick(); len(n) > 0 {
			m.notices = n
		}
		if m.app.State().Running {
			return m, m.tick()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	wasRunning := m.app.State().Running
	var notices []app.Notice

	switch {
	case key.Matches(msg, m.keys.Quit):
		if wasRunning {
			m.app.Pause()
		}
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Start):
		notices = m.app.Start()
	case key.Matches(msg, m.keys.Pause):
		notices = m.app.Pause()
	case key.Matches(msg, m.keys.Reset):
		notices = m.app.Reset()
	case key.Matches(msg, m.keys.Skip):
		notices = m.app.SkipBreak()
	case key.Matches(msg, m.keys.Task):
		notices = m.nextTask()
	case key.Matches(msg, m.keys.Filter):
		notices = m.app.SetDateFilter(m.app.State().Filter.Next())
	case key.Matches(msg, m.keys.Daily):
		notices = m.app.ExportDaily()
	case key.Matches(msg, m.keys.Weekly):
		notices = m.app.ExportWeekly()
	case key.Matches(msg, m.keys.Sound):
		notices = m.app.ToggleSound(!m.app.State().SoundOn)
	default:
		return m, nil
	}
	m.notices = notices

	running := m.app.State().Running
	switch {
	case running && !wasRunning:
		m.gen++
		return m, m.tick()
	case !running && wasRunning:
		m.gen++
	}
	return m, nil
}

// nextTask selects the task after the current one, across all projects.
func (m Model) nextTask() []app.Notice {
	var all []model.Task
	for _, p := range m.app.Projects() {
		all = append(all, m.app.Tasks(p)...)
	}
	if len(all) == 0 {
		return []app.Notice{{Level: app.Warning, Title: "Warning", Message: "Please select or add a project first."}}
	}
	st := m.app.State()
	current := model.Task{Project: st.Project, Name: st.Task}
	next := 0
	for i, t := range all {
		if t == current {
			next = (i + 1) % len(all)
			break
		}
	}
	return m.app.Select(all[next].Project, all[next].Name)
}

// View implements tea.Model.
func (m Model) View() string {
	st := m.app.State()
	accent := modeColor(st.Mode)
	var b strings.Builder

	b.WriteString(TitleStyle.Foreground(accent).Render("Pomodoro Timer"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(accent).Bold(true).Render(st.Label))
	b.WriteString("\n")
	b.WriteString(ClockStyle.BorderForeground(accent).Foreground(accent).Render(st.Clock))
	b.WriteString("\n")
	b.WriteString(progressBar(st.Progress, accent))
	b.WriteString("\n\n")

	selection := "none"
	if st.Project != "" {
		selection = st.Project
		if st.Task != "" {
			selection = model.Task{Project: st.Project, Name: st.Task}.Key()
		}
	}
	status := "paused"
	if st.Running {
		status = "running"
	}
	sound := "off"
	if st.SoundOn {
		sound = "on"
	}
	fmt.Fprintf(&b, "%s %s   %s %s   %s %s\n",
		LabelStyle.Render("Task:"), selection,
		LabelStyle.Render("Timer:"), status,
		LabelStyle.Render("Sound:"), sound)

	b.WriteString(PanelStyle.Render(m.sessionsView()))
	b.WriteString("\n")

	for _, n := range m.notices {
		b.WriteString(noticeStyle(n.Level).Render(n.Title + ": " + strings.ReplaceAll(n.Message, "\n", " | ")))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) sessionsView() string {
	sum := m.app.Summary()
	var b strings.Builder
	fmt.Fprintf(&b, "Sessions: %s\n", sum.Filter)
	b.WriteString(HeaderRowStyle.Render(fmt.Sprintf("%-10s %-5s %-16s %-20s %s", "Date", "Time", "Project", "Task", "Duration")))
	b.WriteString("\n")
	for i, s := range sum.Sessions {
		if i == maxRows {
			fmt.Fprintf(&b, "... %d more\n", len(sum.Sessions)-maxRows)
			break
		}
		fmt.Fprintf(&b, "%-10s %-5s %-16s %-20s %s\n",
			s.Start().Format("2006-01-02"),
			s.Start().Format("15:04"),
			truncate(s.Project, 16),
			truncate(s.Task, 20),
			timecalc.FormatClock(int(s.DurationSeconds)))
	}
	fmt.Fprintf(&b, "Total Time: %s  Sessions: %d", sum.TotalText(), sum.Count)
	return b.String()
}

func progressBar(p float64, c lipgloss.Color) string {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	filled := int(p * barWidth)
	return lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("█", filled)) +
		LabelStyle.Render(strings.Repeat("░", barWidth-filled))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run starts the interactive program and blocks until the user quits.
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the timer screen.
type KeyMap struct {
	Start  key.Binding
	Pause  key.Binding
	Reset  key.Binding
	Skip   key.Binding
	Task   key.Binding
	Filter key.Binding
	Daily  key.Binding
	Weekly key.Binding
	Sound  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Start: key.NewBinding(
			key.WithKeys("s", " "),
			key.WithHelp("s", "start"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Skip: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "skip break"),
		),
		Task: key.NewBinding(
			key.WithKeys("t", "tab"),
			key.WithHelp("t", "next task"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "date filter"),
		),
		Daily: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export daily"),
		),
		Weekly: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "export weekly"),
		),
		Sound: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "sound on/off"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Pause, k.Reset, k.Task, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped by column.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Start, k.Pause, k.Reset, k.Skip},
		{k.Task, k.Filter, k.Sound},
		{k.Daily, k.Weekly, k.Help, k.Quit},
	}
}

package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings of the player.
type keyMap struct {
	ScrollLeft  key.Binding
	ScrollRight key.Binding
	Prev        key.Binding
	Next        key.Binding
	PlayPause   key.Binding
	Contents    key.Binding
	Up          key.Binding
	Down        key.Binding
	Open        key.Binding
	Credits     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ScrollLeft: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "scroll left"),
		),
		ScrollRight: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "scroll right"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "pgup"),
			key.WithHelp("p", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "pgdown"),
			key.WithHelp("n", "next"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Contents: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "contents"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open entry"),
		),
		Credits: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "credits"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.PlayPause, k.Contents, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.ScrollLeft, k.ScrollRight},
		{k.PlayPause, k.Contents, k.Credits},
		{k.Up, k.Down, k.Open},
		{k.Help, k.Quit},
	}
}

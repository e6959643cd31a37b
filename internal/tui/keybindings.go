package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the model reacts to.
type KeyMap struct {
	Quit     key.Binding
	Focus    key.Binding
	Select   key.Binding
	Activate key.Binding
	Next     key.Binding
	Prev     key.Binding
	Reload   key.Binding
	Dismiss  key.Binding
	Help     key.Binding

	// Notification history modal.
	History      key.Binding
	HistoryUp    key.Binding
	HistoryDown  key.Binding
	HistoryClear key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch pane"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show posts"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "toggle comments"),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "J"),
			key.WithHelp("n", "next post"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "K"),
			key.WithHelp("p", "prev post"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss toast"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		History: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "notifications"),
		),
		HistoryUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "scroll up"),
		),
		HistoryDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "scroll down"),
		),
		HistoryClear: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "clear all"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Activate, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.Select, k.Reload},
		{k.Activate, k.Next, k.Prev},
		{k.Dismiss, k.History, k.Help, k.Quit},
	}
}

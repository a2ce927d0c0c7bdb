package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the picker's key bindings on top of the list's own.
type KeyMap struct {
	Launch key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default picker key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Launch: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back to editors"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the list's help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Launch, k.Quit}
}

// FullHelp returns the full help bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Launch, k.Back, k.Quit}}
}

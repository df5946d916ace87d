package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the viewer keybindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Sort   key.Binding
	Verify key.Binding
	Fit    key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Verify: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "verify"),
		),
		Fit: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fit preview"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// FooterBindings returns the hints shown in the footer. The fit binding
// only appears when a slot manifest was given.
func FooterBindings(km KeyMap, fit bool) []key.Binding {
	b := []key.Binding{km.Up, km.Down, km.Sort, km.Verify}
	if fit {
		b = append(b, km.Fit)
	}
	return append(b, km.Reload, km.Quit)
}

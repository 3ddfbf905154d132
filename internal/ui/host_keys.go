package ui

import "charm.land/bubbles/v2/key"

type hostKeys struct {
	Open      key.Binding
	Refresh   key.Binding
	Dismiss   key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func newHostKeys() hostKeys {
	return hostKeys{
		Open:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "assign contact")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Dismiss:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k hostKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Refresh, k.Dismiss, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k hostKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

package ui

import tea "charm.land/bubbletea/v2"

// Maker creates child models on demand. The root uses it to build a fresh
// modal every time one is opened.
type Maker interface {
	// Make creates a child for the record identified by id, sized to the
	// available width and height.
	Make(id string, width, height int) (ChildModel, tea.Cmd)
}

// MakerFunc adapts a plain function to the Maker interface.
type MakerFunc func(id string, width, height int) (ChildModel, tea.Cmd)

// Make implements Maker.
func (f MakerFunc) Make(id string, width, height int) (ChildModel, tea.Cmd) {
	return f(id, width, height)
}

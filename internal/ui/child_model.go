package ui

import tea "charm.land/bubbletea/v2"

// ChildModel is a component hosted by the RootModel. The root routes
// messages to it and composes its view.
type ChildModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (ChildModel, tea.Cmd)
	View() string
}

// ModelWithID is implemented by children that expose an identifier for
// logging.
type ModelWithID interface {
	ID() string
}

// ModelWithTitle is implemented by children that provide a header title.
type ModelWithTitle interface {
	Title() string
}

// ModelWithSize is implemented by children that respond to resizes.
type ModelWithSize interface {
	SetSize(width, height int)
}

// ModelWithTeardown is implemented by children that own timers, contexts or
// other resources. The root calls Teardown exactly once when it discards
// the child; afterwards the child must ignore any late messages.
type ModelWithTeardown interface {
	Teardown()
}

package picker

import (
	"charm.land/bubbles/v2/key"

	"github.com/oakwood-commons/contactpicker/internal/contacts"
)

type keyMap struct {
	NextFocus key.Binding
	PrevFocus key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Choose    key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	Assign    key.Binding
	AssignAlt key.Binding
	Copy      key.Binding
	Cancel    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		NextFocus: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevFocus: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev option")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
		Up:        key.NewBinding(key.WithKeys("up")),
		Down:      key.NewBinding(key.WithKeys("down")),
		Choose:    key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "choose")),
		PrevPage:  key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "prev page")),
		NextPage:  key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "next page")),
		Assign:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "assign")),
		AssignAlt: key.NewBinding(key.WithKeys("a")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy email")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// shortHelp lists the bindings relevant to the focused zone.
func (m *Model) shortHelp() []key.Binding {
	k := m.keys
	k.PrevPage.SetEnabled(!m.page.IsFirst())
	k.NextPage.SetEnabled(!m.page.IsLast())
	k.Assign.SetEnabled(m.CanAssign())
	switch m.focus {
	case focusMode:
		return []key.Binding{k.NextFocus, k.Left, k.Right, k.Cancel}
	case focusResults:
		return []key.Binding{k.Choose, k.Copy, k.PrevPage, k.NextPage, k.Assign, k.Cancel}
	case focusCriteria:
		if m.mode != contacts.ModeName {
			return []key.Binding{k.NextFocus, k.Left, k.Right, k.Choose, k.Assign, k.Cancel}
		}
	}
	return []key.Binding{k.NextFocus, k.PrevPage, k.NextPage, k.Assign, k.Cancel}
}

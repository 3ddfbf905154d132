package picker

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/contactpicker/internal/contacts"
	"github.com/oakwood-commons/contactpicker/internal/ui"
)

// rows taken by everything except the result grid
const (
	chromeRows        = 12
	compactExtraRows  = 4
	minTableRows      = 3
	frameHorizontal   = 4
	minInnerWidth     = 24
	nameInputMaxWidth = 40
)

func (m *Model) innerWidth() int {
	w := m.width - frameHorizontal
	if w < minInnerWidth {
		w = minInnerWidth
	}
	return w
}

func (m *Model) layout() {
	inner := m.innerWidth()
	m.nameInput.SetWidth(min(nameInputMaxWidth, inner-12))

	h := m.height - chromeRows
	if m.Compact() {
		h -= compactExtraRows
	}
	if h < minTableRows {
		h = minTableRows
	}
	m.table.SetSize(inner, h)
}

// View implements ui.ChildModel.
func (m *Model) View() string {
	th := ui.CurrentTheme()
	sections := []string{
		th.Title().Render(m.Title()),
		m.viewModes(th),
		m.viewCriteria(th),
		m.viewStatus(th),
		m.table.View(),
		m.viewPaging(th),
		m.viewSelection(th),
		m.help.ShortHelpView(m.shortHelp()),
	}
	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return th.Frame().Width(m.innerWidth() + frameHorizontal - 2).Render(body)
}

func (m *Model) zoneStyle(th ui.Theme, z focusZone) lipgloss.Style {
	if m.focus == z {
		return th.Title()
	}
	return th.Hint()
}

func (m *Model) viewModes(th ui.Theme) string {
	label := m.zoneStyle(th, focusMode).Render("Search by:")
	if m.Compact() {
		return label + "\n  ‹ " + m.mode.Label() + " ›"
	}
	parts := make([]string, 0, len(contacts.Modes))
	for _, mode := range contacts.Modes {
		mark := "( )"
		style := th.Fg(th.Text)
		if mode == m.mode {
			mark = "(•)"
			style = th.Fg(th.Accent).Bold(true)
		}
		parts = append(parts, style.Render(mark+" "+mode.Label()))
	}
	return label + " " + strings.Join(parts, "  ")
}

func (m *Model) viewCriteria(th ui.Theme) string {
	labelStyle := m.zoneStyle(th, focusCriteria)
	var label, control string
	switch m.mode {
	case contacts.ModeName:
		label, control = "Name:", m.nameInput.View()
	case contacts.ModeState:
		opt := contacts.StateOptions[m.stateIdx]
		label = "State:"
		control = fmt.Sprintf("◀ %s %s ▶", opt.Value, opt.Label)
		if m.crit.StateCode != "" {
			control += th.Hint().Render("  searching " + m.crit.StateCode)
		}
	case contacts.ModeDistance:
		opts := contacts.DistanceOptions()
		label = "Distance:"
		control = "◀ " + opts[m.distanceIdx].Label + " ▶"
		if m.crit.CustomRadius {
			custom := m.zoneStyle(th, focusCustomRadius).Render("Miles:") + " " + m.radiusInput.View()
			if m.Compact() {
				control += "\n" + custom
			} else {
				control += "  " + custom
			}
		}
	}
	if m.Compact() {
		return labelStyle.Render(label) + "\n" + control
	}
	return labelStyle.Render(label) + " " + control
}

func (m *Model) viewStatus(th ui.Theme) string {
	switch {
	case m.busy:
		return th.Fg(th.Info).Render("Assigning contact…")
	case m.loading:
		return th.Fg(th.Info).Render("Loading contacts…")
	case m.errorMsg != "":
		return th.Fg(th.Error).Render(m.errorMsg)
	default:
		return ""
	}
}

func (m *Model) viewPaging(th ui.Theme) string {
	records, number, pages := m.DisplayTotals()
	prev, next := th.Fg(th.Text), th.Fg(th.Text)
	if m.page.IsFirst() {
		prev = th.Hint()
	}
	if m.page.IsLast() {
		next = th.Hint()
	}
	summary := fmt.Sprintf("Page %d of %d · %d contacts", number, pages, records)
	nav := prev.Render("‹ prev") + "  " + next.Render("next ›")
	if m.Compact() {
		return summary + "\n" + nav
	}
	return summary + "   " + nav
}

func (m *Model) viewSelection(th ui.Theme) string {
	selected := th.Hint().Render("No contact selected")
	if m.selectedID != "" {
		selected = "Selected: " + th.Fg(th.Accent).Render(m.selectedName)
	}
	action := th.Hint().Render("[ Assign ]")
	if m.CanAssign() {
		action = th.Focused().Render("[ Assign ]")
	}
	if m.Compact() {
		return selected + "\n" + action
	}
	return selected + "   " + action
}

package picker

import (
	"strings"
	"unicode"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/contactpicker/internal/contacts"
	"github.com/oakwood-commons/contactpicker/internal/debounce"
	"github.com/oakwood-commons/contactpicker/internal/ui"
)

var _ ui.ChildModel = (*Model)(nil)

// Update implements ui.ChildModel. A torn down picker ignores everything.
func (m *Model) Update(msg tea.Msg) (ui.ChildModel, tea.Cmd) {
	if m.torn {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case pageLoadedMsg:
		return m, m.applyPage(msg)
	case assignDoneMsg:
		return m, m.applyAssign(msg)
	case debounce.FireMsg:
		return m, m.handleFire(msg)
	case tea.KeyPressMsg:
		return m, m.handleKey(msg)
	}

	// cursor blink and other widget-internal messages
	var cmd tea.Cmd
	switch m.focus {
	case focusCriteria:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case focusCustomRadius:
		m.radiusInput, cmd = m.radiusInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleFire(msg debounce.FireMsg) tea.Cmd {
	switch {
	case m.nameTimer.Fire(msg), m.radiusTimer.Fire(msg):
		m.log.V(1).Info("debounced search", "timer", msg.ID)
		m.page.Number = 1
		return m.LoadPage()
	case m.closeTimer.Fire(msg):
		return ui.Emit(ui.CloseModalMsg{})
	case m.reloadTimer.Fire(msg):
		return ui.Emit(ui.ReloadMsg{})
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.busy {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		return ui.Emit(ui.CloseModalMsg{Cancelled: true})
	case key.Matches(msg, m.keys.NextFocus):
		m.cycleFocus(1)
		return nil
	case key.Matches(msg, m.keys.PrevFocus):
		m.cycleFocus(-1)
		return nil
	case key.Matches(msg, m.keys.Assign):
		return m.Assign()
	case key.Matches(msg, m.keys.PrevPage):
		return m.HandlePrev()
	case key.Matches(msg, m.keys.NextPage):
		return m.HandleNext()
	}

	switch m.focus {
	case focusMode:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.SetSearchMode(m.mode.Prev())
		case key.Matches(msg, m.keys.Right):
			m.SetSearchMode(m.mode.Next())
		}
		return nil
	case focusCriteria:
		return m.criteriaKey(msg)
	case focusCustomRadius:
		before := m.radiusInput.Value()
		var cmd tea.Cmd
		m.radiusInput, cmd = m.radiusInput.Update(msg)
		if v := m.radiusInput.Value(); v != before {
			return tea.Batch(cmd, m.RadiusChanged(v))
		}
		return cmd
	case focusResults:
		return m.resultsKey(msg)
	}
	return nil
}

func (m *Model) criteriaKey(msg tea.KeyPressMsg) tea.Cmd {
	switch m.mode {
	case contacts.ModeName:
		before := m.nameInput.Value()
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		if v := m.nameInput.Value(); v != before {
			return tea.Batch(cmd, m.NameChanged(v))
		}
		return cmd
	case contacts.ModeState:
		opts := contacts.StateOptions
		switch {
		case key.Matches(msg, m.keys.Left, m.keys.Up):
			m.stateIdx = wrap(m.stateIdx-1, len(opts))
		case key.Matches(msg, m.keys.Right, m.keys.Down):
			m.stateIdx = wrap(m.stateIdx+1, len(opts))
		case key.Matches(msg, m.keys.Choose):
			return m.SelectState(opts[m.stateIdx].Value)
		default:
			m.stateIdx = jumpTo(opts, m.stateIdx, msg.Text)
		}
	case contacts.ModeDistance:
		opts := contacts.DistanceOptions()
		switch {
		case key.Matches(msg, m.keys.Left, m.keys.Up):
			m.distanceIdx = wrap(m.distanceIdx-1, len(opts))
		case key.Matches(msg, m.keys.Right, m.keys.Down):
			m.distanceIdx = wrap(m.distanceIdx+1, len(opts))
		case key.Matches(msg, m.keys.Choose):
			return m.SelectDistance(opts[m.distanceIdx].Value)
		}
	}
	return nil
}

func (m *Model) resultsKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Choose):
		if r := m.table.SelectedRow(); r != nil {
			m.SelectRow(r.ID)
		}
		return nil
	case key.Matches(msg, m.keys.AssignAlt):
		return m.Assign()
	case key.Matches(msg, m.keys.Copy):
		return m.copyEmail()
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

func (m *Model) copyEmail() tea.Cmd {
	r := m.table.SelectedRow()
	if r == nil || strings.TrimSpace(r.Email) == "" {
		return m.toast(ui.ToastWarning, "Warning", "No email to copy")
	}
	email, duration := r.Email, m.cfg.ToastDuration()
	return func() tea.Msg {
		t := ui.ToastMsg{Mode: ui.ToastModeDismissable, Duration: duration}
		if err := ui.CopyToClipboard(email); err != nil {
			t.Title, t.Variant, t.Message = "Error", ui.ToastError, "Copy failed: "+err.Error()
			return t
		}
		t.Title, t.Variant, t.Message = "Copied", ui.ToastInfo, email+" copied to clipboard"
		return t
	}
}

// zones returns the focusable zones for the current mode in tab order.
func (m *Model) zones() []focusZone {
	z := []focusZone{focusMode, focusCriteria}
	if m.mode == contacts.ModeDistance && m.crit.CustomRadius {
		z = append(z, focusCustomRadius)
	}
	return append(z, focusResults)
}

func (m *Model) cycleFocus(step int) {
	zones := m.zones()
	idx := 0
	for i, z := range zones {
		if z == m.focus {
			idx = i
		}
	}
	m.setFocus(zones[wrap(idx+step, len(zones))])
}

func (m *Model) setFocus(z focusZone) {
	m.focus = z
	m.nameInput.Blur()
	m.radiusInput.Blur()
	m.table.Blur()
	switch {
	case z == focusCriteria && m.mode == contacts.ModeName:
		m.nameInput.Focus()
	case z == focusCustomRadius:
		m.radiusInput.Focus()
	case z == focusResults:
		m.table.Focus()
	}
}

func wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}

// jumpTo moves to the next option after cur whose value starts with the
// typed letter.
func jumpTo(opts []contacts.Option, cur int, text string) int {
	r := []rune(text)
	if len(r) != 1 || !unicode.IsLetter(r[0]) {
		return cur
	}
	prefix := strings.ToUpper(text)
	for i := 1; i <= len(opts); i++ {
		j := (cur + i) % len(opts)
		if strings.HasPrefix(opts[j].Value, prefix) {
			return j
		}
	}
	return cur
}

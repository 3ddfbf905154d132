package picker

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/contactpicker/internal/contacts"
	"github.com/oakwood-commons/contactpicker/internal/search"
)

// pageLoadedMsg carries a completed page request back to its picker.
type pageLoadedMsg struct {
	owner string
	gen   uint64
	req   search.Request
	res   search.Result
}

// SetSearchMode switches the active mode. Selection, rows, totals and the
// criteria of every mode are cleared; nothing is fetched.
func (m *Model) SetSearchMode(mode contacts.SearchMode) {
	m.nameTimer.Cancel()
	m.radiusTimer.Cancel()
	m.mode = mode
	m.crit = search.Criteria{}
	m.selectedID = ""
	m.selectedName = ""
	m.nameInput.SetValue("")
	m.radiusInput.SetValue("")
	m.stateIdx = 0
	m.distanceIdx = 0
	m.resetResults("")
	m.table.SetRowFunc(rowCells(mode))
	m.table.SetColumns(tableColumns(mode))
	if m.focus == focusCustomRadius {
		m.focus = focusCriteria
	}
	m.setFocus(m.focus)
	m.layout()
	m.log.V(1).Info("search mode changed", "mode", mode.String())
}

// resetResults empties the result state and sets msg as the status. Any
// request still in flight becomes stale.
func (m *Model) resetResults(msg string) {
	m.fetchGen++
	m.loading = false
	m.rows = []contacts.Row{}
	m.page.Reset()
	m.errorMsg = msg
	m.table.SetRows(m.rows)
}

// criteriaEdited marks every request in flight as stale and drops the
// selection, which belonged to the previous criteria.
func (m *Model) criteriaEdited() {
	m.fetchGen++
	m.loading = false
	m.selectedID = ""
	m.selectedName = ""
}

// NameChanged records typed name text and debounces the search. Clearing
// the field resets the results at once.
func (m *Model) NameChanged(value string) tea.Cmd {
	if value != m.crit.Name {
		m.criteriaEdited()
	}
	m.crit.Name = value
	m.nameTimer.Cancel()
	if strings.TrimSpace(value) == "" {
		m.resetResults("")
		return nil
	}
	return m.nameTimer.Schedule()
}

// RadiusChanged records typed custom radius text and debounces the search.
// Empty input resets the results; invalid input resets them and reports
// the problem.
func (m *Model) RadiusChanged(value string) tea.Cmd {
	if value != m.crit.Radius {
		m.criteriaEdited()
	}
	m.crit.Radius = value
	m.radiusTimer.Cancel()
	if strings.TrimSpace(value) == "" {
		m.resetResults("")
		return nil
	}
	if _, ok := search.ParseRadius(value); !ok {
		m.resetResults(search.MsgInvalidDistance)
		return nil
	}
	return m.radiusTimer.Schedule()
}

// SelectState picks a billing state and searches immediately.
func (m *Model) SelectState(code string) tea.Cmd {
	if code != m.crit.StateCode {
		m.criteriaEdited()
	}
	m.crit.StateCode = code
	m.page.Number = 1
	return m.LoadPage()
}

// SelectDistance picks a preset radius and searches immediately. The custom
// entry reveals the free-form input and fetches nothing.
func (m *Model) SelectDistance(value string) tea.Cmd {
	m.radiusTimer.Cancel()
	if value != m.crit.Radius || (value == contacts.CustomDistance) != m.crit.CustomRadius {
		m.criteriaEdited()
	}
	if value == contacts.CustomDistance {
		m.crit.CustomRadius = true
		m.crit.Radius = ""
		m.radiusInput.SetValue("")
		m.resetResults("")
		m.setFocus(focusCustomRadius)
		return nil
	}
	m.crit.CustomRadius = false
	m.crit.Radius = value
	if m.focus == focusCustomRadius {
		m.setFocus(focusCriteria)
	}
	m.page.Number = 1
	return m.LoadPage()
}

// SelectRow marks the row with id as the contact to assign. Unknown ids
// are ignored.
func (m *Model) SelectRow(id string) {
	for _, r := range m.rows {
		if r.ID == id {
			m.selectedID = r.ID
			m.selectedName = r.Name
			return
		}
	}
}

// LoadPage validates the criteria of the active mode and requests the
// current page together with the total count. Invalid criteria reset the
// results and set the validation message without any remote call.
func (m *Model) LoadPage() tea.Cmd {
	if err := search.Validate(m.mode, m.crit, m.caseID); err != nil {
		m.resetResults(err.Error())
		return nil
	}
	m.fetchGen++
	m.loading = true
	req := search.Request{
		Mode:       m.mode,
		Criteria:   m.crit,
		CaseID:     m.caseID,
		PageNumber: m.page.Number,
		PageSize:   m.page.Size,
	}
	owner, gen := m.id, m.fetchGen
	ctx, svc := m.ctx, m.svc
	m.log.V(1).Info("loading page", "mode", req.Mode.String(), "page", req.PageNumber, "gen", gen)
	return func() tea.Msg {
		return pageLoadedMsg{owner: owner, gen: gen, req: req, res: search.Fetch(ctx, svc, req)}
	}
}

// applyPage installs a completed page. Results of superseded requests, or
// of requests whose criteria have since been edited, are dropped. When the count shrank below the current page the page number is
// pulled back and reloaded.
func (m *Model) applyPage(msg pageLoadedMsg) tea.Cmd {
	if msg.owner != m.id || msg.gen != m.fetchGen || msg.req.Mode != m.mode || msg.req.Criteria != m.crit {
		m.log.V(1).Info("discarding stale page", "gen", msg.gen, "current", m.fetchGen)
		return nil
	}
	m.loading = false
	m.rows = msg.res.Rows
	m.page.SetTotal(msg.res.Total)
	m.errorMsg = search.Message(msg.req.Mode, msg.req.Criteria, msg.res)
	if msg.res.RowsErr != nil {
		m.log.Error(msg.res.RowsErr, "loading contacts failed")
	}
	if msg.res.CountErr != nil {
		m.log.Error(msg.res.CountErr, "loading contact count failed")
	}
	m.table.SetRows(m.rows)
	if i := m.table.IndexOf(m.selectedID); i >= 0 {
		m.table.SetCursor(i)
	} else {
		m.table.SetCursor(0)
	}
	if msg.res.CountErr == nil && m.page.Clamp() {
		return m.LoadPage()
	}
	return nil
}

// HandlePrev loads the previous page. No-op on the first page.
func (m *Model) HandlePrev() tea.Cmd {
	if !m.page.Prev() {
		return nil
	}
	return m.LoadPage()
}

// HandleNext loads the next page. No-op on the last page.
func (m *Model) HandleNext() tea.Cmd {
	if !m.page.Next() {
		return nil
	}
	return m.LoadPage()
}

package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/contactpicker/internal/contacts"
	"github.com/oakwood-commons/contactpicker/internal/directory"
)

// Mode controls where the root routes key presses.
type Mode int

const (
	// NormalMode shows the case page.
	NormalMode Mode = iota
	// ModalMode shows the modal on top of the case page.
	ModalMode
)

// caseLoadedMsg carries the result of a case read.
type caseLoadedMsg struct {
	gen uint64
	rec contacts.Case
	err error
}

// toastExpiredMsg hides the toast with the matching sequence number.
type toastExpiredMsg struct {
	seq uint64
}

// HostOptions configures a RootModel.
type HostOptions struct {
	Service       directory.Service
	CaseID        string
	Maker         Maker
	Logger        logr.Logger
	ToastDuration time.Duration
}

// RootModel is the case page. It shows the case record, opens the modal
// built by its Maker and acts on the signals the modal emits.
//
// A modal that closes itself after finishing its work is hidden but kept
// alive until it asks for a reload, so its remaining timers still reach it.
// A cancelled modal is torn down at once.
type RootModel struct {
	mode Mode

	svc           directory.Service
	caseID        string
	maker         Maker
	log           logr.Logger
	toastDuration time.Duration

	rec         *contacts.Case
	caseErr     string
	loadingCase bool
	caseGen     uint64
	reloads     int

	modal   ChildModel
	closing ChildModel

	toast    *ToastMsg
	toastSeq uint64

	keys   hostKeys
	help   help.Model
	width  int
	height int

	quitting bool
}

// NewRootModel creates the case page for opts.CaseID.
func NewRootModel(opts HostOptions) *RootModel {
	d := opts.ToastDuration
	if d <= 0 {
		d = DefaultToastDuration
	}
	return &RootModel{
		mode:          NormalMode,
		svc:           opts.Service,
		caseID:        strings.TrimSpace(opts.CaseID),
		maker:         opts.Maker,
		log:           opts.Logger,
		toastDuration: d,
		keys:          newHostKeys(),
		help:          help.New(),
		width:         DefaultWidth,
		height:        DefaultHeight,
	}
}

// Init loads the case.
func (m *RootModel) Init() tea.Cmd {
	return m.loadCase()
}

// Mode returns the routing mode.
func (m *RootModel) Mode() Mode { return m.mode }

// Modal returns the visible modal, or nil.
func (m *RootModel) Modal() ChildModel { return m.modal }

// Case returns the loaded case, or nil.
func (m *RootModel) Case() *contacts.Case { return m.rec }

// Toast returns the visible toast, or nil.
func (m *RootModel) Toast() *ToastMsg { return m.toast }

// Reloads counts completed reload requests.
func (m *RootModel) Reloads() int { return m.reloads }

// Update routes messages between the page and the modal.
func (m *RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for _, c := range []ChildModel{m.modal, m.closing} {
			if sized, ok := c.(ModelWithSize); ok {
				sized.SetSize(m.modalSize())
			}
		}
		return m, nil

	case tea.KeyPressMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m.quit()
		}
		if m.mode == ModalMode && m.modal != nil {
			return m, m.updateChild(&m.modal, msg)
		}
		return m.handleKey(msg)

	case ToastMsg:
		return m, m.showToast(msg)

	case toastExpiredMsg:
		if m.toast != nil && msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case CloseModalMsg:
		if m.modal == nil {
			return m, nil
		}
		if msg.Cancelled {
			m.log.V(1).Info("modal cancelled")
			teardown(m.modal)
		} else {
			m.log.V(1).Info("modal closed")
			teardown(m.closing)
			m.closing = m.modal
		}
		m.modal = nil
		m.mode = NormalMode
		return m, nil

	case RefreshViewMsg:
		return m, m.loadCase()

	case ReloadMsg:
		m.log.V(1).Info("reloading case page")
		teardown(m.closing)
		m.closing = nil
		if m.modal != nil {
			teardown(m.modal)
			m.modal = nil
			m.mode = NormalMode
		}
		m.reloads++
		return m, m.loadCase()

	case caseLoadedMsg:
		if msg.gen != m.caseGen {
			return m, nil
		}
		m.loadingCase = false
		if msg.err != nil {
			m.rec = nil
			m.caseErr = directory.MessageOf(msg.err)
			m.log.Error(msg.err, "loading case failed", "case", m.caseID)
			return m, nil
		}
		rec := msg.rec
		m.rec = &rec
		m.caseErr = ""
		return m, nil
	}

	// everything else belongs to the modal, visible or closing
	switch {
	case m.modal != nil:
		return m, m.updateChild(&m.modal, msg)
	case m.closing != nil:
		return m, m.updateChild(&m.closing, msg)
	}
	return m, nil
}

func (m *RootModel) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Open):
		return m, m.openModal()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadCase()
	case key.Matches(msg, m.keys.Dismiss):
		m.toast = nil
	}
	return m, nil
}

func (m *RootModel) updateChild(slot *ChildModel, msg tea.Msg) tea.Cmd {
	next, cmd := (*slot).Update(msg)
	*slot = next
	return cmd
}

func (m *RootModel) openModal() tea.Cmd {
	if m.maker == nil {
		return nil
	}
	teardown(m.closing)
	m.closing = nil
	w, h := m.modalSize()
	child, cmd := m.maker.Make(m.caseID, w, h)
	if child == nil {
		return nil
	}
	if id, ok := child.(ModelWithID); ok {
		m.log.V(1).Info("modal opened", "id", id.ID())
	}
	m.modal = child
	m.mode = ModalMode
	return cmd
}

func (m *RootModel) modalSize() (int, int) {
	// leave room for the header and the toast line
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return m.width, h
}

func (m *RootModel) loadCase() tea.Cmd {
	if m.svc == nil || m.caseID == "" {
		return nil
	}
	m.caseGen++
	m.loadingCase = true
	gen, id, svc := m.caseGen, m.caseID, m.svc
	return func() tea.Msg {
		rec, err := svc.GetCase(context.Background(), id)
		return caseLoadedMsg{gen: gen, rec: rec, err: err}
	}
}

func (m *RootModel) showToast(t ToastMsg) tea.Cmd {
	if t.Duration <= 0 {
		t.Duration = m.toastDuration
	}
	m.toastSeq++
	m.toast = &t
	seq := m.toastSeq
	return tea.Tick(t.Duration, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func (m *RootModel) quit() (tea.Model, tea.Cmd) {
	m.Teardown()
	m.quitting = true
	return m, tea.Quit
}

// Teardown releases the modal and any closing modal.
func (m *RootModel) Teardown() {
	teardown(m.modal)
	teardown(m.closing)
	m.modal, m.closing = nil, nil
	m.mode = NormalMode
}

func teardown(c ChildModel) {
	if td, ok := c.(ModelWithTeardown); ok {
		td.Teardown()
	}
}

// View renders the case page with the modal and toast on top.
func (m *RootModel) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	th := CurrentTheme()
	parts := []string{m.viewHeader(th)}
	if t := m.viewToast(th); t != "" {
		parts = append(parts, t)
	}
	if m.mode == ModalMode && m.modal != nil {
		parts = append(parts, m.modal.View())
	} else {
		parts = append(parts, m.viewCase(th), m.help.ShortHelpView(m.keys.ShortHelp()))
	}
	v := tea.NewView(lipgloss.JoinVertical(lipgloss.Left, parts...))
	v.AltScreen = true
	return v
}

func (m *RootModel) viewHeader(th Theme) string {
	title := "Case"
	if m.rec != nil && m.rec.Number != "" {
		title = "Case " + m.rec.Number
	} else if m.caseID != "" {
		title = "Case " + m.caseID
	}
	if m.rec != nil && m.rec.Subject != "" {
		title += ": " + m.rec.Subject
	}
	return th.Title().Render(title)
}

func (m *RootModel) viewCase(th Theme) string {
	switch {
	case m.caseID == "":
		return th.Fg(th.Warning).Render("No case selected. Start with --case ID or set case.default_id.")
	case m.caseErr != "":
		return th.Fg(th.Error).Render("Error loading case: " + m.caseErr)
	case m.rec == nil:
		return th.Hint().Render("Loading case…")
	}
	contact := th.Hint().Render("none")
	if m.rec.ContactName != "" {
		contact = m.rec.ContactName
	}
	lines := []string{
		fmt.Sprintf("%-9s %s", "Status:", m.rec.Status),
		fmt.Sprintf("%-9s %s", "Contact:", contact),
	}
	if m.loadingCase {
		lines = append(lines, th.Hint().Render("Refreshing…"))
	}
	return th.Frame().Render(strings.Join(lines, "\n"))
}

func (m *RootModel) viewToast(th Theme) string {
	if m.toast == nil {
		return ""
	}
	var c = th.Info
	switch m.toast.Variant {
	case ToastSuccess:
		c = th.Success
	case ToastWarning:
		c = th.Warning
	case ToastError:
		c = th.Error
	}
	text := m.toast.Message
	if m.toast.Title != "" {
		text = m.toast.Title + ": " + text
	}
	if m.toast.Mode == ToastModeDismissable {
		text += th.Hint().Render("  (x to dismiss)")
	}
	return th.Fg(c).Bold(true).Render(text)
}

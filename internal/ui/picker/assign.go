package picker

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/contactpicker/internal/directory"
	"github.com/oakwood-commons/contactpicker/internal/ui"
)

// Phase is the assignment workflow state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseAssigning
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseValidating:
		return "validating"
	case PhaseAssigning:
		return "assigning"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Notification texts of the assignment workflow.
const (
	MsgNoSelection     = "Please select a contact to assign to this case"
	MsgNoCaseAssign    = "Case ID not available for assignment"
	MsgAssignedDefault = "Contact assigned successfully!"
	assignFailedPrefix = "Failed to assign contact: "
)

type assignDoneMsg struct {
	owner   string
	message string
	err     error
}

// Assign starts assigning the selected contact to the case. Without a
// selection or case a warning toast is emitted and no remote call is made.
// Nothing happens while an assignment is running or after one succeeded.
func (m *Model) Assign() tea.Cmd {
	if m.busy || m.phase == PhaseSucceeded {
		return nil
	}
	m.phase = PhaseValidating
	if m.selectedID == "" {
		m.phase = PhaseIdle
		return m.toast(ui.ToastWarning, "Warning", MsgNoSelection)
	}
	if m.caseID == "" {
		m.phase = PhaseIdle
		return m.toast(ui.ToastWarning, "Warning", MsgNoCaseAssign)
	}

	m.phase = PhaseAssigning
	m.busy = true
	req := directory.Assignment{ContactID: m.selectedID, CaseID: m.caseID}
	owner, ctx, svc := m.id, m.ctx, m.svc
	m.log.V(1).Info("assigning contact", "contact", req.ContactID, "case", req.CaseID)
	return func() tea.Msg {
		text, err := svc.AssignContactToCase(ctx, req)
		return assignDoneMsg{owner: owner, message: text, err: err}
	}
}

// applyAssign finishes the workflow. On success the host is asked to
// refresh and the close and reload timers start; on failure the picker
// stays open for a retry.
func (m *Model) applyAssign(msg assignDoneMsg) tea.Cmd {
	if msg.owner != m.id {
		return nil
	}
	defer func() { m.busy = false }()

	if msg.err != nil {
		m.phase = PhaseFailed
		m.log.Error(msg.err, "assignment failed", "contact", m.selectedID)
		return m.toast(ui.ToastError, "Error", assignFailedPrefix+directory.MessageOf(msg.err))
	}

	m.phase = PhaseSucceeded
	text := msg.message
	if strings.TrimSpace(text) == "" {
		text = MsgAssignedDefault
	}
	m.log.Info("contact assigned", "contact", m.selectedID, "case", m.caseID)
	return tea.Batch(
		m.toast(ui.ToastSuccess, "Success", text),
		ui.Emit(ui.RefreshViewMsg{}),
		m.closeTimer.Schedule(),
		m.reloadTimer.Schedule(),
	)
}

func (m *Model) toast(variant ui.ToastVariant, title, text string) tea.Cmd {
	return ui.Emit(ui.ToastMsg{
		Title:    title,
		Message:  text,
		Variant:  variant,
		Mode:     ui.ToastModeDismissable,
		Duration: m.cfg.ToastDuration(),
	})
}

package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// ToastVariant selects the styling of a notification.
type ToastVariant int

const (
	ToastInfo ToastVariant = iota
	ToastSuccess
	ToastWarning
	ToastError
)

func (v ToastVariant) String() string {
	switch v {
	case ToastSuccess:
		return "success"
	case ToastWarning:
		return "warning"
	case ToastError:
		return "error"
	default:
		return "info"
	}
}

// ToastModeDismissable toasts stay until dismissed or their duration ends.
const ToastModeDismissable = "dismissable"

// DefaultToastDuration applies when a toast does not set one.
const DefaultToastDuration = 6 * time.Second

// ToastMsg asks the host to show a notification.
type ToastMsg struct {
	Title    string
	Message  string
	Variant  ToastVariant
	Mode     string
	Duration time.Duration
}

// CloseModalMsg asks the host to close the modal. Cancelled is set when the
// user backed out; a cancelled modal is torn down immediately, otherwise
// the host keeps delivering messages to it until ReloadMsg.
type CloseModalMsg struct {
	Cancelled bool
}

// RefreshViewMsg asks the host to re-read the record it displays.
type RefreshViewMsg struct{}

// ReloadMsg asks the host to discard the modal and reload everything.
type ReloadMsg struct{}

// Emit wraps msg in a command.
func Emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

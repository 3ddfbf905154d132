package picker

import (
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/contactpicker/internal/ui"
)

// NewMaker returns a ui.Maker that opens a fresh picker for a case. The
// case id passed to Make overrides opts.CaseID.
func NewMaker(opts Options) ui.Maker {
	return ui.MakerFunc(func(caseID string, width, height int) (ui.ChildModel, tea.Cmd) {
		o := opts
		if caseID != "" {
			o.CaseID = caseID
		}
		m := New(o)
		if width > 0 && height > 0 {
			m.SetSize(width, height)
		}
		return m, m.Init()
	})
}

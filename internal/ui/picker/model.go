// Package picker implements the contact picker modal: search by name, state
// or distance from the case, page through results and assign the selected
// contact to the case.
package picker

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/contactpicker/internal/config"
	"github.com/oakwood-commons/contactpicker/internal/contacts"
	"github.com/oakwood-commons/contactpicker/internal/debounce"
	"github.com/oakwood-commons/contactpicker/internal/directory"
	"github.com/oakwood-commons/contactpicker/internal/pager"
	"github.com/oakwood-commons/contactpicker/internal/search"
	"github.com/oakwood-commons/contactpicker/internal/ui"
	"github.com/oakwood-commons/contactpicker/internal/ui/table"
)

// focusZone is the control that receives keys.
type focusZone int

const (
	focusMode focusZone = iota
	focusCriteria
	focusCustomRadius
	focusResults
)

// Options configures a picker.
type Options struct {
	Service directory.Service
	CaseID  string
	Picker  config.Picker
	Logger  logr.Logger
}

var instances atomic.Uint64

// Model is the picker state. All handlers run on the Bubble Tea goroutine;
// the only work done elsewhere is the remote calls inside commands.
type Model struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
	svc    directory.Service
	caseID string
	cfg    config.Picker
	log    logr.Logger

	mode contacts.SearchMode
	crit search.Criteria
	page pager.Page
	rows []contacts.Row

	selectedID   string
	selectedName string
	errorMsg     string
	loading      bool
	busy         bool
	phase        Phase
	// fetchGen tags every page request; only the latest is applied.
	fetchGen uint64

	nameTimer   *debounce.Timer
	radiusTimer *debounce.Timer
	closeTimer  *debounce.Timer
	reloadTimer *debounce.Timer
	torn        bool

	focus       focusZone
	stateIdx    int
	distanceIdx int
	nameInput   textinput.Model
	radiusInput textinput.Model
	table       *table.Model[contacts.Row]
	keys        keyMap
	help        help.Model
	width       int
	height      int
}

// New creates a picker in name mode with nothing loaded.
func New(opts Options) *Model {
	n := instances.Add(1)
	id := fmt.Sprintf("picker-%d", n)
	ctx, cancel := context.WithCancel(context.Background())

	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Search contacts by name"
	name.CharLimit = 80
	name.SetWidth(30)

	radius := textinput.New()
	radius.Prompt = ""
	radius.Placeholder = "Miles"
	radius.CharLimit = 8
	radius.SetWidth(8)

	m := &Model{
		id:          id,
		ctx:         ctx,
		cancel:      cancel,
		svc:         opts.Service,
		caseID:      strings.TrimSpace(opts.CaseID),
		cfg:         opts.Picker,
		log:         opts.Logger.WithValues("picker", id),
		mode:        contacts.ModeName,
		page:        pager.New(opts.Picker.PageSize),
		rows:        []contacts.Row{},
		nameTimer:   debounce.New(id+"/name", opts.Picker.Debounce()),
		radiusTimer: debounce.New(id+"/radius", opts.Picker.Debounce()),
		closeTimer:  debounce.New(id+"/close", opts.Picker.CloseDelay()),
		reloadTimer: debounce.New(id+"/reload", opts.Picker.ReloadDelay()),
		focus:       focusCriteria,
		nameInput:   name,
		radiusInput: radius,
		keys:        newKeyMap(),
		help:        help.New(),
		width:       100,
		height:      30,
	}
	m.table = table.NewModel[contacts.Row](
		tableColumns(contacts.ModeName),
		rowCells(contacts.ModeName),
		func(r contacts.Row) string { return r.ID },
	)
	m.applyTheme()
	m.nameInput.Focus()
	m.layout()
	return m
}

// Init implements ui.ChildModel.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// ID implements ui.ModelWithID.
func (m *Model) ID() string { return m.id }

// Title implements ui.ModelWithTitle.
func (m *Model) Title() string {
	if m.caseID == "" {
		return "Assign Contact"
	}
	return "Assign Contact to Case " + m.caseID
}

// SetSize implements ui.ModelWithSize.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.layout()
}

// Teardown implements ui.ModelWithTeardown. Pending timers are stopped,
// in-flight remote calls are cancelled and late messages are ignored.
func (m *Model) Teardown() {
	if m.torn {
		return
	}
	m.torn = true
	for _, t := range []*debounce.Timer{m.nameTimer, m.radiusTimer, m.closeTimer, m.reloadTimer} {
		t.Stop()
	}
	m.cancel()
	m.log.V(1).Info("picker torn down")
}

// Mode returns the active search mode.
func (m *Model) Mode() contacts.SearchMode { return m.mode }

// Criteria returns the current search input.
func (m *Model) Criteria() search.Criteria { return m.crit }

// Page returns the pagination state.
func (m *Model) Page() pager.Page { return m.page }

// Rows returns the rows of the current page. Never nil.
func (m *Model) Rows() []contacts.Row { return m.rows }

// SelectedID returns the selected contact id, or "".
func (m *Model) SelectedID() string { return m.selectedID }

// ErrorMessage returns the status message derived from the last load.
func (m *Model) ErrorMessage() string { return m.errorMsg }

// Loading reports whether a page request is outstanding.
func (m *Model) Loading() bool { return m.loading }

// Busy reports whether an assignment is in progress.
func (m *Model) Busy() bool { return m.busy }

// Phase returns the assignment phase.
func (m *Model) Phase() Phase { return m.phase }

// Compact reports whether the narrow layout is in use.
func (m *Model) Compact() bool {
	return m.cfg.CompactWidth > 0 && m.width < m.cfg.CompactWidth
}

// CanAssign reports whether the assign action is enabled.
func (m *Model) CanAssign() bool {
	return m.selectedID != "" && !m.busy
}

// DisplayTotals returns total records, current page and total pages for
// display, defaulting to 0, 1 and 1.
func (m *Model) DisplayTotals() (records, number, pages int) {
	records, number, pages = m.page.TotalRecords, m.page.Number, m.page.TotalPages
	if number < 1 {
		number = 1
	}
	if pages < 1 {
		pages = 1
	}
	return records, number, pages
}

func (m *Model) applyTheme() {
	th := ui.CurrentTheme()
	m.table.SetColors(th.Text, th.HeaderBG, th.SelectedFG, th.SelectedBG)
	m.table.SetNoColor(th.NoColor)
}

func tableColumns(mode contacts.SearchMode) []table.Column {
	cols := contacts.ColumnsFor(mode)
	out := make([]table.Column, len(cols))
	for i, c := range cols {
		out[i] = table.Column{Title: c.Label, Width: c.Width}
	}
	return out
}

func rowCells(mode contacts.SearchMode) func(contacts.Row) table.Row {
	cols := contacts.ColumnsFor(mode)
	return func(r contacts.Row) table.Row {
		cells := make(table.Row, len(cols))
		for i, c := range cols {
			cells[i] = r.Cell(c.Field)
		}
		return cells
	}
}

package table

import (
	"fmt"
	"image/color"

	bubtable "charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// Re-export common table types so callers can construct columns/rows without
// importing bubbles directly.
type Column = bubtable.Column
type Row = bubtable.Row

// Model is a generic table of V values. It wraps the bubbles table and adds
// identity lookup, width fitting and theming.
type Model[V any] struct {
	table   bubtable.Model
	styles  bubtable.Styles
	rows    []V
	columns []Column
	// preferred widths; SetSize scales these to the available width
	preferred []int

	toRow   func(V) Row
	keyFunc func(V) string // stable identity of a row

	width   int
	height  int
	focused bool
	noColor bool

	headerFG   color.Color
	headerBG   color.Color
	selectedFG color.Color
	selectedBG color.Color
}

// NewModel creates a new generic table model.
// Parameters:
//
//	columns: table column definitions with preferred widths
//	toRow: function to convert value V to table.Row
//	keyFunc: function returning the identity of V
func NewModel[V any](
	columns []Column,
	toRow func(V) Row,
	keyFunc func(V) string,
) *Model[V] {
	t := bubtable.New(
		bubtable.WithColumns(columns),
		bubtable.WithFocused(true),
		bubtable.WithHeight(5),
	)

	s := bubtable.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Bold(true).
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(1)
	s.Selected = s.Selected.
		PaddingLeft(0).
		PaddingRight(0)
	s.Cell = lipgloss.NewStyle().
		Align(lipgloss.Left).
		PaddingLeft(0).
		PaddingRight(1)
	t.SetStyles(s)

	m := &Model[V]{
		table:   t,
		styles:  s,
		rows:    []V{},
		toRow:   toRow,
		keyFunc: keyFunc,
		width:   80,
		height:  10,
		focused: true,
	}
	m.setColumns(columns)
	return m
}

// SetRows replaces the table contents. The cursor is kept in range.
func (m *Model[V]) SetRows(rows []V) {
	if rows == nil {
		rows = []V{}
	}
	m.rows = rows
	m.render()
	if n := len(m.rows); n > 0 && m.Cursor() >= n {
		m.SetCursor(n - 1)
	}
}

// SetColumns replaces the columns. Their widths are taken as preferred
// widths and refitted to the current size.
func (m *Model[V]) SetColumns(columns []Column) {
	m.setColumns(columns)
	m.render()
	m.applyColorScheme()
}

func (m *Model[V]) setColumns(columns []Column) {
	m.preferred = make([]int, len(columns))
	for i, c := range columns {
		m.preferred[i] = c.Width
	}
	m.columns = FitColumns(columns, m.width)
	// bubbles rebuilds rows against the column count, so clear first
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns)
}

// SetRowFunc replaces the value-to-cells conversion. Call SetColumns
// afterwards when the column set changes too.
func (m *Model[V]) SetRowFunc(toRow func(V) Row) {
	m.toRow = toRow
	m.render()
}

// Columns returns the fitted columns.
func (m *Model[V]) Columns() []Column {
	return m.columns
}

// Rows returns the current rows.
func (m *Model[V]) Rows() []V {
	return m.rows
}

// IndexOf returns the position of the row whose key is key, or -1.
func (m *Model[V]) IndexOf(key string) int {
	if m.keyFunc == nil || key == "" {
		return -1
	}
	for i, row := range m.rows {
		if m.keyFunc(row) == key {
			return i
		}
	}
	return -1
}

// Cursor returns the current cursor position.
func (m *Model[V]) Cursor() int {
	return m.table.Cursor()
}

// SetCursor sets the cursor position.
func (m *Model[V]) SetCursor(pos int) {
	m.table.SetCursor(pos)
}

// SelectedRow returns the row under the cursor, or nil if there are no rows.
func (m *Model[V]) SelectedRow() *V {
	if len(m.rows) == 0 {
		return nil
	}
	cursor := m.Cursor()
	if cursor < 0 || cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[cursor]
}

// SetSize sets the table dimensions and refits the columns.
func (m *Model[V]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(height)
	cols := make([]Column, len(m.columns))
	for i, c := range m.columns {
		cols[i] = Column{Title: c.Title, Width: m.preferred[i]}
	}
	m.columns = FitColumns(cols, width)
	m.table.SetColumns(m.columns)
	m.render()
}

// SetHeight updates only the table height, preserving current width.
func (m *Model[V]) SetHeight(height int) {
	m.SetSize(m.width, height)
}

// Focus sets the table focus state.
func (m *Model[V]) Focus() {
	m.focused = true
	m.table.Focus()
}

// Blur removes focus from the table.
func (m *Model[V]) Blur() {
	m.focused = false
	m.table.Blur()
}

// Focused returns true if the table has focus.
func (m *Model[V]) Focused() bool {
	return m.focused
}

// SetNoColor enables/disables color output.
func (m *Model[V]) SetNoColor(noColor bool) {
	m.noColor = noColor
	m.applyColorScheme()
}

// SetColors sets custom theme colors.
func (m *Model[V]) SetColors(headerFG, headerBG, selectedFG, selectedBG color.Color) {
	m.headerFG = headerFG
	m.headerBG = headerBG
	m.selectedFG = selectedFG
	m.selectedBG = selectedBG
	m.applyColorScheme()
}

func (m *Model[V]) applyColorScheme() {
	s := m.styles

	if m.noColor {
		s.Header = s.Header.UnsetForeground().UnsetBackground()
		s.Selected = s.Selected.UnsetForeground().UnsetBackground().Reverse(true)
		s.Cell = s.Cell.UnsetForeground().UnsetBackground()
	} else {
		if m.headerFG != nil {
			s.Header = s.Header.Foreground(m.headerFG)
		}
		if m.headerBG != nil {
			s.Header = s.Header.Background(m.headerBG)
		}
		if m.selectedFG != nil {
			s.Selected = s.Selected.Foreground(m.selectedFG)
		}
		if m.selectedBG != nil {
			s.Selected = s.Selected.Background(m.selectedBG)
		}
	}

	m.table.SetStyles(s)
	m.styles = s
}

// render pushes m.rows to the bubbles table, truncating cells to fit.
func (m *Model[V]) render() {
	tableRows := make([]Row, len(m.rows))
	for i, row := range m.rows {
		cells := m.toRow(row)
		out := make(Row, len(m.columns))
		for j := range m.columns {
			if j < len(cells) {
				out[j] = Truncate(cells[j], m.columns[j].Width)
			}
		}
		tableRows[i] = out
	}
	m.table.SetRows(tableRows)
}

// Update handles messages and updates the table state.
func (m *Model[V]) Update(msg tea.Msg) (*Model[V], tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table to a string.
func (m *Model[V]) View() string {
	return m.table.View()
}

// String returns a string representation for debugging.
func (m *Model[V]) String() string {
	return fmt.Sprintf("Table[rows=%d, cols=%d, cursor=%d, width=%d]",
		len(m.rows), len(m.columns), m.Cursor(), m.width)
}

// Truncate shortens s to at most width display cells, adding an ellipsis
// when anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// FitColumns scales preferred column widths so the table fits in total
// display cells. Each column keeps at least 4 cells; one cell of padding
// per column is accounted for.
func FitColumns(columns []Column, total int) []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	if len(out) == 0 || total <= 0 {
		return out
	}
	const minWidth = 4
	avail := total - len(out)
	want := 0
	for _, c := range out {
		want += c.Width
	}
	if want <= avail || want == 0 {
		return out
	}
	used := 0
	for i := range out {
		w := out[i].Width * avail / want
		if w < minWidth {
			w = minWidth
		}
		out[i].Width = w
		used += w
	}
	// hand rounding leftovers to the first column
	if used < avail {
		out[0].Width += avail - used
	}
	return out
}

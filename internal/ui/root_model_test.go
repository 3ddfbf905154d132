package ui

import (
	"fmt"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/contactpicker/internal/contacts"
	"github.com/oakwood-commons/contactpicker/internal/directory/directorytest"
)

// mockChild records what the root sends it.
type mockChild struct {
	id       string
	msgs     []tea.Msg
	width    int
	height   int
	torndown int
}

func (m *mockChild) Init() tea.Cmd { return nil }

func (m *mockChild) Update(msg tea.Msg) (ChildModel, tea.Cmd) {
	m.msgs = append(m.msgs, msg)
	return m, nil
}

func (m *mockChild) View() string { return m.id + " view" }

func (m *mockChild) ID() string { return m.id }

func (m *mockChild) SetSize(width, height int) { m.width, m.height = width, height }

func (m *mockChild) Teardown() { m.torndown++ }

type mockMaker struct {
	made []*mockChild
	ids  []string
}

func (mm *mockMaker) Make(id string, width, height int) (ChildModel, tea.Cmd) {
	c := &mockChild{id: fmt.Sprintf("modal-%d", len(mm.made)+1), width: width, height: height}
	mm.made = append(mm.made, c)
	mm.ids = append(mm.ids, id)
	return c, nil
}

type otherMsg struct{}

func newTestHost(t *testing.T) (*RootModel, *mockMaker, *directorytest.Fake) {
	t.Helper()
	fake := &directorytest.Fake{Cases: map[string]contacts.Case{
		"500-0001": {ID: "500-0001", Number: "00001026", Subject: "Broken pump", Status: "New"},
	}}
	maker := &mockMaker{}
	m := NewRootModel(HostOptions{
		Service:       fake,
		CaseID:        "500-0001",
		Maker:         maker,
		Logger:        logr.Discard(),
		ToastDuration: time.Second,
	})
	return m, maker, fake
}

func send(m *RootModel, msg tea.Msg) tea.Cmd {
	_, cmd := m.Update(msg)
	return cmd
}

func loadCase(t *testing.T, m *RootModel, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, caseLoadedMsg{}, msg)
	send(m, msg)
}

func TestRootLoadsCase(t *testing.T) {
	m, _, _ := newTestHost(t)
	loadCase(t, m, m.Init())

	require.NotNil(t, m.Case())
	assert.Equal(t, "00001026", m.Case().Number)
	content := fmt.Sprint(m.View().Content)
	assert.Contains(t, content, "Case 00001026: Broken pump")
	assert.Contains(t, content, "none")
}

func TestRootCaseErrorShown(t *testing.T) {
	m, _, fake := newTestHost(t)
	fake.Cases = nil
	loadCase(t, m, m.Init())

	assert.Nil(t, m.Case())
	assert.Contains(t, fmt.Sprint(m.View().Content), "Error loading case")
}

func TestRootOpensModalAndRoutesKeys(t *testing.T) {
	m, maker, _ := newTestHost(t)
	send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	send(m, tea.KeyPressMsg{Code: 'a', Text: "a"})
	require.Len(t, maker.made, 1)
	assert.Equal(t, []string{"500-0001"}, maker.ids)
	assert.Equal(t, ModalMode, m.Mode())
	assert.Equal(t, 120, maker.made[0].width)

	send(m, tea.KeyPressMsg{Code: 'q', Text: "q"})
	assert.Len(t, maker.made[0].msgs, 1, "keys go to the modal while it is open")
	assert.Contains(t, fmt.Sprint(m.View().Content), "modal-1 view")

	send(m, tea.WindowSizeMsg{Width: 90, Height: 30})
	assert.Equal(t, 90, maker.made[0].width)
}

func TestRootCancelTearsDownImmediately(t *testing.T) {
	m, maker, _ := newTestHost(t)
	send(m, tea.KeyPressMsg{Code: 'a', Text: "a"})
	child := maker.made[0]

	send(m, CloseModalMsg{Cancelled: true})
	assert.Equal(t, 1, child.torndown)
	assert.Nil(t, m.Modal())
	assert.Equal(t, NormalMode, m.Mode())

	send(m, otherMsg{})
	assert.Empty(t, child.msgs, "a cancelled modal receives nothing")
}

func TestRootSelfCloseKeepsTimersUntilReload(t *testing.T) {
	m, maker, _ := newTestHost(t)
	loadCase(t, m, m.Init())
	send(m, tea.KeyPressMsg{Code: 'a', Text: "a"})
	child := maker.made[0]

	send(m, CloseModalMsg{})
	assert.Equal(t, NormalMode, m.Mode())
	assert.Zero(t, child.torndown)

	send(m, otherMsg{})
	require.Len(t, child.msgs, 1, "a closing modal still gets its timers")

	cmd := send(m, ReloadMsg{})
	assert.Equal(t, 1, child.torndown)
	assert.Equal(t, 1, m.Reloads())
	loadCase(t, m, cmd)

	send(m, otherMsg{})
	assert.Len(t, child.msgs, 1)
}

func TestRootReopenTearsDownClosingModal(t *testing.T) {
	m, maker, _ := newTestHost(t)
	send(m, tea.KeyPressMsg{Code: 'a', Text: "a"})
	send(m, CloseModalMsg{})
	send(m, tea.KeyPressMsg{Code: 'a', Text: "a"})

	require.Len(t, maker.made, 2)
	assert.Equal(t, 1, maker.made[0].torndown)
	assert.Zero(t, maker.made[1].torndown)
}

func TestRootRefreshReloadsCase(t *testing.T) {
	m, _, fake := newTestHost(t)
	loadCase(t, m, m.Init())

	c := fake.Cases["500-0001"]
	c.ContactName = "Jordan Lee"
	fake.Cases["500-0001"] = c

	loadCase(t, m, send(m, RefreshViewMsg{}))
	assert.Equal(t, "Jordan Lee", m.Case().ContactName)
}

func TestRootDiscardsSupersededCaseLoad(t *testing.T) {
	m, _, _ := newTestHost(t)
	require.NotNil(t, m.Init())
	second := send(m, RefreshViewMsg{})

	loadCase(t, m, second)
	send(m, caseLoadedMsg{gen: 1, err: assert.AnError})
	assert.NotNil(t, m.Case(), "the first load was superseded")
}

func TestRootToastLifecycle(t *testing.T) {
	m, _, _ := newTestHost(t)

	send(m, ToastMsg{Title: "Success", Message: "done", Variant: ToastSuccess, Mode: ToastModeDismissable})
	require.NotNil(t, m.Toast())
	assert.Equal(t, time.Second, m.Toast().Duration)
	assert.Contains(t, fmt.Sprint(m.View().Content), "Success: done")

	send(m, ToastMsg{Message: "second", Variant: ToastInfo})
	send(m, toastExpiredMsg{seq: 1})
	require.NotNil(t, m.Toast(), "an older expiry must not hide a newer toast")

	send(m, toastExpiredMsg{seq: 2})
	assert.Nil(t, m.Toast())

	send(m, ToastMsg{Message: "third"})
	send(m, tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Nil(t, m.Toast())
}

func TestRootQuitTearsDown(t *testing.T) {
	m, maker, _ := newTestHost(t)
	send(m, tea.KeyPressMsg{Code: 'a', Text: "a"})

	cmd := send(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.Equal(t, 1, maker.made[0].torndown)
	assert.Empty(t, fmt.Sprint(m.View().Content))
}

func TestRootWithoutCase(t *testing.T) {
	m := NewRootModel(HostOptions{Logger: logr.Discard()})
	assert.Nil(t, m.Init())
	assert.Contains(t, fmt.Sprint(m.View().Content), "No case selected")
}

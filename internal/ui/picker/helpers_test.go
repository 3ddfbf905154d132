package picker

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/contactpicker/internal/config"
	"github.com/oakwood-commons/contactpicker/internal/contacts"
	"github.com/oakwood-commons/contactpicker/internal/directory/directorytest"
)

const testCaseID = "500-0001"

func miles(v float64) *float64 { return &v }

func sampleContacts() []contacts.Contact {
	tx := &contacts.Account{ID: "001-1", Name: "Lone Star Supply", BillingStateCode: "TX"}
	ca := &contacts.Account{ID: "001-2", Name: "Golden Gate Goods", BillingState: "California"}
	return []contacts.Contact{
		{ID: "003-1", Name: "Jordan Lee", Email: "jordan.lee@example.com", AccountID: tx.ID, Account: tx, DistanceFromCase: miles(3.2)},
		{ID: "003-2", Name: "Jordan Smith", Email: "jsmith@example.com", AccountID: tx.ID, Account: tx, DistanceFromCase: miles(18)},
		{ID: "003-3", Name: "Michael Jordan", AccountID: ca.ID, Account: ca, DistanceFromCase: miles(1400)},
		{ID: "003-4", Name: "Avery Lee", Email: "avery@example.com", AccountID: ca.ID, Account: ca, DistanceFromCase: miles(1390)},
	}
}

func testConfig() config.Picker {
	return config.Picker{
		PageSize:        50,
		DebounceMS:      500,
		CloseDelayMS:    2000,
		ReloadDelayMS:   3000,
		ToastDurationMS: 6000,
		CompactWidth:    100,
	}
}

func newTestPicker(t *testing.T, fake *directorytest.Fake, mutate ...func(*Options)) *Model {
	t.Helper()
	opts := Options{Service: fake, CaseID: testCaseID, Picker: testConfig(), Logger: logr.Discard()}
	for _, fn := range mutate {
		fn(&opts)
	}
	m := New(opts)
	m.SetSize(120, 40)
	t.Cleanup(m.Teardown)
	return m
}

// step delivers msg and returns the follow-up command.
func step(t *testing.T, m *Model, msg tea.Msg) tea.Cmd {
	t.Helper()
	next, cmd := m.Update(msg)
	require.Same(t, m, next)
	return cmd
}

// settle runs a fetch command and applies its result.
func settle(t *testing.T, m *Model, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, pageLoadedMsg{}, msg)
	return step(t, m, msg)
}

// fireName delivers the pending name debounce and returns the fetch.
func fireName(t *testing.T, m *Model) tea.Cmd {
	t.Helper()
	require.True(t, m.nameTimer.Pending())
	return step(t, m, m.nameTimer.Current())
}

// searchName types value, lets the debounce fire and applies the result.
func searchName(t *testing.T, m *Model, value string) {
	t.Helper()
	require.NotNil(t, m.NameChanged(value))
	require.Nil(t, settle(t, m, fireName(t, m)))
}

// batch expands a tea.Batch command without running its members.
func batch(t *testing.T, cmd tea.Cmd) []tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	b, ok := msg.(tea.BatchMsg)
	require.True(t, ok, "expected a batch, got %T", msg)
	return b
}

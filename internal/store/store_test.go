package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/oakwood-commons/contactpicker/internal/contacts"
	"github.com/oakwood-commons/contactpicker/internal/directory"
	"github.com/oakwood-commons/contactpicker/pkg/loader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSample(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "dir.db"), logr.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	docs, err := loader.DecodeDocuments[Dataset](string(SampleDataset()))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	stats, err := s.Import(context.Background(), docs[0])
	require.NoError(t, err)
	require.Equal(t, 20, stats.Contacts)

	return s
}

func names(list []contacts.Contact) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.Name)
	}
	return out
}

func TestOpenSetsSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir.db")
	s, err := Open(context.Background(), path, logr.Discard())
	require.NoError(t, err)

	v, err := s.schemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, v)
	assert.Equal(t, path, s.Path())
	require.NoError(t, s.Close())

	// reopening an up-to-date database is a no-op
	s, err = Open(context.Background(), path, logr.Discard())
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), "", logr.Discard())
	require.Error(t, err)
}

func TestSearchByName(t *testing.T) {
	s := openSample(t)
	ctx := context.Background()

	got, err := s.SearchByName(ctx, directory.NameQuery{Name: "jordan", PageSize: 50, PageNumber: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jordan Lee", "Jordan Patel", "Michael Jordan", "Walter Jordanson"}, names(got))
	require.NotNil(t, got[0].Account)
	assert.Equal(t, "Lone Star Logistics", got[0].Account.Name)

	page2, err := s.SearchByName(ctx, directory.NameQuery{Name: "Jordan", PageSize: 3, PageNumber: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Walter Jordanson"}, names(page2))

	n, err := s.Count(ctx, directory.CountQuery{SearchBySelection: contacts.ModeName, Name: " Jordan "})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	none, err := s.SearchByName(ctx, directory.NameQuery{Name: "Zzyzx", PageSize: 50, PageNumber: 1})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchByNameEscapesWildcards(t *testing.T) {
	s := openSample(t)
	got, err := s.SearchByName(context.Background(), directory.NameQuery{Name: "%", PageSize: 50, PageNumber: 1})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearchByNameRejectsBadPaging(t *testing.T) {
	s := openSample(t)
	_, err := s.SearchByName(context.Background(), directory.NameQuery{Name: "Jordan", PageSize: 0, PageNumber: 1})
	require.ErrorIs(t, err, directory.ErrInvalidRequest)
}

func TestSearchByStateFallsBackToStateName(t *testing.T) {
	s := openSample(t)
	ctx := context.Background()

	got, err := s.SearchByState(ctx, directory.StateQuery{StateCode: "TX", PageSize: 50, PageNumber: 1})
	require.NoError(t, err)
	assert.Len(t, got, 9)
	assert.Contains(t, names(got), "Samuel Reyes", "account with only a billing state name matches")

	n, err := s.Count(ctx, directory.CountQuery{SearchBySelection: contacts.ModeState, StateCode: "TX"})
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	n, err = s.Count(ctx, directory.CountQuery{SearchBySelection: contacts.ModeState, StateCode: "WY"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestSearchByDistance(t *testing.T) {
	s := openSample(t)
	ctx := context.Background()

	got, err := s.SearchByDistance(ctx, directory.DistanceQuery{CaseID: SampleCaseID, Radius: 25, PageSize: 50, PageNumber: 1})
	require.NoError(t, err)
	require.Len(t, got, 4)
	for i, c := range got {
		require.NotNil(t, c.DistanceFromCase)
		assert.LessOrEqual(t, *c.DistanceFromCase, 25.0)
		if i > 0 {
			assert.LessOrEqual(t, *got[i-1].DistanceFromCase, *c.DistanceFromCase)
		}
	}
	assert.InDelta(t, 0, *got[0].DistanceFromCase, 0.01)

	n, err := s.Count(ctx, directory.CountQuery{SearchBySelection: contacts.ModeDistance, Distance: "25", CaseID: SampleCaseID})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = s.Count(ctx, directory.CountQuery{SearchBySelection: contacts.ModeDistance, Distance: "200", CaseID: SampleCaseID})
	require.NoError(t, err)
	assert.Equal(t, 9, n)
}

func TestSearchByDistanceUnknownCase(t *testing.T) {
	s := openSample(t)
	_, err := s.SearchByDistance(context.Background(), directory.DistanceQuery{CaseID: "nope", Radius: 25, PageSize: 50, PageNumber: 1})
	require.ErrorIs(t, err, directory.ErrNotFound)
	assert.Equal(t, "Case nope does not exist", directory.MessageOf(err))
}

func TestAssignContactToCase(t *testing.T) {
	s := openSample(t)
	ctx := context.Background()

	msg, err := s.AssignContactToCase(ctx, directory.Assignment{ContactID: "con-004", CaseID: SampleCaseID})
	require.NoError(t, err)
	assert.Equal(t, "Jordan Patel assigned to case 00001026", msg)

	c, err := s.GetCase(ctx, SampleCaseID)
	require.NoError(t, err)
	assert.Equal(t, "con-004", c.ContactID)
	assert.Equal(t, "Jordan Patel", c.ContactName)

	_, err = s.AssignContactToCase(ctx, directory.Assignment{ContactID: "con-001", CaseID: SampleCaseID})
	require.NoError(t, err)

	history, err := s.History(ctx, SampleCaseID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "", history[0].PreviousContactID)
	assert.Equal(t, "con-004", history[1].PreviousContactID)
}

func TestAssignContactToCaseFailures(t *testing.T) {
	s := openSample(t)
	ctx := context.Background()

	_, err := s.AssignContactToCase(ctx, directory.Assignment{ContactID: "missing", CaseID: SampleCaseID})
	require.ErrorIs(t, err, directory.ErrNotFound)
	assert.Equal(t, "Contact missing does not exist", directory.MessageOf(err))

	_, err = s.AssignContactToCase(ctx, directory.Assignment{ContactID: "con-001", CaseID: "missing"})
	require.ErrorIs(t, err, directory.ErrNotFound)

	_, err = s.AssignContactToCase(ctx, directory.Assignment{})
	require.ErrorIs(t, err, directory.ErrInvalidRequest)

	c, err := s.GetCase(ctx, SampleCaseID)
	require.NoError(t, err)
	assert.Empty(t, c.ContactID, "failed assignments leave the case untouched")
}

func TestImportIsIdempotent(t *testing.T) {
	s := openSample(t)
	ctx := context.Background()

	stats, err := s.Import(ctx, Dataset{Contacts: []contacts.Contact{
		{ID: "con-001", Name: "Jordan Lee-Smith", Account: &contacts.Account{ID: "acc-001", Name: "Lone Star Logistics", BillingStateCode: "TX", Latitude: 30.2672, Longitude: -97.7431}},
	}})
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Accounts: 1, Contacts: 1}, stats)

	n, err := s.Count(ctx, directory.CountQuery{SearchBySelection: contacts.ModeName, Name: "Lee-Smith"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = s.Import(ctx, Dataset{Contacts: []contacts.Contact{{ID: "x"}}})
	require.Error(t, err)
}

func TestHaversineMiles(t *testing.T) {
	assert.InDelta(t, 0, haversineMiles(30, -97, 30, -97), 1e-9)
	// Austin to Dallas
	assert.InDelta(t, 182, haversineMiles(30.2672, -97.7431, 32.7767, -96.7970), 3)
}

func TestMemoryDatabase(t *testing.T) {
	s, err := Open(context.Background(), MemoryPath, logr.Discard())
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	n, err := s.Count(context.Background(), directory.CountQuery{SearchBySelection: contacts.ModeName, Name: "anyone"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestAllSortedAndLatest(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Version(), all[i].Version())
	}
	assert.Equal(t, all[len(all)-1].Version(), LatestVersion())
}

func TestGetPending(t *testing.T) {
	assert.Len(t, GetPending(1), len(All()))
	assert.Empty(t, GetPending(LatestVersion()))
	for _, m := range GetPending(2) {
		assert.Greater(t, m.Version(), 2)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`CREATE TABLE accounts (id TEXT PRIMARY KEY, latitude REAL, longitude REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE contacts (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE cases (id TEXT PRIMARY KEY)`)
	require.NoError(t, err)

	for range 2 {
		for _, m := range All() {
			require.NoError(t, m.Up(db), "migration v%d", m.Version())
			assert.NotEmpty(t, m.Description())
		}
	}
}

func TestExecStatementsReportsRealErrors(t *testing.T) {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	err = ExecStatements(db, []string{"SELECT * FROM missing_table"})
	require.Error(t, err)
}

package cmd

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/contactpicker/internal/config"
	"github.com/oakwood-commons/contactpicker/internal/search"
	"github.com/oakwood-commons/contactpicker/internal/ui"
	"github.com/oakwood-commons/contactpicker/pkg/logger"
	"github.com/oakwood-commons/contactpicker/pkg/settings"
)

// isolate points every XDG directory at a temp dir and returns a database
// path inside it.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	return filepath.Join(dir, "directory.db")
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--no-color"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := execute(t, "", args...)
	require.NoError(t, err, out)
	return out
}

// sampleDB returns a database loaded with the demo dataset.
func sampleDB(t *testing.T) string {
	t.Helper()
	db := isolate(t)
	out := mustExecute(t, "import", "--sample", "--db", db)
	require.Contains(t, out, "Imported 13 accounts, 20 contacts and 3 cases")
	return db
}

func decodeReport(t *testing.T, out string) searchReport {
	t.Helper()
	var r searchReport
	require.NoError(t, json.Unmarshal([]byte(out), &r), out)
	return r
}

func rowNames(r searchReport) []string {
	names := make([]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		names = append(names, row.Name)
	}
	return names
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	out := mustExecute(t, "version")
	assert.Contains(t, out, "contactpicker")
}

func TestRootFlagVersion(t *testing.T) {
	isolate(t)
	out := mustExecute(t, "--version")
	assert.True(t, strings.HasPrefix(out, "contactpicker "), out)
}

func TestSearchByName(t *testing.T) {
	db := sampleDB(t)

	r := decodeReport(t, mustExecute(t, "search", "--db", db, "--name", "jordan", "-o", "json"))
	assert.Equal(t, "name", r.Mode)
	assert.Equal(t, 4, r.Total)
	assert.Equal(t, 1, r.TotalPages)
	assert.Empty(t, r.Message)
	assert.Equal(t, []string{"Jordan Lee", "Jordan Patel", "Michael Jordan", "Walter Jordanson"}, rowNames(r))
	assert.Equal(t, "TX", r.Rows[0].AccountStateCode)
	assert.Nil(t, r.Rows[0].DistanceFromCase)
}

func TestSearchPaging(t *testing.T) {
	db := sampleDB(t)

	r := decodeReport(t, mustExecute(t, "search", "--db", db, "--name", "jordan", "--page", "2", "--page-size", "3", "-o", "json"))
	assert.Equal(t, 2, r.Page)
	assert.Equal(t, 2, r.TotalPages)
	assert.Equal(t, 4, r.Total)
	assert.Equal(t, []string{"Walter Jordanson"}, rowNames(r))
}

func TestSearchNoMatchesTable(t *testing.T) {
	db := sampleDB(t)

	out := mustExecute(t, "search", "--db", db, "--name", "Zzyzx")
	assert.Contains(t, out, "No contacts found for the entered name: Zzyzx")
	assert.Contains(t, out, "Page 1 of 1 · 0 contacts")
	assert.Contains(t, out, "Account")
	assert.NotContains(t, out, "Distance (mi)")
}

func TestSearchByStateCSV(t *testing.T) {
	db := sampleDB(t)

	out := mustExecute(t, "search", "--db", db, "--by", "state", "--state", "il", "-o", "csv")
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Name", "Account", "Email", "Phone", "State"}, records[0])
	for _, rec := range records[1:] {
		assert.Equal(t, "IL", rec[4])
	}
}

func TestSearchByStateRejectsUnknownCode(t *testing.T) {
	db := sampleDB(t)

	_, err := execute(t, "", "search", "--db", db, "--by", "state", "--state", "ZZ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown state code "ZZ"`)
}

func TestSearchByDistance(t *testing.T) {
	db := sampleDB(t)

	out := mustExecute(t, "search", "--db", db, "--by", "distance", "--radius", "25", "--case", "500-0001", "-o", "yaml")
	var r searchReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &r), out)
	assert.Equal(t, "distance", r.Mode)
	assert.Equal(t, 4, r.Total)
	assert.ElementsMatch(t, []string{"Jordan Lee", "Maria Gonzalez", "Priya Raman", "Jordan Patel"}, rowNames(r))
	for _, row := range r.Rows {
		require.NotNil(t, row.DistanceFromCase, row.Name)
		assert.LessOrEqual(t, *row.DistanceFromCase, 25.0)
	}
}

func TestSearchDistanceTableShowsDistanceColumn(t *testing.T) {
	db := sampleDB(t)

	out := mustExecute(t, "search", "--db", db, "--by", "distance", "--radius", "5", "--case", "500-0001")
	assert.Contains(t, out, "Distance (mi)")
	assert.Contains(t, out, "Jordan Lee")
}

func TestSearchValidation(t *testing.T) {
	db := sampleDB(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing name", args: []string{"--by", "name"}, want: search.MsgEnterName},
		{name: "missing state", args: []string{"--by", "state"}, want: search.MsgSelectState},
		{name: "bad radius", args: []string{"--by", "distance", "--radius", "abc", "--case", "500-0001"}, want: search.MsgInvalidDistance},
		{name: "distance without case", args: []string{"--by", "distance", "--radius", "10"}, want: search.MsgNoCaseDistance},
		{name: "unknown mode", args: []string{"--by", "zip"}, want: `unknown search mode "zip"`},
		{name: "bad page", args: []string{"--name", "a", "--page", "0"}, want: "--page must be at least 1"},
		{name: "bad format", args: []string{"--name", "a", "-o", "xml"}, want: `unsupported output format "xml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"search", "--db", db}, tt.args...)
			_, err := execute(t, "", args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSearchExpression(t *testing.T) {
	db := sampleDB(t)

	out := mustExecute(t, "search", "--db", db, "--name", "jordan", "--page-size", "2", "-e", "_.rows.map(r, r.email)", "-o", "json")
	var emails []string
	require.NoError(t, json.Unmarshal([]byte(out), &emails), out)
	assert.Equal(t, []string{"jordan.lee@lonestar.example", "jpatel@roundrockmed.example"}, emails)

	out = mustExecute(t, "search", "--db", db, "--name", "jordan", "-e", "_.total")
	assert.Equal(t, "4", strings.TrimSpace(out))
}

func TestSearchExpressionCompileError(t *testing.T) {
	db := sampleDB(t)

	_, err := execute(t, "", "search", "--db", db, "--name", "jordan", "-e", "_.rows.(")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compilation error")
}

func TestAssignAndHistory(t *testing.T) {
	db := sampleDB(t)

	out := mustExecute(t, "assign", "--db", db, "--case", "500-0001", "--contact", "con-004")
	assert.Equal(t, "Jordan Patel assigned to case 00001026\n", out)
	mustExecute(t, "assign", "--db", db, "--case", "500-0001", "--contact", "con-001")

	var h historyReport
	require.NoError(t, json.Unmarshal([]byte(mustExecute(t, "history", "--db", db, "--case", "500-0001", "-o", "json")), &h))
	assert.Equal(t, "500-0001", h.CaseID)
	require.Len(t, h.Assignments, 2)
	assert.Equal(t, "con-004", h.Assignments[0].ContactID)
	assert.Empty(t, h.Assignments[0].PreviousContactID)
	assert.Equal(t, "con-001", h.Assignments[1].ContactID)
	assert.Equal(t, "con-004", h.Assignments[1].PreviousContactID)

	table := mustExecute(t, "history", "--db", db, "--case", "500-0001")
	assert.Contains(t, table, "Assigned At")
	assert.Contains(t, table, "con-001")
}

func TestAssignErrors(t *testing.T) {
	db := sampleDB(t)

	_, err := execute(t, "", "assign", "--db", db, "--contact", "con-001")
	require.ErrorIs(t, err, errNoCase)

	_, err = execute(t, "", "assign", "--db", db, "--case", "500-0001")
	require.EqualError(t, err, "--contact is required")

	_, err = execute(t, "", "assign", "--db", db, "--case", "500-0001", "--contact", "con-999")
	require.EqualError(t, err, "failed to assign contact: Contact con-999 does not exist")
}

func TestImportFromStdin(t *testing.T) {
	db := isolate(t)

	input := `{"contacts":[{"id":"c-1","name":"Dana Fox","email":"dana@example.com","account":{"id":"a-1","name":"Fox Co","billing_state_code":"OR"}}]}`
	out, err := execute(t, input, "import", "-", "--db", db)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Imported 1 accounts, 1 contacts and 0 cases")

	r := decodeReport(t, mustExecute(t, "search", "--db", db, "--by", "state", "--state", "OR", "-o", "json"))
	require.Len(t, r.Rows, 1)
	assert.Equal(t, "Fox Co", r.Rows[0].AccountName)
}

func TestImportArguments(t *testing.T) {
	db := isolate(t)

	_, err := execute(t, "", "import", "--db", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to import")

	_, err = execute(t, "", "import", "--sample", "file.yaml", "--db", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--sample cannot be combined")
}

func TestConfigCommand(t *testing.T) {
	isolate(t)

	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(mustExecute(t, "config", "-o", "json")), &cfg))
	assert.Equal(t, 50, cfg.Picker.PageSize)
	assert.Equal(t, 500, cfg.Picker.DebounceMS)
	assert.Equal(t, 2000, cfg.Picker.CloseDelayMS)
	assert.Equal(t, 3000, cfg.Picker.ReloadDelayMS)

	out := mustExecute(t, "config", "-o", "toml")
	assert.Contains(t, out, "[picker]")

	out = mustExecute(t, "config", "path")
	assert.Contains(t, out, "(defaults only)")
	assert.Contains(t, out, "directory.db")
}

func TestConfigFileOverridesDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("picker:\n  page_size: 2\ncase:\n  default_id: 500-0003\n"), 0o600))

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(mustExecute(t, "config", "--config-file", path)), &cfg))
	assert.Equal(t, 2, cfg.Picker.PageSize)
	assert.Equal(t, 500, cfg.Picker.DebounceMS)
	assert.Equal(t, "500-0003", cfg.Case.DefaultID)

	_, err := execute(t, "", "config", "--config-file", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestRunInteractiveBuildsHost(t *testing.T) {
	db := sampleDB(t)

	cfg, err := config.Default()
	require.NoError(t, err)

	var loaded bool
	g := &globalOptions{
		dbPath: db,
		cfg:    cfg,
		runTUI: func(_ context.Context, root *ui.RootModel) error {
			cmd := root.Init()
			require.NotNil(t, cmd)
			root.Update(cmd())
			require.NotNil(t, root.Case())
			assert.Equal(t, "00001026", root.Case().Number)
			assert.Equal(t, ui.NormalMode, root.Mode())
			loaded = true
			return nil
		},
	}
	ctx := logger.WithLogger(context.Background(), logger.GetNoopLogger())
	ctx = settings.IntoContext(ctx, &settings.Run{CaseID: "500-0001", Interactive: true})
	require.NoError(t, g.runInteractive(ctx))
	assert.True(t, loaded)
}

func TestCaseFromConfigDefault(t *testing.T) {
	db := sampleDB(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("case:\n  default_id: 500-0001\n"), 0o600))

	out := mustExecute(t, "assign", "--db", db, "--config-file", path, "--contact", "con-002")
	assert.Equal(t, "Maria Gonzalez assigned to case 00001026\n", out)

	out = mustExecute(t, "assign", "--db", db, "--config-file", path, "--case", "500-0003", "--contact", "con-013")
	assert.Equal(t, "Ben Castillo assigned to case 00001028\n", out, "--case wins over the configured default")

	var h historyReport
	require.NoError(t, json.Unmarshal([]byte(mustExecute(t, "history", "--db", db, "--config-file", path, "-o", "json")), &h))
	assert.Equal(t, "500-0001", h.CaseID)
	require.Len(t, h.Assignments, 1)
	assert.Equal(t, "con-002", h.Assignments[0].ContactID)
}

package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	Name  string   `json:"name" yaml:"name" toml:"name"`
	Tags  []string `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	Score float64  `json:"score,omitempty" yaml:"score,omitempty" toml:"score,omitempty"`
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Format
	}{
		{name: "json object", input: `{"name": "a"}`, want: FormatJSON},
		{name: "json array", input: `[1, 2, 3]`, want: FormatJSON},
		{name: "ndjson", input: "{\"name\":\"a\"}\n{\"name\":\"b\"}", want: FormatNDJSON},
		{name: "yaml", input: "name: a\ntags:\n  - x", want: FormatYAML},
		{name: "yaml list", input: "- name: a\n- name: b", want: FormatYAML},
		{name: "multi yaml", input: "name: a\n---\nname: b", want: FormatMultiYAML},
		{name: "toml section", input: "[server]\nhost = \"x\"", want: FormatTOML},
		{name: "toml pairs", input: "name = \"a\"\nscore = 2.5", want: FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFormat(tt.input))
		})
	}
}

func TestDecodeDocumentsEachFormat(t *testing.T) {
	inputs := map[string]string{
		"json": `{"name": "Jordan", "tags": ["vip"]}`,
		"yaml": "name: Jordan\ntags: [vip]",
		"toml": "name = \"Jordan\"\ntags = [\"vip\"]",
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			docs, err := DecodeDocuments[person](input)
			require.NoError(t, err)
			require.Len(t, docs, 1)
			assert.Equal(t, person{Name: "Jordan", Tags: []string{"vip"}}, docs[0])
		})
	}
}

func TestDecodeDocumentsMulti(t *testing.T) {
	docs, err := DecodeDocuments[person]("---\nname: a\n---\n---\nname: b\nscore: 3\n")
	require.NoError(t, err)
	require.Len(t, docs, 2, "empty documents are skipped")
	assert.Equal(t, "b", docs[1].Name)
	assert.Equal(t, 3.0, docs[1].Score)

	docs, err = DecodeDocuments[person]("{\"name\":\"a\"}\n\n{\"name\":\"b\"}\n")
	require.NoError(t, err)
	require.Len(t, docs, 2)
}

func TestDecodeDocumentsErrors(t *testing.T) {
	_, err := DecodeDocuments[person]("   ")
	require.Error(t, err)

	_, err = DecodeDocuments[person](`{"name": `)
	require.ErrorContains(t, err, "invalid JSON")

	_, err = DecodeDocuments[person]("{\"name\":\"a\"}\n{\"name\":")
	require.ErrorContains(t, err, "line 2")
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Ann\n"), 0o600))

	docs, err := DecodeFile[person](path)
	require.NoError(t, err)
	assert.Equal(t, []person{{Name: "Ann"}}, docs)

	_, err = DecodeFile[person](filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	got, err := Normalize(person{Name: "Ann", Score: 1.5})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Ann", "score": 1.5}, got)

	got, err = Normalize([]person{{Name: "A"}})
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"name": "A"}}, got)

	var nilSlice []person
	got, err = Normalize(nilSlice)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = Normalize(make(chan int))
	require.Error(t, err)
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "toml", FormatTOML.String())
	assert.Equal(t, "Format(42)", Format(42).String())
}

package encoding

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestParseJSON(t *testing.T) {
	got, err := ParseJSON[sample]([]byte(`{"name":"a","count":2,"extra":true}`))
	require.NoError(t, err)
	assert.Equal(t, sample{Name: "a", Count: 2}, *got)

	_, err = ParseJSON[sample]([]byte(`{"name":`))
	require.Error(t, err)

	_, err = ParseJSON[sample]([]byte(`{"name":"a"} {"name":"b"}`))
	require.Error(t, err)
}

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")

	require.NoError(t, SaveJSON(path, []sample{{Name: "x", Count: 1}}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := LoadJSON[[]sample](path)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []sample{{Name: "x", Count: 1}}, *got)
}

func TestLoadJSON_Missing(t *testing.T) {
	got, err := LoadJSON[sample](filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, FileExists(filepath.Join(t.TempDir(), "missing.json")))
}

func TestParseJSONInto_KeepsAbsentFields(t *testing.T) {
	got := sample{Name: "default", Count: 7}

	require.NoError(t, ParseJSONInto([]byte(`{"count":1}`), &got))
	assert.Equal(t, sample{Name: "default", Count: 1}, got)

	require.Error(t, ParseJSONInto([]byte(`{"count":"x"}`), &got))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sample{Name: "a", Count: 2}))

	assert.Equal(t, "{\n  \"name\": \"a\",\n  \"count\": 2\n}\n", buf.String())
}

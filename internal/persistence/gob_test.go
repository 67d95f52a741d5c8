package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Name  string
	Items []string
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "breeds", "settings.gob")
	want := snapshot{Name: "breeds", Items: []string{"lab", "poodle"}}

	require.NoError(t, SaveGob(path, want))

	var got snapshot
	require.NoError(t, LoadGob(path, &got))
	assert.Equal(t, want, got)
}

func TestSaveOverwritesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.gob")

	require.NoError(t, SaveGob(path, snapshot{Name: "v1"}))
	require.NoError(t, SaveGob(path, snapshot{Name: "v2"}))

	var got snapshot
	require.NoError(t, LoadGob(path, &got))
	assert.Equal(t, "v2", got.Name)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "snap.gob", entries[0].Name())
}

func TestSaveUnencodableRemovesTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.gob")

	err := SaveGob(path, func() {})
	require.Error(t, err)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestLoadMissingFile(t *testing.T) {
	var got snapshot
	err := LoadGob(filepath.Join(t.TempDir(), "missing.gob"), &got)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.gob")
	require.NoError(t, os.WriteFile(path, []byte("not gob"), 0600))

	var got snapshot
	err := LoadGob(path, &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, os.ErrNotExist)
}

package progress

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	store, err := NewStore()
	require.NoError(t, err)
	return store
}

func TestResumeUnknownPath(t *testing.T) {
	store := newTestStore(t)
	assert.Equal(t, 0, store.Resume("/nowhere/book.epub", 100))
}

func TestCheckpointFlushRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	store1, err := NewStore()
	require.NoError(t, err)

	store1.Checkpoint("/books/a.pdf", 42, 500)
	store1.Checkpoint("/books/b.epub", 7, 90)
	require.NoError(t, store1.Flush())

	// A fresh instance sees the persisted mapping.
	store2, err := NewStore()
	require.NoError(t, err)
	assert.Equal(t, 42, store2.Resume("/books/a.pdf", 500))
	assert.Equal(t, 7, store2.Resume("/books/b.epub", 90))
}

func TestCheckpointIsNotDurableUntilFlush(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	store1, err := NewStore()
	require.NoError(t, err)
	store1.Checkpoint("/books/a.pdf", 42, 500)

	store2, err := NewStore()
	require.NoError(t, err)
	assert.Equal(t, 0, store2.Resume("/books/a.pdf", 500))
}

func TestCheckpointUpdatesOnlyItsPath(t *testing.T) {
	store := newTestStore(t)

	store.Checkpoint("/books/a.pdf", 10, 100)
	store.Checkpoint("/books/b.epub", 20, 200)
	store.Checkpoint("/books/a.pdf", 15, 100)

	rec, ok := store.Lookup("/books/a.pdf")
	require.True(t, ok)
	assert.Equal(t, 15, rec.WordIndex)

	rec, ok = store.Lookup("/books/b.epub")
	require.True(t, ok)
	assert.Equal(t, 20, rec.WordIndex)
}

func TestResumeStaleStreamLength(t *testing.T) {
	store := newTestStore(t)
	store.Checkpoint("/books/a.pdf", 42, 500)

	// Document re-extracted to a different length: position is stale.
	assert.Equal(t, 0, store.Resume("/books/a.pdf", 499))
	assert.Equal(t, 42, store.Resume("/books/a.pdf", 500))
}

func TestResumeOutOfRangeIndex(t *testing.T) {
	store := newTestStore(t)
	store.Checkpoint("/books/a.pdf", 600, 0) // no recorded length

	assert.Equal(t, 0, store.Resume("/books/a.pdf", 500))
}

func TestCorruptStoreYieldsEmptyMapping(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	dir := filepath.Join(tmpDir, "blink")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, storeFileName), []byte("{not json"), 0644))

	store, err := NewStore()
	require.NoError(t, err, "corruption must be absorbed, not surfaced")
	assert.Empty(t, store.All())
}

func TestFlushWritesValidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmpDir)

	store, err := NewStore()
	require.NoError(t, err)
	store.Checkpoint("/books/a.pdf", 3, 30)
	require.NoError(t, store.Flush())

	data, err := os.ReadFile(filepath.Join(tmpDir, "blink", storeFileName))
	require.NoError(t, err)

	var decoded map[string]Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, Record{WordIndex: 3, StreamLen: 30}, decoded["/books/a.pdf"])

	// No stray temp files left behind.
	entries, err := os.ReadDir(filepath.Join(tmpDir, "blink"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	store.Checkpoint("/books/a.pdf", 1, 10)
	store.Checkpoint("/books/b.epub", 2, 20)

	store.Clear("/books/a.pdf")
	_, ok := store.Lookup("/books/a.pdf")
	assert.False(t, ok)
	_, ok = store.Lookup("/books/b.epub")
	assert.True(t, ok)

	store.ClearAll()
	assert.Empty(t, store.All())
}

func TestNormalizePath(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "book.epub")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	direct, err := NormalizePath(file)
	require.NoError(t, err)

	// A dotted spelling of the same file resolves to the same key.
	sep := string(filepath.Separator)
	dotted, err := NormalizePath(tmpDir + sep + "." + sep + "book.epub")
	require.NoError(t, err)
	assert.Equal(t, direct, dotted)

	// Relative paths resolve against the working directory.
	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := NormalizePath("some.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "some.pdf"), rel)
}

// Package progress persists per-document reading positions as a single
// JSON mapping keyed by normalized absolute path.
package progress

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

const storeFileName = "progress.json"

// Record stores the resume position for one document. StreamLen is the
// token count at save time; a mismatch on reload means the document was
// re-extracted differently and the position is stale.
type Record struct {
	WordIndex int `json:"word_index"`
	StreamLen int `json:"stream_len,omitempty"`
}

// Store manages persistent reading positions. Checkpoints mutate memory
// only; Flush writes the whole mapping atomically. Entries are never
// removed implicitly.
type Store struct {
	path string
	mu   sync.RWMutex
	data map[string]Record
}

// NewStore creates or loads the store under XDG_STATE_HOME/blink. A
// missing or corrupt file yields an empty mapping, never an error.
func NewStore() (*Store, error) {
	dir := stateDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	store := &Store{
		path: filepath.Join(dir, storeFileName),
		data: make(map[string]Record),
	}
	if err := store.load(); err != nil {
		store.data = make(map[string]Record)
	}
	return store, nil
}

// StateDir returns the directory holding the store and session logs:
// XDG_STATE_HOME/blink or ~/.local/state/blink.
func StateDir() string {
	return stateDir()
}

func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "blink")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "blink")
}

// NormalizePath resolves a document path to its canonical absolute form
// so the same file reached through different spellings shares a record.
func NormalizePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	abs = filepath.Clean(abs)
	if runtime.GOOS == "windows" {
		abs = strings.ToLower(abs)
	}
	return abs, nil
}

// Lookup returns the saved record for a normalized path.
func (s *Store) Lookup(path string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[path]
	return rec, ok
}

// Resume returns the saved cursor for path, or 0 when nothing was saved
// or the document has visibly changed since the position was recorded.
func (s *Store) Resume(path string, streamLen int) int {
	rec, ok := s.Lookup(path)
	if !ok {
		return 0
	}
	if rec.StreamLen != 0 && rec.StreamLen != streamLen {
		return 0
	}
	if rec.WordIndex < 0 || rec.WordIndex >= streamLen {
		return 0
	}
	return rec.WordIndex
}

// Checkpoint records the position for path in memory. Durable only
// after Flush.
func (s *Store) Checkpoint(path string, wordIndex, streamLen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[path] = Record{WordIndex: wordIndex, StreamLen: streamLen}
}

// Clear removes the record for path from memory.
func (s *Store) Clear(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, path)
}

// ClearAll removes every record from memory.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]Record)
}

// All returns a copy of the mapping.
func (s *Store) All() map[string]Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Record, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

// Flush serializes the full mapping, replacing the previous file via a
// temp-file rename so a crash never leaves a truncated store.
func (s *Store) Flush() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), storeFileName+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, &s.data)
}

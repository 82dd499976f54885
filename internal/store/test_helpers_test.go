package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/novan/internal/lexicon"
	"github.com/roach88/novan/internal/phon"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestEntry builds a valid entry with a fixed URI.
func createTestEntry(t *testing.T, uri, wordform string, opts ...lexicon.EntryOption) *lexicon.Entry {
	t.Helper()
	opts = append([]lexicon.EntryOption{lexicon.WithURI(uri)}, opts...)
	e, err := lexicon.NewEntry(phon.Novan(), wordform, opts...)
	if err != nil {
		t.Fatalf("NewEntry(%q) failed: %v", wordform, err)
	}
	return e
}

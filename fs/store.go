// Package fs provides file-based storage for the DevDocs cache.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/devdocs"
)

// File and directory names inside the cache root.
const (
	IndexFile  = "index.json"
	EntriesDir = "entries"
)

// Ensure Store implements devdocs.Store at compile time.
var _ devdocs.Store = (*Store)(nil)

// Store implements devdocs.Store on top of a cache directory:
//
//	<root>/index.json          JSON array of tracked docs
//	<root>/entries/<slug>.json raw entries payload per doc
//
// Writes go to a temporary file that is renamed into place, so readers
// never observe a partially written file.
type Store struct {
	root string
}

// NewStore creates a new Store rooted at dir. Call Open before use.
func NewStore(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the cache root directory.
func (s *Store) Root() string {
	return s.root
}

// IndexPath returns the path of the local index file.
func (s *Store) IndexPath() string {
	return filepath.Join(s.root, IndexFile)
}

// EntriesPath returns the path of the entries file for slug.
func (s *Store) EntriesPath(slug string) string {
	return filepath.Join(s.root, EntriesDir, slug+".json")
}

// Open makes the cache directory usable: it creates the root and entries
// directories and an empty index if they are missing. Existing files are
// left alone, so Open is safe to call on every startup.
func (s *Store) Open() error {
	if s.root == "" {
		return devdocs.Errorf(devdocs.EINVALID, "cache directory required")
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return err
	}

	if _, err := os.Stat(s.IndexPath()); errors.Is(err, os.ErrNotExist) {
		if err := writeFileAtomic(s.IndexPath(), []byte("[]")); err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	return os.MkdirAll(filepath.Join(s.root, EntriesDir), 0755)
}

// Index reads the local index in on-disk order.
func (s *Store) Index(ctx context.Context) ([]*devdocs.Doc, error) {
	data, err := os.ReadFile(s.IndexPath())
	if err != nil {
		return nil, err
	}

	docs := []*devdocs.Doc{}
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, devdocs.WrapError(devdocs.EINTERNAL, err, "corrupt index file %s", s.IndexPath())
	}
	return docs, nil
}

// WriteIndex replaces the local index with docs.
func (s *Store) WriteIndex(ctx context.Context, docs []*devdocs.Doc) error {
	if docs == nil {
		docs = []*devdocs.Doc{}
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return err
	}
	return writeFileAtomic(s.IndexPath(), data)
}

// Entries reads the raw entries payload for slug.
func (s *Store) Entries(ctx context.Context, slug string) ([]byte, error) {
	if err := validateSlug(slug); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.EntriesPath(slug))
	if errors.Is(err, os.ErrNotExist) {
		return nil, devdocs.Errorf(devdocs.ENOTFOUND, "no entries for %s", slug)
	}
	return data, err
}

// WriteEntries stores the raw entries payload for slug verbatim.
func (s *Store) WriteEntries(ctx context.Context, slug string, data []byte) error {
	if err := validateSlug(slug); err != nil {
		return err
	}
	return writeFileAtomic(s.EntriesPath(slug), data)
}

// validateSlug rejects slugs that would escape the entries directory.
func validateSlug(slug string) error {
	if slug == "" || slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return devdocs.Errorf(devdocs.EINVALID, "invalid slug %q", slug)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}

	// Rename is atomic within a filesystem
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

package mock

import (
	"context"

	"github.com/fwojciec/devdocs"
)

var _ devdocs.Store = (*Store)(nil)

// Store is a mock implementation of devdocs.Store.
type Store struct {
	OpenFn         func() error
	IndexFn        func(ctx context.Context) ([]*devdocs.Doc, error)
	WriteIndexFn   func(ctx context.Context, docs []*devdocs.Doc) error
	EntriesFn      func(ctx context.Context, slug string) ([]byte, error)
	WriteEntriesFn func(ctx context.Context, slug string, data []byte) error
}

func (s *Store) Open() error {
	return s.OpenFn()
}

func (s *Store) Index(ctx context.Context) ([]*devdocs.Doc, error) {
	return s.IndexFn(ctx)
}

func (s *Store) WriteIndex(ctx context.Context, docs []*devdocs.Doc) error {
	return s.WriteIndexFn(ctx, docs)
}

func (s *Store) Entries(ctx context.Context, slug string) ([]byte, error) {
	return s.EntriesFn(ctx, slug)
}

func (s *Store) WriteEntries(ctx context.Context, slug string, data []byte) error {
	return s.WriteEntriesFn(ctx, slug, data)
}

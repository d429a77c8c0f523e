package mock

import (
	"context"

	"github.com/fwojciec/devdocs"
)

var _ devdocs.Source = (*Source)(nil)

// Source is a mock implementation of devdocs.Source.
type Source struct {
	FetchIndexFn   func(ctx context.Context) ([]*devdocs.Doc, error)
	FetchEntriesFn func(ctx context.Context, slug string) ([]byte, error)
}

func (s *Source) FetchIndex(ctx context.Context) ([]*devdocs.Doc, error) {
	return s.FetchIndexFn(ctx)
}

func (s *Source) FetchEntries(ctx context.Context, slug string) ([]byte, error) {
	return s.FetchEntriesFn(ctx, slug)
}

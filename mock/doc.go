package mock

import (
	"context"

	"github.com/fwojciec/devdocs"
)

var _ devdocs.DocService = (*DocService)(nil)

// DocService is a mock implementation of devdocs.DocService.
type DocService struct {
	FindDocsFn    func(ctx context.Context, filter devdocs.DocFilter) ([]*devdocs.Doc, error)
	LookupDocFn   func(ctx context.Context, slug string) (*devdocs.Doc, bool, error)
	FindEntriesFn func(ctx context.Context, slug string, filter devdocs.EntryFilter) ([]*devdocs.Entry, error)
}

func (s *DocService) FindDocs(ctx context.Context, filter devdocs.DocFilter) ([]*devdocs.Doc, error) {
	return s.FindDocsFn(ctx, filter)
}

func (s *DocService) LookupDoc(ctx context.Context, slug string) (*devdocs.Doc, bool, error) {
	return s.LookupDocFn(ctx, slug)
}

func (s *DocService) FindEntries(ctx context.Context, slug string, filter devdocs.EntryFilter) ([]*devdocs.Entry, error) {
	return s.FindEntriesFn(ctx, slug, filter)
}

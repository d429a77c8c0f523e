package mock

import (
	"context"

	"github.com/fwojciec/devdocs"
)

var (
	_ devdocs.PageSource  = (*PageSource)(nil)
	_ devdocs.PageService = (*PageService)(nil)
	_ devdocs.Extractor   = (*Extractor)(nil)
	_ devdocs.Converter   = (*Converter)(nil)
)

// PageSource is a mock implementation of devdocs.PageSource.
type PageSource struct {
	FetchPageFn func(ctx context.Context, slug, path string) (string, error)
}

func (s *PageSource) FetchPage(ctx context.Context, slug, path string) (string, error) {
	return s.FetchPageFn(ctx, slug, path)
}

// PageService is a mock implementation of devdocs.PageService.
type PageService struct {
	PageFn func(ctx context.Context, slug, path string) (*devdocs.Page, error)
}

func (s *PageService) Page(ctx context.Context, slug, path string) (*devdocs.Page, error) {
	return s.PageFn(ctx, slug, path)
}

// Extractor is a mock implementation of devdocs.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL, fragment string) (*devdocs.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL, fragment string) (*devdocs.ExtractResult, error) {
	return e.ExtractFn(html, pageURL, fragment)
}

// Converter is a mock implementation of devdocs.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

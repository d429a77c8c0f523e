package devdocs

import "context"

// Page is the rendered content of one entry.
type Page struct {
	Slug    string
	Path    string
	URL     string
	Title   string
	Content string // Markdown
}

// PageSource retrieves entry content pages from DevDocs.
type PageSource interface {
	// FetchPage returns the HTML of the page holding the entry at path.
	FetchPage(ctx context.Context, slug, path string) (string, error)
}

// PageService renders entries as Markdown.
type PageService interface {
	// Page fetches and renders the entry at path within doc slug.
	Page(ctx context.Context, slug, path string) (*Page, error)
}

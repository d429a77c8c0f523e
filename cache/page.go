package cache

import (
	"context"
	"fmt"

	"github.com/fwojciec/devdocs"
)

// Page fetches the content of the entry at path and renders it as
// Markdown. Pages are not cached; every call goes to the network.
// When the page has no heading, the title falls back to the name of the
// matching cached entry.
func (c *Client) Page(ctx context.Context, slug, path string) (*devdocs.Page, error) {
	if c.pages == nil {
		return nil, devdocs.Errorf(devdocs.EINVALID, "page rendering not configured")
	}
	if slug == "" {
		return nil, devdocs.Errorf(devdocs.EINVALID, "doc slug required")
	}
	page, fragment := devdocs.SplitEntryPath(path)
	if page == "" {
		return nil, devdocs.Errorf(devdocs.EINVALID, "entry path required")
	}

	html, err := c.pages.FetchPage(ctx, slug, path)
	if err != nil {
		return nil, err
	}

	res, err := c.extractor.Extract(html, c.config.EntryURL(slug, page), fragment)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	content, err := c.converter.Convert(res.ContentHTML)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	title := res.Title
	if title == "" {
		title = c.entryName(ctx, slug, path)
	}

	return &devdocs.Page{
		Slug:    slug,
		Path:    path,
		URL:     c.config.EntryURL(slug, path),
		Title:   title,
		Content: content,
	}, nil
}

// entryName returns the name of the cached entry at path, if any.
func (c *Client) entryName(ctx context.Context, slug, path string) string {
	entries, err := c.FindEntries(ctx, slug, devdocs.EntryFilter{})
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if e.Path == path {
			return e.Name
		}
	}
	return ""
}

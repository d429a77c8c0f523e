package devdocs

import (
	"strings"
	"time"
)

// Default DevDocs endpoints and timings.
const (
	DefaultBaseURL       = "https://devdocs.io"
	DefaultIndexURL      = "https://devdocs.io/docs/docs.json"
	DefaultEntriesURL    = "https://devdocs.io/docs/%slug%/index.json"
	DefaultDocumentsURL  = "https://documents.devdocs.io"
	DefaultIndexTTL      = 86400 * time.Second
	DefaultFetchInterval = 500 * time.Millisecond
	DefaultTimeout       = 10 * time.Second
)

// SlugPlaceholder is substituted with a doc slug in Config.EntriesURL.
const SlugPlaceholder = "%slug%"

// Config holds the remote endpoints and timings used by the cache client.
// It is passed by value and never mutated after construction.
type Config struct {
	// BaseURL is the DevDocs site root, used to build links to entries.
	BaseURL string

	// IndexURL returns the JSON array of all available docs.
	IndexURL string

	// EntriesURL is a template containing SlugPlaceholder.
	EntriesURL string

	// DocumentsURL serves the HTML content of entries as
	// DocumentsURL/<slug>/<page>.html.
	DocumentsURL string

	// IndexTTL is how long an index run is considered fresh. The client
	// does not enforce it; callers decide when to re-index.
	IndexTTL time.Duration

	// FetchInterval is the minimum spacing between entry fetches.
	FetchInterval time.Duration

	// Timeout bounds each HTTP request.
	Timeout time.Duration
}

// DefaultConfig returns the configuration for the public DevDocs site.
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		IndexURL:      DefaultIndexURL,
		EntriesURL:    DefaultEntriesURL,
		DocumentsURL:  DefaultDocumentsURL,
		IndexTTL:      DefaultIndexTTL,
		FetchInterval: DefaultFetchInterval,
		Timeout:       DefaultTimeout,
	}
}

// ConfigForBaseURL returns DefaultConfig with every endpoint rooted at baseURL.
// Useful for mirrors and for tests against a fake server.
func ConfigForBaseURL(baseURL string) Config {
	baseURL = strings.TrimSuffix(baseURL, "/")
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.IndexURL = baseURL + "/docs/docs.json"
	cfg.EntriesURL = baseURL + "/docs/" + SlugPlaceholder + "/index.json"
	cfg.DocumentsURL = baseURL + "/documents"
	return cfg
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	if c.IndexURL == "" {
		return Errorf(EINVALID, "index URL required")
	}
	if c.EntriesURL == "" {
		return Errorf(EINVALID, "entries URL required")
	}
	if !strings.Contains(c.EntriesURL, SlugPlaceholder) {
		return Errorf(EINVALID, "entries URL %q must contain %s", c.EntriesURL, SlugPlaceholder)
	}
	if c.FetchInterval < 0 {
		return Errorf(EINVALID, "fetch interval must not be negative")
	}
	return nil
}

// EntriesURLFor returns the entries endpoint for a doc slug.
func (c Config) EntriesURLFor(slug string) string {
	return strings.ReplaceAll(c.EntriesURL, SlugPlaceholder, slug)
}

// EntryURL returns a browsable link to an entry within a doc.
func (c Config) EntryURL(slug, path string) string {
	return strings.TrimSuffix(c.BaseURL, "/") + "/" + slug + "/" + path
}

// PageURL returns the content page holding the entry at path. Any
// fragment in path is dropped.
func (c Config) PageURL(slug, path string) string {
	page, _ := SplitEntryPath(path)
	return strings.TrimSuffix(c.DocumentsURL, "/") + "/" + slug + "/" + page + ".html"
}

// SplitEntryPath splits an entry path such as "fmt/index#Println" into the
// page and the fragment naming the entry's anchor within it.
func SplitEntryPath(path string) (page, fragment string) {
	page, fragment, _ = strings.Cut(path, "#")
	return page, fragment
}

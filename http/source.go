// Package http provides HTTP implementations of devdocs.Source and
// devdocs.PageSource that talk to the DevDocs endpoints.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/devdocs"
)

// UserAgent is sent with every request.
const UserAgent = "devdocs-cache/1.0"

// Ensure Source implements devdocs.Source at compile time.
var (
	_ devdocs.Source     = (*Source)(nil)
	_ devdocs.PageSource = (*Source)(nil)
)

// Source retrieves the DevDocs index and entry listings over HTTP.
type Source struct {
	client  *http.Client
	config  devdocs.Config
	timeout time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to the config's Timeout, or devdocs.DefaultTimeout if unset.
func WithTimeout(d time.Duration) Option {
	return func(s *Source) {
		s.timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client. Its Timeout is kept.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		s.client = c
	}
}

// NewSource creates a new Source for the endpoints in cfg.
func NewSource(cfg devdocs.Config, opts ...Option) *Source {
	s := &Source{
		config:  cfg,
		timeout: cfg.Timeout,
	}
	if s.timeout <= 0 {
		s.timeout = devdocs.DefaultTimeout
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		s.client = &http.Client{
			Timeout: s.timeout,
		}
	}

	return s
}

// FetchIndex retrieves the list of every doc DevDocs offers.
func (s *Source) FetchIndex(ctx context.Context) ([]*devdocs.Doc, error) {
	body, err := s.get(ctx, s.config.IndexURL, "application/json")
	if err != nil {
		return nil, devdocs.WrapError(devdocs.EUNAVAILABLE, err, "fetch index")
	}

	var docs []*devdocs.Doc
	if err := json.Unmarshal(body, &docs); err != nil {
		return nil, devdocs.WrapError(devdocs.EUNAVAILABLE, err, "fetch index: malformed response")
	}
	return docs, nil
}

// FetchEntries retrieves the raw entries payload for slug.
func (s *Source) FetchEntries(ctx context.Context, slug string) ([]byte, error) {
	body, err := s.get(ctx, s.config.EntriesURLFor(slug), "application/json")
	if err != nil {
		return nil, devdocs.WrapError(devdocs.EUNAVAILABLE, err, "fetch entries for %s", slug)
	}
	if !json.Valid(body) {
		return nil, devdocs.Errorf(devdocs.EUNAVAILABLE, "fetch entries for %s: malformed response", slug)
	}
	return body, nil
}

// FetchPage retrieves the HTML page holding the entry at path.
func (s *Source) FetchPage(ctx context.Context, slug, path string) (string, error) {
	body, err := s.get(ctx, s.config.PageURL(slug, path), "text/html")
	if err != nil {
		return "", devdocs.WrapError(devdocs.EUNAVAILABLE, err, "fetch page %s for %s", path, slug)
	}
	return string(body), nil
}

func (s *Source) get(ctx context.Context, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", accept)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// Package cache provides the DevDocs cache client. It resolves requested
// doc identifiers, downloads the index and entry listings into a Store,
// and answers queries over the cached data.
package cache

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/devdocs"
)

var (
	_ devdocs.DocService  = (*Client)(nil)
	_ devdocs.PageService = (*Client)(nil)
)

// Client downloads DevDocs data into a local store and serves queries over it.
// It is not safe for concurrent indexing.
type Client struct {
	config  devdocs.Config
	source  devdocs.Source
	store   devdocs.Store
	runs    devdocs.RunService
	limiter devdocs.RateLimiter
	logger  *slog.Logger

	pages     devdocs.PageSource
	extractor devdocs.Extractor
	converter devdocs.Converter

	now func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithRunService records every index run in runs.
func WithRunService(runs devdocs.RunService) Option {
	return func(c *Client) {
		c.runs = runs
	}
}

// WithRateLimiter replaces the limiter used between entry fetches.
// Defaults to a Limiter with the config's FetchInterval.
func WithRateLimiter(l devdocs.RateLimiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithPages enables Page: content is fetched from source, cut to the
// entry by extractor and rendered by converter.
func WithPages(source devdocs.PageSource, extractor devdocs.Extractor, converter devdocs.Converter) Option {
	return func(c *Client) {
		c.pages = source
		c.extractor = extractor
		c.converter = converter
	}
}

// WithLogger sets the logger. Defaults to discarding all output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a Client and opens the store, creating the cache
// layout if it does not exist yet. No network access happens here.
func NewClient(cfg devdocs.Config, source devdocs.Source, store devdocs.Store, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: cfg,
		source: source,
		store:  store,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.limiter == nil {
		c.limiter = NewLimiter(cfg.FetchInterval)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if err := c.store.Open(); err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	return c, nil
}

// Config returns the client's configuration.
func (c *Client) Config() devdocs.Config {
	return c.config
}

// Resolve fetches the remote index and maps every bare identifier in
// requested to its highest available version. See devdocs.ResolveSlugs.
// A failed fetch is returned as an error, never as unresolved input.
func (c *Client) Resolve(ctx context.Context, requested []string) ([]string, error) {
	remote, err := c.source.FetchIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve versions: %w", err)
	}
	return devdocs.ResolveSlugs(remote, requested), nil
}

// Result holds the outcome of an index run.
type Result struct {
	RunID     string
	Resolved  []string
	Docs      []*devdocs.Doc
	Fetched   int
	Unchanged int
	Entries   int
	Bytes     int
}

// ProgressEvent reports progress during an index run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Slug      string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting index progress.
type ProgressFunc func(event ProgressEvent)

// Index downloads the docs named in requested. Bare names are resolved to
// their latest version against the same remote index that is then filtered
// and written as the local index. Entries are fetched one doc at a time,
// spaced by the rate limiter.
//
// The first failing entry fetch aborts the run and is returned; entries
// already written stay on disk. The progress callback may be nil.
func (c *Client) Index(ctx context.Context, requested []string, progress ProgressFunc) (result *Result, err error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	c.logger.Info("start indexing documentation", "requested", requested)

	result = &Result{}
	run, err := c.startRun(ctx, requested)
	if err != nil {
		return nil, err
	}
	if run != nil {
		result.RunID = run.ID
		defer func() {
			c.finishRun(ctx, run, result, err)
		}()
	}

	remote, err := c.source.FetchIndex(ctx)
	if err != nil {
		return result, fmt.Errorf("fetch index: %w", err)
	}

	result.Resolved = devdocs.ResolveSlugs(remote, requested)
	result.Docs = selectDocs(remote, result.Resolved)

	if err := c.store.WriteIndex(ctx, result.Docs); err != nil {
		return result, fmt.Errorf("write index: %w", err)
	}

	total := len(result.Docs)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	for i, doc := range result.Docs {
		if err := c.limiter.Wait(ctx); err != nil {
			return result, err
		}

		fetch, err := c.fetchEntries(ctx, doc.Slug)
		if err != nil {
			progress(ProgressEvent{Type: ProgressFailed, Completed: i, Total: total, Slug: doc.Slug, Error: err})
			return result, err
		}

		result.Fetched++
		result.Entries += fetch.Entries
		result.Bytes += fetch.Bytes
		if c.recordFetch(ctx, run, fetch) {
			result.Unchanged++
		}

		progress(ProgressEvent{Type: ProgressCompleted, Completed: i + 1, Total: total, Slug: doc.Slug})
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	c.logger.Info("index finished", "docs", total, "entries", result.Entries)

	return result, nil
}

// selectDocs keeps the remote docs whose slug is in slugs, in remote order.
// Duplicate slugs are kept once.
func selectDocs(remote []*devdocs.Doc, slugs []string) []*devdocs.Doc {
	want := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		want[s] = true
	}

	docs := []*devdocs.Doc{}
	for _, d := range remote {
		if want[d.Slug] {
			docs = append(docs, d)
			want[d.Slug] = false
		}
	}
	return docs
}

// fetchEntries downloads and persists the entries of one doc.
func (c *Client) fetchEntries(ctx context.Context, slug string) (*devdocs.Fetch, error) {
	c.logger.Info("fetching entries", "slug", slug)

	data, err := c.source.FetchEntries(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", slug, err)
	}

	idx, err := devdocs.ParseEntryIndex(data)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", slug, err)
	}

	if err := c.store.WriteEntries(ctx, slug, data); err != nil {
		return nil, fmt.Errorf("index %s: write entries: %w", slug, err)
	}

	c.logger.Info("fetched entries", "slug", slug, "entries", len(idx.Entries))

	return &devdocs.Fetch{
		Slug:        slug,
		Entries:     len(idx.Entries),
		Bytes:       len(data),
		ContentHash: computeHash(data),
		FetchedAt:   c.now().UTC(),
	}, nil
}

// computeHash computes a hash of the content using xxhash.
func computeHash(data []byte) string {
	return fmt.Sprintf("%x", xxhash.Sum64(data))
}

func (c *Client) startRun(ctx context.Context, requested []string) (*devdocs.Run, error) {
	if c.runs == nil {
		return nil, nil
	}

	run := &devdocs.Run{
		Requested: requested,
		Status:    devdocs.RunRunning,
		StartedAt: c.now().UTC(),
	}
	if err := c.runs.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

func (c *Client) finishRun(ctx context.Context, run *devdocs.Run, result *Result, runErr error) {
	upd := devdocs.RunUpdate{
		Resolved: result.Resolved,
		Status:   devdocs.RunSucceeded,
	}
	if runErr != nil {
		upd.Status = devdocs.RunFailed
		upd.Error = devdocs.ErrorMessage(runErr)
	}

	// History is best effort; a failed update must not mask the run's outcome.
	if _, err := c.runs.FinishRun(context.WithoutCancel(ctx), run.ID, upd); err != nil {
		c.logger.Warn("record run result", "run", run.ID, "err", err)
	}
}

// recordFetch stores fetch in the run history and reports whether the
// content is identical to the previous fetch of the same slug.
func (c *Client) recordFetch(ctx context.Context, run *devdocs.Run, fetch *devdocs.Fetch) (unchanged bool) {
	if run == nil {
		return false
	}

	prev, err := c.runs.FindFetches(ctx, devdocs.FetchFilter{Slug: &fetch.Slug, Limit: 1})
	if err == nil && len(prev) > 0 && prev[0].ContentHash == fetch.ContentHash {
		unchanged = true
	}

	fetch.RunID = run.ID
	if err := c.runs.CreateFetch(ctx, fetch); err != nil {
		c.logger.Warn("record fetch", "slug", fetch.Slug, "err", err)
	}
	return unchanged
}

// LastRun returns the most recent successful run for exactly requested,
// or for any request when requested is nil.
// Returns ENOTFOUND when no history is recorded.
func (c *Client) LastRun(ctx context.Context, requested []string) (*devdocs.Run, error) {
	if c.runs == nil {
		return nil, devdocs.Errorf(devdocs.ENOTFOUND, "run history disabled")
	}
	status := devdocs.RunSucceeded
	return c.runs.LastRun(ctx, devdocs.RunFilter{Status: &status, Requested: requested})
}

// Stale reports whether requested should be re-indexed: there is no
// successful run for it, or the last one is older than the config's IndexTTL.
func (c *Client) Stale(ctx context.Context, requested []string) (bool, error) {
	run, err := c.LastRun(ctx, requested)
	if devdocs.ErrorCode(err) == devdocs.ENOTFOUND {
		return true, nil
	} else if err != nil {
		return false, err
	}
	return run.Stale(c.now(), c.config.IndexTTL), nil
}

// FindDocs returns the cached docs matching filter, in on-disk order.
func (c *Client) FindDocs(ctx context.Context, filter devdocs.DocFilter) ([]*devdocs.Doc, error) {
	docs, err := c.store.Index(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Name != nil && *filter.Name != "" {
		docs = devdocs.FilterDocs(docs, *filter.Name)
	}
	return docs, nil
}

// LookupDoc returns the cached doc with the exact slug.
func (c *Client) LookupDoc(ctx context.Context, slug string) (*devdocs.Doc, bool, error) {
	docs, err := c.store.Index(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, d := range docs {
		if d.Slug == slug {
			return d, true, nil
		}
	}
	return nil, false, nil
}

// FindEntries returns the cached entries of a doc. With a name filter,
// entries are filtered and ranked by similarity to the raw filter string.
// A doc that was never fetched yields an empty slice.
func (c *Client) FindEntries(ctx context.Context, slug string, filter devdocs.EntryFilter) ([]*devdocs.Entry, error) {
	data, err := c.store.Entries(ctx, slug)
	if devdocs.ErrorCode(err) == devdocs.ENOTFOUND {
		return []*devdocs.Entry{}, nil
	} else if err != nil {
		return nil, err
	}

	idx, err := devdocs.ParseEntryIndex(data)
	if err != nil {
		return nil, err
	}

	entries := idx.Entries
	if entries == nil {
		entries = []*devdocs.Entry{}
	}
	if filter.Name != nil && *filter.Name != "" {
		entries = devdocs.SearchEntries(entries, *filter.Name)
	}
	if filter.Limit > 0 && len(entries) > filter.Limit {
		entries = entries[:filter.Limit]
	}
	return entries, nil
}

package devdocs

import (
	"context"
	"encoding/json"
)

// Doc describes one documentation set from the DevDocs index.
// Fields not modeled here are kept and written back verbatim.
type Doc struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Type    string `json:"type,omitempty"`
	Version string `json:"version,omitempty"`
	Release string `json:"release,omitempty"`
	Mtime   int64  `json:"mtime,omitempty"`

	raw json.RawMessage
}

// UnmarshalJSON decodes the known fields and retains the original bytes.
func (d *Doc) UnmarshalJSON(data []byte) error {
	type doc Doc
	var v doc
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = Doc(v)
	d.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the upstream bytes when the doc was decoded from them.
func (d Doc) MarshalJSON() ([]byte, error) {
	if d.raw != nil {
		return d.raw, nil
	}
	type doc Doc
	return json.Marshal(doc(d))
}

// Validate returns an error if the doc contains invalid fields.
func (d *Doc) Validate() error {
	if d.Slug == "" {
		return Errorf(EINVALID, "doc slug required")
	}
	return nil
}

// Entry is a single documented item (function, class, guide...) in a doc.
// Like Doc, unknown upstream fields survive a decode/encode cycle.
type Entry struct {
	Name string `json:"name"`
	Path string `json:"path,omitempty"`
	Type string `json:"type,omitempty"`

	raw json.RawMessage
}

// UnmarshalJSON decodes the known fields and retains the original bytes.
func (e *Entry) UnmarshalJSON(data []byte) error {
	type entry Entry
	var v entry
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*e = Entry(v)
	e.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the upstream bytes when the entry was decoded from them.
func (e Entry) MarshalJSON() ([]byte, error) {
	if e.raw != nil {
		return e.raw, nil
	}
	type entry Entry
	return json.Marshal(entry(e))
}

// EntryType groups entries of a doc under a heading.
type EntryType struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Slug  string `json:"slug"`
}

// EntryIndex is the entries listing of one doc as served by DevDocs.
type EntryIndex struct {
	Entries []*Entry     `json:"entries"`
	Types   []*EntryType `json:"types,omitempty"`
}

// ParseEntryIndex decodes a raw entries payload.
func ParseEntryIndex(data []byte) (*EntryIndex, error) {
	var idx EntryIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, Errorf(EINVALID, "malformed entries: %v", err)
	}
	return &idx, nil
}

// Source retrieves the DevDocs index and entry listings from the remote site.
type Source interface {
	// FetchIndex returns every doc DevDocs offers.
	FetchIndex(ctx context.Context) ([]*Doc, error)

	// FetchEntries returns the raw entries payload for a doc.
	FetchEntries(ctx context.Context, slug string) ([]byte, error)
}

// Store persists the local index and entries files.
type Store interface {
	// Open prepares the store for use. It is idempotent.
	Open() error

	// Index returns the locally cached docs in on-disk order.
	Index(ctx context.Context) ([]*Doc, error)

	// WriteIndex replaces the local index.
	WriteIndex(ctx context.Context, docs []*Doc) error

	// Entries returns the raw entries payload for a doc.
	// Returns ENOTFOUND if the doc has never been fetched.
	Entries(ctx context.Context, slug string) ([]byte, error)

	// WriteEntries stores the raw entries payload for a doc.
	WriteEntries(ctx context.Context, slug string, data []byte) error
}

// DocService serves read-only queries over the local cache.
type DocService interface {
	// FindDocs returns cached docs matching the filter, in on-disk order.
	FindDocs(ctx context.Context, filter DocFilter) ([]*Doc, error)

	// LookupDoc returns the cached doc with the exact slug.
	// A miss is reported through ok, not as an error.
	LookupDoc(ctx context.Context, slug string) (doc *Doc, ok bool, err error)

	// FindEntries returns the entries of a doc, filtered and ranked by
	// similarity when filter.Name is set. An unfetched doc has no entries.
	FindEntries(ctx context.Context, slug string, filter EntryFilter) ([]*Entry, error)
}

// DocFilter represents a filter for FindDocs.
type DocFilter struct {
	// Name keeps docs whose name contains it, case-insensitively.
	Name *string `json:"name"`
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	// Name keeps entries whose name contains it and ranks them by similarity.
	Name *string `json:"name"`

	Limit int `json:"limit"`
}

// RateLimiter spaces out requests to the remote site.
type RateLimiter interface {
	// Wait blocks until the next request may be sent.
	// Returns an error if the context is canceled first.
	Wait(ctx context.Context) error
}

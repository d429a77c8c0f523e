package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/devdocs"
)

// Ensure LoggingStore implements devdocs.Store.
var _ devdocs.Store = (*LoggingStore)(nil)

// LoggingStore wraps a Store with debug logging of cache writes.
// Reads are delegated without logging.
type LoggingStore struct {
	next   devdocs.Store
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next devdocs.Store, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Open delegates to the wrapped store.
func (s *LoggingStore) Open() error {
	return s.next.Open()
}

// Index delegates to the wrapped store.
func (s *LoggingStore) Index(ctx context.Context) ([]*devdocs.Doc, error) {
	return s.next.Index(ctx)
}

// WriteIndex delegates to the wrapped store and logs the write.
func (s *LoggingStore) WriteIndex(ctx context.Context, docs []*devdocs.Doc) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("write index",
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteIndex(ctx, docs)
}

// Entries delegates to the wrapped store.
func (s *LoggingStore) Entries(ctx context.Context, slug string) ([]byte, error) {
	return s.next.Entries(ctx, slug)
}

// WriteEntries delegates to the wrapped store and logs the write.
func (s *LoggingStore) WriteEntries(ctx context.Context, slug string, data []byte) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("write entries",
			"slug", slug,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteEntries(ctx, slug, data)
}

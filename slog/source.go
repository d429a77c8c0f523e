// Package slog provides log/slog decorators for devdocs services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/devdocs"
)

// Ensure LoggingSource implements devdocs.Source.
var _ devdocs.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source and logs every remote fetch.
type LoggingSource struct {
	next   devdocs.Source
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next devdocs.Source, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// FetchIndex delegates to the wrapped source and logs the operation.
func (s *LoggingSource) FetchIndex(ctx context.Context) (docs []*devdocs.Doc, err error) {
	defer func(begin time.Time) {
		s.logger.Info("fetch index",
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchIndex(ctx)
}

// FetchEntries delegates to the wrapped source and logs the operation.
func (s *LoggingSource) FetchEntries(ctx context.Context, slug string) (data []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Info("fetch entries",
			"slug", slug,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchEntries(ctx, slug)
}

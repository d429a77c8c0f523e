package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/devdocs"
)

// Ensure LoggingPageSource implements devdocs.PageSource.
var _ devdocs.PageSource = (*LoggingPageSource)(nil)

// LoggingPageSource wraps a PageSource and logs every page fetch.
type LoggingPageSource struct {
	next   devdocs.PageSource
	logger *slog.Logger
}

// NewLoggingPageSource creates a new LoggingPageSource.
func NewLoggingPageSource(next devdocs.PageSource, logger *slog.Logger) *LoggingPageSource {
	return &LoggingPageSource{next: next, logger: logger}
}

// FetchPage delegates to the wrapped source and logs the operation.
func (s *LoggingPageSource) FetchPage(ctx context.Context, slug, path string) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("fetch page",
			"slug", slug,
			"path", path,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchPage(ctx, slug, path)
}

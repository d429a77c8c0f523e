package main

import (
	"context"
	"io"

	"github.com/fwojciec/devdocs"
	"github.com/fwojciec/devdocs/cache"
)

// Indexer downloads docs into the cache and reports on past runs.
type Indexer interface {
	Resolve(ctx context.Context, requested []string) ([]string, error)
	Index(ctx context.Context, requested []string, progress cache.ProgressFunc) (*cache.Result, error)
	Stale(ctx context.Context, requested []string) (bool, error)
	LastRun(ctx context.Context, requested []string) (*devdocs.Run, error)
}

// Ensure cache.Client satisfies Indexer.
var _ Indexer = (*cache.Client)(nil)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Config   devdocs.Config
	CacheDir string
	Docs     devdocs.DocService
	Pages    devdocs.PageService
	Indexer  Indexer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	CacheDir string `name:"cache-dir" help:"Cache directory (default: $DEVDOCS_CACHE_DIR or ~/.devdocs)"`
	Verbose  bool   `short:"v" help:"Enable debug logging"`

	Index   IndexCmd   `cmd:"" help:"Download the index and entries for docs"`
	Resolve ResolveCmd `cmd:"" help:"Show which versions docs resolve to"`
	Docs    DocsCmd    `cmd:"" help:"List cached docs"`
	Doc     DocCmd     `cmd:"" help:"Show a cached doc"`
	Entries EntriesCmd `cmd:"" help:"Search the entries of a cached doc"`
	Page    PageCmd    `cmd:"" help:"Show an entry's documentation as Markdown"`
	Status  StatusCmd  `cmd:"" help:"Show cache location and last index run"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Docs     []string `arg:"" optional:"" help:"Doc slugs, with or without version (e.g. go python~3.12 react)"`
	DocsJSON string   `name:"docs-json" help:"Doc slugs as a JSON array"`
	Force    bool     `short:"f" help:"Re-index even if the cache is fresh"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	Docs []string `arg:"" help:"Doc slugs to resolve"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Query string `arg:"" optional:"" help:"Filter by name"`
}

// DocCmd is the "doc" subcommand.
type DocCmd struct {
	Slug string `arg:"" help:"Doc slug"`
}

// EntriesCmd is the "entries" subcommand.
type EntriesCmd struct {
	Slug  string `arg:"" help:"Doc slug"`
	Query string `arg:"" optional:"" help:"Search entries by name"`
	Limit int    `short:"n" default:"50" help:"Maximum entries to show (0 for all)"`
}

// PageCmd is the "page" subcommand.
type PageCmd struct {
	Slug string `arg:"" help:"Doc slug"`
	Path string `arg:"" help:"Entry path as listed by 'entries' (e.g. fmt/index#Println)"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

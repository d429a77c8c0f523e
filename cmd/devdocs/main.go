package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/devdocs"
	"github.com/fwojciec/devdocs/cache"
	"github.com/fwojciec/devdocs/fs"
	"github.com/fwojciec/devdocs/goquery"
	"github.com/fwojciec/devdocs/htmltomarkdown"
	devdocshttp "github.com/fwojciec/devdocs/http"
	devdocsslog "github.com/fwojciec/devdocs/slog"
	"github.com/fwojciec/devdocs/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine; variables may come from the environment.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Cache directory and history database path. Set before calling Run().
	CacheDir string
	DBPath   string

	// Remote configuration.
	Config devdocs.Config

	// SQLite database holding the index run history.
	DB *sqlite.DB

	// Client is wired during Run and kept for end-to-end testing.
	Client *cache.Client
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	cfg := devdocs.DefaultConfig()
	if base := os.Getenv("DEVDOCS_BASE_URL"); base != "" {
		cfg = devdocs.ConfigForBaseURL(base)
	}

	return &Main{
		CacheDir: defaultCacheDir(),
		DBPath:   os.Getenv("DEVDOCS_DB"),
		Config:   cfg,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Config: m.Config,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("devdocs"),
		kong.Description("Local cache of DevDocs documentation indexes."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'devdocs --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.CacheDir != "" {
		m.CacheDir = cli.CacheDir
	}
	if m.DBPath == "" {
		m.DBPath = filepath.Join(m.CacheDir, "history.db")
	}
	deps.CacheDir = m.CacheDir

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// The store creates the cache directory, so it is opened before the database.
	store := fs.NewStore(m.CacheDir)
	if err := store.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DEVDOCS_CACHE_DIR to use a different cache directory\n")
		return fmt.Errorf("failed to open cache at %q: %w", m.CacheDir, err)
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DEVDOCS_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	remote := devdocshttp.NewSource(m.Config)
	m.Client, err = cache.NewClient(m.Config,
		devdocsslog.NewLoggingSource(remote, logger),
		devdocsslog.NewLoggingStore(store, logger),
		cache.WithRunService(sqlite.NewRunService(m.DB)),
		cache.WithPages(
			devdocsslog.NewLoggingPageSource(remote, logger),
			goquery.NewExtractor(),
			htmltomarkdown.NewConverter(),
		),
		cache.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	deps.Docs = m.Client
	deps.Pages = m.Client
	deps.Indexer = m.Client

	return kongCtx.Run(deps)
}

func defaultCacheDir() string {
	if dir := os.Getenv("DEVDOCS_CACHE_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".devdocs"
	}
	return filepath.Join(home, ".devdocs")
}

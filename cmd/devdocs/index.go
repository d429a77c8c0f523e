package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/devdocs"
	"github.com/fwojciec/devdocs/cache"
)

// requested returns the doc identifiers from arguments and --docs-json.
func (c *IndexCmd) requested() []string {
	docs := append([]string{}, c.Docs...)
	if c.DocsJSON != "" {
		docs = append(docs, devdocs.ParseDocList(c.DocsJSON)...)
	}
	return docs
}

// Run executes the index command.
func (c *IndexCmd) Run(deps *Dependencies) error {
	requested := c.requested()
	if len(requested) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no docs requested. Pass slugs as arguments or --docs-json '[\"go\"]'.")
		return devdocs.Errorf(devdocs.EINVALID, "no docs requested")
	}

	if !c.Force {
		stale, err := deps.Indexer.Stale(deps.Ctx, requested)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", devdocs.ErrorMessage(err))
			return err
		}
		if !stale {
			fmt.Fprintf(deps.Stdout, "Index for %s is fresh (TTL %s). Use --force to re-index.\n",
				strings.Join(requested, ", "), deps.Config.IndexTTL)
			return nil
		}
	}

	progress := func(event cache.ProgressEvent) {
		switch event.Type {
		case cache.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d docs\n", event.Total)
		case cache.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, event.Slug)
		case cache.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  failed %s: %s\n", event.Slug, devdocs.ErrorMessage(event.Error))
		case cache.ProgressFinished:
			// Summary printed after indexing completes
		}
	}

	begin := time.Now()
	result, err := deps.Indexer.Index(deps.Ctx, requested, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", devdocs.ErrorMessage(err))
		return err
	}

	if missing := missingSlugs(result); len(missing) > 0 {
		fmt.Fprintf(deps.Stderr, "warning: not available on DevDocs: %s\n", strings.Join(missing, ", "))
	}

	fmt.Fprintf(deps.Stdout, "Indexed %d docs (%d entries, %s", result.Fetched, result.Entries, cache.FormatBytes(result.Bytes))
	if result.Unchanged > 0 {
		fmt.Fprintf(deps.Stdout, ", %d unchanged", result.Unchanged)
	}
	fmt.Fprintf(deps.Stdout, ") in %s\n", time.Since(begin).Round(time.Millisecond))

	return nil
}

// missingSlugs returns resolved identifiers that matched no remote doc.
func missingSlugs(result *cache.Result) []string {
	found := make(map[string]bool, len(result.Docs))
	for _, d := range result.Docs {
		found[d.Slug] = true
	}
	var missing []string
	for _, s := range result.Resolved {
		if !found[s] {
			missing = append(missing, s)
		}
	}
	return missing
}

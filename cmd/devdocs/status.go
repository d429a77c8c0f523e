package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/devdocs"
	"github.com/fwojciec/devdocs/cache"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Cache: %s\n", deps.CacheDir)

	run, err := deps.Indexer.LastRun(deps.Ctx, nil)
	if devdocs.ErrorCode(err) == devdocs.ENOTFOUND {
		fmt.Fprintln(deps.Stdout, "No successful index runs. Use 'devdocs index' to fetch docs.")
		return nil
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", devdocs.ErrorMessage(err))
		return err
	}

	now := time.Now()
	fmt.Fprintf(deps.Stdout, "Last run: %s (%s)\n", run.FinishedAt.Local().Format(time.DateTime), cache.FormatAge(now.Sub(run.FinishedAt)))
	fmt.Fprintf(deps.Stdout, "Docs: %s\n", strings.Join(run.Resolved, ", "))
	if run.Stale(now, deps.Config.IndexTTL) {
		fmt.Fprintln(deps.Stdout, "Stale: yes (run 'devdocs index' to refresh)")
	} else {
		fmt.Fprintln(deps.Stdout, "Stale: no")
	}
	return nil
}

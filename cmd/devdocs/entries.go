package main

import (
	"fmt"

	"github.com/fwojciec/devdocs"
)

// Run executes the entries command.
func (c *EntriesCmd) Run(deps *Dependencies) error {
	filter := devdocs.EntryFilter{Limit: c.Limit}
	if c.Query != "" {
		filter.Name = &c.Query
	}

	entries, err := deps.Docs.FindEntries(deps.Ctx, c.Slug, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", devdocs.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintf(deps.Stdout, "No entries found for %s. Use 'devdocs index %s' if it has not been fetched.\n", c.Slug, c.Slug)
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", e.Name, e.Type, deps.Config.EntryURL(c.Slug, e.Path))
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/fwojciec/devdocs"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	var filter devdocs.DocFilter
	if c.Query != "" {
		filter.Name = &c.Query
	}

	docs, err := deps.Docs.FindDocs(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", devdocs.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		if c.Query != "" {
			fmt.Fprintf(deps.Stdout, "No cached docs match %q.\n", c.Query)
			return nil
		}
		fmt.Fprintln(deps.Stdout, "No docs cached. Use 'devdocs index' to fetch some.")
		return nil
	}

	for _, d := range docs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", d.Slug, d.Name, d.Release)
	}
	return nil
}

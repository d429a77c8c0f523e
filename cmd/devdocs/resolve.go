package main

import (
	"fmt"

	"github.com/fwojciec/devdocs"
)

// Run executes the resolve command.
func (c *ResolveCmd) Run(deps *Dependencies) error {
	resolved, err := deps.Indexer.Resolve(deps.Ctx, c.Docs)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", devdocs.ErrorMessage(err))
		return err
	}

	for i, slug := range resolved {
		if i >= len(c.Docs) || slug == c.Docs[i] {
			fmt.Fprintln(deps.Stdout, slug)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s -> %s\n", c.Docs[i], slug)
	}
	return nil
}

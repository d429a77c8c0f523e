package main

import (
	"fmt"

	"github.com/fwojciec/devdocs"
)

// Run executes the page command.
func (c *PageCmd) Run(deps *Dependencies) error {
	page, err := deps.Pages.Page(deps.Ctx, c.Slug, c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", devdocs.ErrorMessage(err))
		return err
	}

	if page.Title != "" {
		fmt.Fprintf(deps.Stdout, "# %s\n\n", page.Title)
	}
	fmt.Fprintln(deps.Stdout, page.Content)
	fmt.Fprintf(deps.Stdout, "\nSource: %s\n", page.URL)
	return nil
}

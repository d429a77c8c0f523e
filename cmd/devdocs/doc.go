package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/devdocs"
)

// Run executes the doc command.
func (c *DocCmd) Run(deps *Dependencies) error {
	doc, ok, err := deps.Docs.LookupDoc(deps.Ctx, c.Slug)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", devdocs.ErrorMessage(err))
		return err
	}
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: doc %q not cached. Use 'devdocs docs' to see cached docs.\n", c.Slug)
		return devdocs.Errorf(devdocs.ENOTFOUND, "doc %q not cached", c.Slug)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/lithoslabs/evidence"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	result, err := deps.Locator.Locate(deps.Ctx, evidence.DocumentKind(c.Kind), c.URL, c.Project)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", evidence.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}

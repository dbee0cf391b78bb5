package main

import (
	"encoding/json"
	"fmt"

	"github.com/lithoslabs/evidence"
)

// Run executes the get command.
func (c *GetCmd) Run(deps *Dependencies) error {
	rec, err := deps.Locator.Lookup(deps.Ctx, c.URL)
	if err != nil {
		if evidence.ErrorCode(err) == evidence.ENOTFOUND {
			fmt.Fprintf(deps.Stdout, "no highlights stored for %s\n", c.URL)
			return nil
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", evidence.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}

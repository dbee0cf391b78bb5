package main

import (
	"fmt"
	"net/http"

	evhttp "github.com/lithoslabs/evidence/http"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	srv := evhttp.NewServer(deps.Locator, deps.Logger)

	deps.Logger.Info("starting server", "addr", c.Addr)
	fmt.Fprintf(deps.Stdout, "listening on %s\n", c.Addr)

	if err := http.ListenAndServe(c.Addr, srv); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

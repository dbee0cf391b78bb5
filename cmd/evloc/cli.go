package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/lithoslabs/evidence"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Locator *evidence.Locator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Extract and locate claims in a document"`
	Get     GetCmd     `cmd:"" help:"Show stored highlights for a document URL"`
	Serve   ServeCmd   `cmd:"" help:"Run the highlight extraction API server"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Kind    string `arg:"" enum:"pdf,html" help:"Document kind (pdf or html)"`
	URL     string `arg:"" help:"Document URL"`
	Project string `short:"p" help:"Project ID for metric write-back"`
}

// GetCmd is the "get" subcommand.
type GetCmd struct {
	URL string `arg:"" help:"Document URL"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `default:":8080" help:"Listen address"`
}

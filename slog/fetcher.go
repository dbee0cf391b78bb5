// Package slog provides logging decorators for evidence services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lithoslabs/evidence"
)

// Ensure LoggingFetcher implements evidence.Fetcher.
var _ evidence.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with operation logging.
type LoggingFetcher struct {
	next   evidence.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next evidence.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (data []byte, err error) {
	defer func(begin time.Time) {
		f.logger.Info("document fetch",
			"url", url,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

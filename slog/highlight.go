package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lithoslabs/evidence"
)

// Ensure LoggingHighlightService implements evidence.HighlightService.
var _ evidence.HighlightService = (*LoggingHighlightService)(nil)

// LoggingHighlightService wraps a HighlightService with operation logging.
type LoggingHighlightService struct {
	next   evidence.HighlightService
	logger *slog.Logger
}

// NewLoggingHighlightService creates a new LoggingHighlightService.
func NewLoggingHighlightService(next evidence.HighlightService, logger *slog.Logger) *LoggingHighlightService {
	return &LoggingHighlightService{next: next, logger: logger}
}

// FindHighlightsByURL delegates to the wrapped service and logs the operation.
func (s *LoggingHighlightService) FindHighlightsByURL(ctx context.Context, documentURL string) (rec *evidence.HighlightRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Info("highlight lookup",
			"url", documentURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindHighlightsByURL(ctx, documentURL)
}

// UpsertHighlights delegates to the wrapped service and logs the operation.
func (s *LoggingHighlightService) UpsertHighlights(ctx context.Context, rec *evidence.HighlightRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("highlight upsert",
			"url", rec.DocumentURL,
			"highlights", len(rec.Highlights),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertHighlights(ctx, rec)
}

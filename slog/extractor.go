package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/lithoslabs/evidence"
)

// Ensure LoggingExtractor implements evidence.ClaimExtractor.
var _ evidence.ClaimExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a ClaimExtractor with operation logging.
type LoggingExtractor struct {
	next   evidence.ClaimExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next evidence.ClaimExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// ExtractFromPages delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractFromPages(ctx context.Context, excerpts []evidence.PageExcerpt) (ext *evidence.Extraction, err error) {
	defer func(begin time.Time) {
		e.logger.Info("claim extraction from pages",
			"pages", len(excerpts),
			"claims", claimCount(ext),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractFromPages(ctx, excerpts)
}

// ExtractFromSections delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) ExtractFromSections(ctx context.Context, info *evidence.CompanyInfo, sections []*evidence.Section) (ext *evidence.Extraction, err error) {
	defer func(begin time.Time) {
		e.logger.Info("claim extraction from sections",
			"sections", len(sections),
			"claims", claimCount(ext),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.ExtractFromSections(ctx, info, sections)
}

func claimCount(ext *evidence.Extraction) int {
	if ext == nil {
		return 0
	}
	return len(ext.Claims())
}

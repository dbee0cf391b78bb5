package mock

import (
	"context"

	"github.com/lithoslabs/evidence"
)

var _ evidence.HighlightService = (*HighlightService)(nil)

// HighlightService is a mock implementation of evidence.HighlightService.
type HighlightService struct {
	FindHighlightsByURLFn func(ctx context.Context, documentURL string) (*evidence.HighlightRecord, error)
	UpsertHighlightsFn    func(ctx context.Context, rec *evidence.HighlightRecord) error
}

func (s *HighlightService) FindHighlightsByURL(ctx context.Context, documentURL string) (*evidence.HighlightRecord, error) {
	return s.FindHighlightsByURLFn(ctx, documentURL)
}

func (s *HighlightService) UpsertHighlights(ctx context.Context, rec *evidence.HighlightRecord) error {
	return s.UpsertHighlightsFn(ctx, rec)
}

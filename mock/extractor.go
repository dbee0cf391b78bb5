package mock

import (
	"context"

	"github.com/lithoslabs/evidence"
)

var _ evidence.ClaimExtractor = (*ClaimExtractor)(nil)

// ClaimExtractor is a mock implementation of evidence.ClaimExtractor.
type ClaimExtractor struct {
	ExtractFromPagesFn    func(ctx context.Context, excerpts []evidence.PageExcerpt) (*evidence.Extraction, error)
	ExtractFromSectionsFn func(ctx context.Context, info *evidence.CompanyInfo, sections []*evidence.Section) (*evidence.Extraction, error)
}

func (e *ClaimExtractor) ExtractFromPages(ctx context.Context, excerpts []evidence.PageExcerpt) (*evidence.Extraction, error) {
	return e.ExtractFromPagesFn(ctx, excerpts)
}

func (e *ClaimExtractor) ExtractFromSections(ctx context.Context, info *evidence.CompanyInfo, sections []*evidence.Section) (*evidence.Extraction, error) {
	return e.ExtractFromSectionsFn(ctx, info, sections)
}

package mock

import (
	"context"

	"github.com/lithoslabs/evidence"
)

var _ evidence.ProjectService = (*ProjectService)(nil)

// ProjectService is a mock implementation of evidence.ProjectService.
type ProjectService struct {
	UpdateMetricsFn func(ctx context.Context, projectID string, m evidence.ProjectMetrics) error
}

func (s *ProjectService) UpdateMetrics(ctx context.Context, projectID string, m evidence.ProjectMetrics) error {
	return s.UpdateMetricsFn(ctx, projectID, m)
}

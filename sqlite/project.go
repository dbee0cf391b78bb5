package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lithoslabs/evidence"
)

// Compile-time interface verification.
var _ evidence.ProjectService = (*ProjectService)(nil)

// ProjectService implements evidence.ProjectService using SQLite.
type ProjectService struct {
	db *DB
}

// NewProjectService creates a new ProjectService.
func NewProjectService(db *DB) *ProjectService {
	return &ProjectService{db: db}
}

// UpdateMetrics applies a partial metrics update to a project. Only the
// fields present in the update are written; everything else is left as is.
func (s *ProjectService) UpdateMetrics(ctx context.Context, projectID string, m evidence.ProjectMetrics) error {
	if projectID == "" {
		return evidence.Errorf(evidence.EINVALID, "project ID required")
	}
	if m.Empty() {
		return nil
	}

	var query strings.Builder
	var args []any

	query.WriteString("UPDATE projects SET ")

	if m.NPV != nil {
		query.WriteString("npv = ?, ")
		args = append(args, *m.NPV)
	}
	if m.IRR != nil {
		query.WriteString("irr = ?, ")
		args = append(args, *m.IRR)
	}
	if m.CAPEX != nil {
		query.WriteString("capex = ?, ")
		args = append(args, *m.CAPEX)
	}
	if m.Location != nil {
		query.WriteString("location = ?, ")
		args = append(args, *m.Location)
	}
	if len(m.Commodities) > 0 {
		commodities, err := json.Marshal(m.Commodities)
		if err != nil {
			return fmt.Errorf("failed to encode commodities: %w", err)
		}
		query.WriteString("commodities = ?, ")
		args = append(args, string(commodities))
	}
	if m.Resource != nil {
		query.WriteString("resource = ?, ")
		args = append(args, *m.Resource)
	}
	if m.Reserve != nil {
		query.WriteString("reserve = ?, ")
		args = append(args, *m.Reserve)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	query.WriteString("financial_metrics_updated_at = ?, updated_at = ? WHERE id = ?")
	args = append(args, now, now, projectID)

	result, err := s.db.ExecContext(ctx, query.String(), args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return evidence.Errorf(evidence.ENOTFOUND, "project not found")
	}

	return nil
}

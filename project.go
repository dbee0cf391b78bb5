package evidence

import "context"

// ProjectMetrics are the financial fields written back to a project's
// metadata record after a successful extraction. Nil fields are left
// untouched.
type ProjectMetrics struct {
	NPV         *float64 `json:"npv,omitempty"`
	IRR         *float64 `json:"irr,omitempty"`
	CAPEX       *float64 `json:"capex,omitempty"`
	Location    *string  `json:"location,omitempty"`
	Commodities []string `json:"commodities,omitempty"`
	Resource    *string  `json:"resource,omitempty"`
	Reserve     *string  `json:"reserve,omitempty"`
}

// Empty reports whether the update would change nothing.
func (m ProjectMetrics) Empty() bool {
	return m.NPV == nil && m.IRR == nil && m.CAPEX == nil &&
		m.Location == nil && len(m.Commodities) == 0 &&
		m.Resource == nil && m.Reserve == nil
}

// ProjectService updates project metadata with extracted metrics.
type ProjectService interface {
	// UpdateMetrics applies a partial metrics update to a project.
	// Returns ENOTFOUND if the project does not exist.
	UpdateMetrics(ctx context.Context, projectID string, m ProjectMetrics) error
}

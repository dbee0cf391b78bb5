package evidence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Highlight is the UI-consumable record for a located claim. A failed lookup
// still produces a highlight with no region so the viewer can show the value
// without a visual anchor. Only plain data crosses this boundary; no parser
// handles are ever attached.
type Highlight struct {
	ID       string `json:"id"`
	DataType string `json:"dataType"`
	Quote    string `json:"quote"`

	// Areas carries the pixel region(s) for PDF claims.
	Areas []PixelRegion `json:"highlightAreas,omitempty"`

	// Anchor carries the element/section anchor for HTML claims.
	Anchor *AnchorRegion `json:"highlightArea,omitempty"`

	Value any `json:"value,omitempty"`
	Page  int `json:"page,omitempty"`
}

// HasRegion reports whether the highlight carries a navigable anchor.
func (h *Highlight) HasRegion() bool {
	return len(h.Areas) > 0 || h.Anchor != nil
}

// NewHighlight builds a regionless highlight for a claim, preserving the
// original quote and value. Callers attach a region when location succeeds.
func NewHighlight(c *Claim) *Highlight {
	return &Highlight{
		ID:       newHighlightID(c.Field),
		DataType: c.Field,
		Quote:    c.Text,
		Value:    c.Value,
		Page:     c.Page,
	}
}

func newHighlightID(field string) string {
	return fmt.Sprintf("auto-%s-%d-%s", field, time.Now().UnixMilli(), uuid.NewString()[:8])
}

// HighlightRecord is the persisted highlight set for a document, keyed by
// document URL. It is the only entity the locator persists.
type HighlightRecord struct {
	ID            string       `json:"id"`
	DocumentURL   string       `json:"documentUrl"`
	ProjectID     string       `json:"projectId,omitempty"`
	ContentHash   string       `json:"contentHash,omitempty"`
	Highlights    []*Highlight `json:"highlights"`
	Extraction    *Extraction  `json:"extractedData,omitempty"`
	NumPages      int          `json:"numPages,omitempty"`
	RelevantPages []int        `json:"relevantPages,omitempty"`
	Sections      []string     `json:"sections,omitempty"`
	ExtractedAt   time.Time    `json:"extractedAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *HighlightRecord) Validate() error {
	if r.DocumentURL == "" {
		return Errorf(EINVALID, "highlight record document URL required")
	}
	return nil
}

// HighlightService persists highlight records keyed by document URL.
type HighlightService interface {
	// FindHighlightsByURL retrieves the stored record for a document URL.
	// Returns ENOTFOUND if no record exists.
	FindHighlightsByURL(ctx context.Context, documentURL string) (*HighlightRecord, error)

	// UpsertHighlights inserts or replaces the record for its document
	// URL. Concurrent requests for the same URL may race, so the
	// operation is idempotent last-write-wins rather than exclusive.
	UpsertHighlights(ctx context.Context, rec *HighlightRecord) error
}

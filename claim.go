package evidence

import "context"

// Claim is a field value plus supporting quote asserted by the extraction
// collaborator to originate in the source document. The locator hint is
// Page for PDF documents and SectionID/TableID for HTML; ElementID is set
// only for claims sourced directly from structured tags.
type Claim struct {
	Field     string `json:"-"`
	Text      string `json:"text"`
	Value     any    `json:"value,omitempty"`
	Page      int    `json:"page,omitempty"`
	SectionID string `json:"sectionId,omitempty"`
	TableID   string `json:"tableId,omitempty"`
	ElementID string `json:"elementId,omitempty"`
}

// Extraction is the field→claim object returned by a single extraction run.
// Field order is fixed by the struct declaration so highlight output is
// deterministic across runs.
type Extraction struct {
	CompanyName *Claim `json:"companyName,omitempty"`
	Location    *Claim `json:"location,omitempty"`
	Commodities *Claim `json:"commodities,omitempty"`
	NPV         *Claim `json:"npv,omitempty"`
	IRR         *Claim `json:"irr,omitempty"`
	CAPEX       *Claim `json:"capex,omitempty"`
	OPEX        *Claim `json:"opex,omitempty"`
	Resources   *Claim `json:"resources,omitempty"`
	Reserves    *Claim `json:"reserves,omitempty"`
	Production  *Claim `json:"production,omitempty"`
}

// Claims returns the claims present in the extraction, in field-declaration
// order, with each claim's Field populated. Claims with an empty quote are
// skipped since there is nothing to locate or display.
func (e *Extraction) Claims() []*Claim {
	fields := []struct {
		name  string
		claim *Claim
	}{
		{"companyName", e.CompanyName},
		{"location", e.Location},
		{"commodities", e.Commodities},
		{"npv", e.NPV},
		{"irr", e.IRR},
		{"capex", e.CAPEX},
		{"opex", e.OPEX},
		{"resources", e.Resources},
		{"reserves", e.Reserves},
		{"production", e.Production},
	}

	var claims []*Claim
	for _, f := range fields {
		if f.claim == nil || f.claim.Text == "" {
			continue
		}
		f.claim.Field = f.name
		claims = append(claims, f.claim)
	}
	return claims
}

// Metrics converts the extraction's values into a project-metadata update.
func (e *Extraction) Metrics() ProjectMetrics {
	var m ProjectMetrics
	if v, ok := claimFloat(e.NPV); ok {
		m.NPV = &v
	}
	if v, ok := claimFloat(e.IRR); ok {
		m.IRR = &v
	}
	if v, ok := claimFloat(e.CAPEX); ok {
		m.CAPEX = &v
	}
	if v, ok := claimString(e.Location); ok {
		m.Location = &v
	}
	if v, ok := claimStrings(e.Commodities); ok {
		m.Commodities = v
	}
	if e.Resources != nil && e.Resources.Text != "" {
		m.Resource = &e.Resources.Text
	}
	if e.Reserves != nil && e.Reserves.Text != "" {
		m.Reserve = &e.Reserves.Text
	}
	return m
}

func claimFloat(c *Claim) (float64, bool) {
	if c == nil {
		return 0, false
	}
	// JSON numbers decode as float64; tolerate ints from tests.
	switch v := c.Value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func claimString(c *Claim) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.Value.(string)
	return v, ok && v != ""
}

func claimStrings(c *Claim) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	switch v := c.Value.(type) {
	case []string:
		return v, len(v) > 0
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, len(out) > 0
	}
	return nil, false
}

// PageExcerpt is a ranked page's text bounded for the extraction prompt.
type PageExcerpt struct {
	Page int    `json:"page"`
	Text string `json:"text"`
}

// ClaimExtractor is the external LLM collaborator. It is invoked once per
// document with the ranked excerpts, never per page or per section.
type ClaimExtractor interface {
	// ExtractFromPages extracts claims from ranked PDF page excerpts.
	ExtractFromPages(ctx context.Context, excerpts []PageExcerpt) (*Extraction, error)

	// ExtractFromSections extracts claims from HTML section and table
	// text. Company info already recovered from structured tags is passed
	// through so the extractor does not re-derive it.
	ExtractFromSections(ctx context.Context, info *CompanyInfo, sections []*Section) (*Extraction, error)
}

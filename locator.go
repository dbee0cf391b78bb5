package evidence

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// matchConcurrency bounds the per-claim matching goroutines. Matching is
// independent across claims; output order stays in field-declaration order
// because results are written by index.
const matchConcurrency = 4

// Result is the locator's response to the dashboard for one document.
type Result struct {
	Highlights    []*Highlight `json:"highlights"`
	Extraction    *Extraction  `json:"extractedData"`
	NumPages      int          `json:"numPages,omitempty"`
	RelevantPages []int        `json:"relevantPages,omitempty"`
	Sections      []string     `json:"sections,omitempty"`

	// Saved is false when persistence failed; the in-memory highlights
	// remain useful to the caller, so a store failure never aborts the
	// request.
	Saved bool `json:"saved"`

	// ProjectUpdated reports whether extracted metrics were written back
	// to the project record.
	ProjectUpdated bool `json:"projectUpdated"`
}

// Locator runs the evidence pipeline: fetch, rank, extract, match, project,
// assemble, persist. All collaborators are injected so the matching logic is
// testable without network access. The PDF and HTML variants share the span
// matcher and assembler and diverge only at the projection step.
type Locator struct {
	fetcher    Fetcher
	textLayer  TextLayerService
	sections   SectionService
	extractor  ClaimExtractor
	highlights HighlightService
	projects   ProjectService // optional; nil disables metric write-back
}

// NewLocator creates a Locator. The projects service may be nil.
func NewLocator(
	fetcher Fetcher,
	textLayer TextLayerService,
	sections SectionService,
	extractor ClaimExtractor,
	highlights HighlightService,
	projects ProjectService,
) *Locator {
	return &Locator{
		fetcher:    fetcher,
		textLayer:  textLayer,
		sections:   sections,
		extractor:  extractor,
		highlights: highlights,
		projects:   projects,
	}
}

// Locate runs the pipeline for a document of the given kind.
func (l *Locator) Locate(ctx context.Context, kind DocumentKind, documentURL, projectID string) (*Result, error) {
	switch kind {
	case KindPDF:
		return l.LocatePDF(ctx, documentURL, projectID)
	case KindHTML:
		return l.LocateHTML(ctx, documentURL, projectID)
	}
	return nil, Errorf(EINVALID, "unknown document kind %q", kind)
}

// LocatePDF extracts claims from a PDF technical report and anchors each to
// a page plus bounding box.
func (l *Locator) LocatePDF(ctx context.Context, documentURL, projectID string) (*Result, error) {
	if documentURL == "" {
		return nil, Errorf(EINVALID, "document URL required")
	}

	data, err := l.fetcher.Fetch(ctx, documentURL)
	if err != nil {
		return nil, err
	}

	pages, err := l.textLayer.Parse(data)
	if err != nil {
		return nil, err
	}

	ranked := RankPages(pages)
	extraction, err := l.extractor.ExtractFromPages(ctx, Excerpts(ranked))
	if err != nil {
		return nil, err
	}

	claims := extraction.Claims()
	highlights := make([]*Highlight, len(claims))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(matchConcurrency)
	for i, c := range claims {
		g.Go(func() error {
			highlights[i] = locateOnPage(pages, c)
			return nil
		})
	}
	_ = g.Wait()

	relevant := make([]int, 0, len(ranked))
	for _, p := range ranked {
		relevant = append(relevant, p.Number)
	}

	res := &Result{
		Highlights:    highlights,
		Extraction:    extraction,
		NumPages:      len(pages),
		RelevantPages: relevant,
	}
	l.persist(ctx, res, &HighlightRecord{
		DocumentURL:   documentURL,
		ProjectID:     projectID,
		ContentHash:   contentHash(data),
		Highlights:    highlights,
		Extraction:    extraction,
		NumPages:      len(pages),
		RelevantPages: relevant,
	})
	l.updateProject(ctx, res, projectID, extraction)
	return res, nil
}

// LocateHTML extracts claims from an HTML/XBRL filing and anchors each to a
// DOM element or section id.
func (l *Locator) LocateHTML(ctx context.Context, documentURL, projectID string) (*Result, error) {
	if documentURL == "" {
		return nil, Errorf(EINVALID, "document URL required")
	}

	data, err := l.fetcher.Fetch(ctx, documentURL)
	if err != nil {
		return nil, err
	}
	html := string(data)

	info, err := l.sections.CompanyInfo(html)
	if err != nil {
		return nil, err
	}
	sections, err := l.sections.Sections(html)
	if err != nil {
		return nil, err
	}

	extraction, err := l.extractor.ExtractFromSections(ctx, info, sections)
	if err != nil {
		return nil, err
	}
	mergeCompanyInfo(extraction, info)

	claims := extraction.Claims()
	highlights := make([]*Highlight, len(claims))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(matchConcurrency)
	for i, c := range claims {
		g.Go(func() error {
			highlights[i] = locateInSections(sections, c)
			return nil
		})
	}
	_ = g.Wait()

	ids := make([]string, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.ID)
	}

	res := &Result{
		Highlights: highlights,
		Extraction: extraction,
		Sections:   ids,
	}
	l.persist(ctx, res, &HighlightRecord{
		DocumentURL: documentURL,
		ProjectID:   projectID,
		ContentHash: contentHash(data),
		Highlights:  highlights,
		Extraction:  extraction,
		Sections:    ids,
	})
	l.updateProject(ctx, res, projectID, extraction)
	return res, nil
}

// Lookup returns the stored highlight record for a document URL.
// Returns ENOTFOUND if none exists.
func (l *Locator) Lookup(ctx context.Context, documentURL string) (*HighlightRecord, error) {
	if documentURL == "" {
		return nil, Errorf(EINVALID, "document URL required")
	}
	return l.highlights.FindHighlightsByURL(ctx, documentURL)
}

// persist stores the record; failure only clears Saved, never aborts.
func (l *Locator) persist(ctx context.Context, res *Result, rec *HighlightRecord) {
	now := time.Now().UTC()
	rec.ID = uuid.New().String()
	rec.ExtractedAt = now
	rec.UpdatedAt = now
	if err := l.highlights.UpsertHighlights(ctx, rec); err == nil {
		res.Saved = true
	}
}

// updateProject writes extracted metrics to the project record; failure
// only clears ProjectUpdated.
func (l *Locator) updateProject(ctx context.Context, res *Result, projectID string, extraction *Extraction) {
	if projectID == "" || l.projects == nil {
		return
	}
	metrics := extraction.Metrics()
	if metrics.Empty() {
		return
	}
	if err := l.projects.UpdateMetrics(ctx, projectID, metrics); err == nil {
		res.ProjectUpdated = true
	}
}

// locateOnPage anchors a claim on its hinted PDF page. Per-claim match
// failure degrades to a regionless highlight.
func locateOnPage(pages []*Page, c *Claim) *Highlight {
	h := NewHighlight(c)

	var page *Page
	for _, p := range pages {
		if p.Number == c.Page {
			page = p
			break
		}
	}
	if page == nil {
		return h
	}

	m := MatchSpan(Normalize(page.Text), c.Text)
	if !m.Found {
		return h
	}

	region, ok := ProjectSpan(page.Runs, page.Viewport, m.Start, m.End)
	if !ok {
		return h
	}
	region.PageIndex = page.Number - 1
	h.Areas = []PixelRegion{region}
	return h
}

// locateInSections anchors a claim inside an HTML filing. Structured-tag
// claims keep their element id; table hints resolve through the section
// inventory; otherwise the enclosing section id is used, falling back to a
// matcher sweep across section texts.
func locateInSections(sections []*Section, c *Claim) *Highlight {
	h := NewHighlight(c)

	if c.ElementID != "" {
		h.Anchor = &AnchorRegion{ElementID: c.ElementID}
		return h
	}

	if c.TableID != "" {
		for _, s := range sections {
			for _, t := range s.Tables {
				if t.Label == c.TableID || t.ElementID == c.TableID {
					h.Anchor = &AnchorRegion{ElementID: t.ElementID}
					return h
				}
			}
		}
	}

	if c.SectionID != "" {
		for _, s := range sections {
			if s.ID == c.SectionID {
				h.Anchor = &AnchorRegion{SectionID: s.ID}
				return h
			}
		}
	}

	for _, s := range sections {
		if m := MatchSpan(Normalize(s.Text), c.Text); m.Found {
			h.Anchor = &AnchorRegion{SectionID: s.ID}
			return h
		}
	}

	return h
}

// mergeCompanyInfo overrides LLM-derived company fields with claims sourced
// from structured tags, which are authoritative.
func mergeCompanyInfo(e *Extraction, info *CompanyInfo) {
	if info == nil {
		return
	}
	if info.CompanyName != nil {
		e.CompanyName = info.CompanyName
	}
	if info.Location != nil {
		e.Location = info.Location
	}
}

func contentHash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

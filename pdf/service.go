// Package pdf extracts the positioned text layer from PDF documents using
// github.com/ledongthuc/pdf. It exposes pages as ordered text runs with
// their rendering transforms, which downstream projection converts into
// viewer-relative highlight regions.
package pdf

import (
	"bytes"
	"strings"

	ldpdf "github.com/ledongthuc/pdf"
	"github.com/lithoslabs/evidence"
)

// US Letter, the fallback when a page carries no usable MediaBox.
const (
	defaultPageWidth  = 612
	defaultPageHeight = 792
)

// Ensure Service implements evidence.TextLayerService at compile time.
var _ evidence.TextLayerService = (*Service)(nil)

// Service parses PDF bytes into pages with positioned text runs.
type Service struct{}

// NewService creates a new Service.
func NewService() *Service {
	return &Service{}
}

// Parse returns the document's pages in order. Pages without a content
// stream are skipped. The returned page text is the runs joined with single
// spaces, matching the offset accounting used by span projection.
func (s *Service) Parse(data []byte) ([]*evidence.Page, error) {
	reader, err := ldpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, evidence.Errorf(evidence.EINTERNAL, "parse pdf: %v", err)
	}

	var pages []*evidence.Page
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		runs := runsFromContent(page.Content())
		pages = append(pages, &evidence.Page{
			Number:   i,
			Text:     pageText(runs),
			Runs:     runs,
			Viewport: viewport(page),
		})
	}
	return pages, nil
}

// runsFromContent converts positioned text fragments into domain text runs.
// Whitespace inside each fragment is collapsed so the matcher's normalized
// offsets stay aligned with the raw run walk.
func runsFromContent(content ldpdf.Content) []evidence.TextRun {
	runs := make([]evidence.TextRun, 0, len(content.Text))
	for _, t := range content.Text {
		text := strings.Join(strings.Fields(t.S), " ")
		if text == "" {
			continue
		}
		runs = append(runs, evidence.TextRun{
			Text:      text,
			Transform: [6]float64{t.FontSize, 0, 0, t.FontSize, t.X, t.Y},
			Width:     t.W,
		})
	}
	return runs
}

func pageText(runs []evidence.TextRun) string {
	parts := make([]string, 0, len(runs))
	for _, r := range runs {
		parts = append(parts, r.Text)
	}
	return strings.Join(parts, " ")
}

// viewport reads the page's MediaBox dimensions, falling back to US Letter
// when the box is missing or degenerate.
func viewport(page ldpdf.Page) evidence.Viewport {
	box := page.V.Key("MediaBox")
	if box.Len() == 4 {
		w := box.Index(2).Float64() - box.Index(0).Float64()
		h := box.Index(3).Float64() - box.Index(1).Float64()
		if w > 0 && h > 0 {
			return evidence.Viewport{Width: w, Height: h}
		}
	}
	return evidence.Viewport{Width: defaultPageWidth, Height: defaultPageHeight}
}

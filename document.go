package evidence

import "math"

// DocumentKind identifies the document variant a claim was extracted from.
type DocumentKind string

// Document variants.
const (
	KindPDF  DocumentKind = "pdf"
	KindHTML DocumentKind = "html"
)

// Viewport holds a PDF page's dimensions in user-space units.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextRun is a single positioned piece of text as emitted by a PDF's text
// layer. Runs within a page arrive in reading order but are not guaranteed
// contiguous or non-overlapping in visual space.
type TextRun struct {
	Text string `json:"str"`

	// Transform is the PDF text-rendering matrix [a b c d e f].
	// The origin is (e, f) with y growing upward from the page bottom;
	// |d| approximates the font size for unrotated text.
	Transform [6]float64 `json:"transform"`

	// Width is the run's rendered width, if the text layer reported one.
	Width float64 `json:"width,omitempty"`
}

// Origin returns the run's baseline origin in PDF space.
func (r TextRun) Origin() (x, y float64) {
	return r.Transform[4], r.Transform[5]
}

// FontSize returns the font size derived from the transform matrix.
func (r TextRun) FontSize() float64 {
	return math.Abs(r.Transform[3])
}

// EstimatedWidth returns the run's width, falling back to a character-count
// estimate when the text layer did not report one.
func (r TextRun) EstimatedWidth() float64 {
	if r.Width > 0 {
		return r.Width
	}
	return float64(len(r.Text)) * r.FontSize() * 0.6
}

// Page is a single PDF page with its concatenated text and positioned runs.
// Text is the runs joined with single spaces; span offsets produced by the
// matcher walk Runs with the same +1 separator accounting.
type Page struct {
	Number   int       `json:"pageNumber"` // 1-based
	Text     string    `json:"text"`
	Runs     []TextRun `json:"textItems,omitempty"`
	Viewport Viewport  `json:"viewport"`
}

// Table is a table discovered inside an HTML section. Tables without a
// native element id receive a synthetic one so the viewer can scroll to them.
type Table struct {
	ElementID string   `json:"elementId"`
	Label     string   `json:"label"` // "Table N", as referenced by the extractor
	Rows      []string `json:"rows,omitempty"`
}

// Section is an identified DOM subtree of an HTML filing, with a text
// excerpt and an inventory of the tables it contains.
type Section struct {
	ID     string  `json:"sectionId"`
	Title  string  `json:"title,omitempty"`
	Kind   string  `json:"kind,omitempty"`
	Text   string  `json:"text,omitempty"`
	Tables []Table `json:"tables,omitempty"`
}

// CompanyInfo holds claims sourced directly from structured inline-XBRL tags.
// These bypass the span matcher and anchor on their tag's element id.
type CompanyInfo struct {
	CompanyName *Claim `json:"companyName,omitempty"`
	Location    *Claim `json:"location,omitempty"`
}

// TextLayerService extracts the positioned text layer from PDF bytes.
type TextLayerService interface {
	// Parse returns the document's pages in order. Pages with no text
	// layer are omitted.
	Parse(data []byte) ([]*Page, error)
}

// SectionService parses HTML filings into addressable sections and
// structured company information.
type SectionService interface {
	// Sections discovers financially relevant sections in the raw markup,
	// inventories their tables, and extracts text excerpts for the
	// claim extractor.
	Sections(html string) ([]*Section, error)

	// CompanyInfo extracts company name and location claims from inline
	// XBRL tags, carrying the source element ids.
	CompanyInfo(html string) (*CompanyInfo, error)
}

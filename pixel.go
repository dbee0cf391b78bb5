package evidence

import "math"

// RegionPadding is the outward padding, in PDF user-space units, applied to
// a projected bounding box so the overlay doesn't hug the glyphs.
const RegionPadding = 2

// PixelRegion is a viewer-relative highlight area: percentages of the page
// dimensions with a top-left origin, clamped to [0,100] so an overlay never
// renders outside the page.
type PixelRegion struct {
	PageIndex int     `json:"pageIndex"` // 0-based
	Left      float64 `json:"left"`
	Top       float64 `json:"top"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
}

// AnchorRegion anchors a highlight to a DOM element or section id. HTML
// layout is not fixed at extraction time, so no box is computed.
type AnchorRegion struct {
	ElementID string `json:"elementId,omitempty"`
	SectionID string `json:"sectionId,omitempty"`
}

// RunsForSpan returns the text runs whose character intervals overlap
// [start, end) in the page's concatenated text. Each run contributes
// len(text)+1 to the running offset, the +1 accounting for the single space
// the haystack builder inserts between runs.
func RunsForSpan(runs []TextRun, start, end int) []TextRun {
	var matched []TextRun
	offset := 0
	for _, r := range runs {
		runEnd := offset + len(r.Text) + 1
		if offset < end && runEnd > start {
			matched = append(matched, r)
		}
		offset = runEnd
	}
	return matched
}

// ProjectSpan maps a matched span back to the union bounding box of its
// underlying runs and converts it from PDF space (bottom-left origin,
// arbitrary page size) into viewer percentages. The second return is false
// when no run overlaps the span or the viewport is degenerate.
func ProjectSpan(runs []TextRun, vp Viewport, start, end int) (PixelRegion, bool) {
	matched := RunsForSpan(runs, start, end)
	if len(matched) == 0 || vp.Width <= 0 || vp.Height <= 0 {
		return PixelRegion{}, false
	}

	left := math.Inf(1)
	bottom := math.Inf(1)
	right := math.Inf(-1)
	top := math.Inf(-1)
	for _, r := range matched {
		x, y := r.Origin()
		fs := r.FontSize()
		left = math.Min(left, x)
		bottom = math.Min(bottom, y)
		right = math.Max(right, x+r.EstimatedWidth())
		top = math.Max(top, y+fs)
	}

	viewerLeft := math.Max(0, (left-RegionPadding)/vp.Width*100)
	viewerTop := math.Max(0, (vp.Height-top-RegionPadding)/vp.Height*100)
	viewerWidth := math.Min(100-viewerLeft, (right-left+2*RegionPadding)/vp.Width*100)
	viewerHeight := math.Min(100-viewerTop, (top-bottom+2*RegionPadding)/vp.Height*100)

	return PixelRegion{
		Left:   clampPercent(viewerLeft),
		Top:    clampPercent(viewerTop),
		Width:  clampPercent(viewerWidth),
		Height: clampPercent(viewerHeight),
	}, true
}

func clampPercent(v float64) float64 {
	return math.Min(100, math.Max(0, v))
}

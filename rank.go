package evidence

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Ranking bounds. They cap the volume of text forwarded to the extraction
// collaborator, keeping latency and token cost bounded.
const (
	MaxRelevantPages = 20
	PageExcerptLimit = 2000
)

// DataPattern pairs a domain field with the regexes and keywords that signal
// its presence on a page. Patterns are data-declared so new financial fields
// can be added without touching matcher logic.
type DataPattern struct {
	Name     string
	Patterns []*regexp.Regexp
	Keywords []string
}

// PagePatterns are the signatures of key data in technical mining reports
// (NI 43-101, feasibility studies).
var PagePatterns = []DataPattern{
	{
		Name: "npv",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)NPV[\s@]*(?:of\s+)?(?:\$|USD|CAD)?\s*[\d,]+(?:\.\d+)?\s*(?:million|M|B)`),
			regexp.MustCompile(`(?i)Net\s+Present\s+Value[\s:]*(?:\$|USD|CAD)?\s*[\d,]+(?:\.\d+)?\s*(?:million|M)`),
			regexp.MustCompile(`(?i)(?:\$|USD|CAD)\s*[\d,]+(?:\.\d+)?\s*(?:million|M).*NPV`),
		},
		Keywords: []string{"NPV", "Net Present Value", "after-tax NPV", "pre-tax NPV"},
	},
	{
		Name: "irr",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)IRR[\s:]*[\d.]+\s*%`),
			regexp.MustCompile(`(?i)Internal\s+Rate\s+of\s+Return[\s:]*[\d.]+\s*%`),
			regexp.MustCompile(`(?i)[\d.]+\s*%.*IRR`),
		},
		Keywords: []string{"IRR", "Internal Rate of Return", "after-tax IRR", "pre-tax IRR"},
	},
	{
		Name: "capex",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)CAPEX[\s:]*(?:\$|USD|CAD)?\s*[\d,]+(?:\.\d+)?\s*(?:million|M|B)`),
			regexp.MustCompile(`(?i)Capital\s+(?:Cost|Expenditure)[\s:]*(?:\$|USD|CAD)?\s*[\d,]+(?:\.\d+)?\s*(?:million|M)`),
			regexp.MustCompile(`(?i)Initial\s+Capital[\s:]*(?:\$|USD|CAD)?\s*[\d,]+(?:\.\d+)?\s*(?:million|M)`),
		},
		Keywords: []string{"CAPEX", "Capital Cost", "Capital Expenditure", "Initial Capital"},
	},
	{
		Name: "opex",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)OPEX[\s:]*(?:\$|USD|CAD)?\s*[\d,]+(?:\.\d+)?\s*(?:/t|per\s+tonne|per\s+ton)`),
			regexp.MustCompile(`(?i)Operating\s+Cost[\s:]*(?:\$|USD|CAD)?\s*[\d,]+(?:\.\d+)?\s*(?:/t|per\s+tonne)`),
		},
		Keywords: []string{"OPEX", "Operating Cost", "Operating Expenditure", "C1 Cash Cost"},
	},
	{
		Name: "resources",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Measured|Indicated|Inferred)\s+(?:Resource|Resources)[\s:]*[\d,]+(?:\.\d+)?\s*(?:Mt|million tonnes|Kt)`),
			regexp.MustCompile(`(?i)Total\s+(?:Mineral\s+)?Resources[\s:]*[\d,]+(?:\.\d+)?\s*(?:Mt|million tonnes)`),
		},
		Keywords: []string{"Mineral Resources", "Measured Resources", "Indicated Resources", "Inferred Resources", "Resource Estimate"},
	},
	{
		Name: "reserves",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Proven|Probable)\s+Reserves?[\s:]*[\d,]+(?:\.\d+)?\s*(?:Mt|million tonnes|Kt)`),
			regexp.MustCompile(`(?i)Total\s+Reserves?[\s:]*[\d,]+(?:\.\d+)?\s*(?:Mt|million tonnes)`),
		},
		Keywords: []string{"Mineral Reserves", "Proven Reserves", "Probable Reserves", "Reserve Estimate"},
	},
	{
		Name: "production",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(?:Annual|Average)\s+Production[\s:]*[\d,]+(?:\.\d+)?\s*(?:kt|thousand tonnes|Mlb|million pounds)`),
			regexp.MustCompile(`(?i)Production\s+Rate[\s:]*[\d,]+(?:\.\d+)?\s*(?:tpd|tonnes per day|ktpa)`),
		},
		Keywords: []string{"Annual Production", "Production Rate", "Life of Mine", "LOM Production"},
	},
	{
		Name: "commodities",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:Copper|Gold|Silver|Zinc|Lead|Nickel|Cobalt|Lithium|Molybdenum)\b`),
			regexp.MustCompile(`(?i)\b(?:Cu|Au|Ag|Zn|Pb|Ni|Co|Li|Mo)\b\s*(?:grade|content|%)`),
		},
		Keywords: []string{"copper", "gold", "silver", "zinc", "lead", "nickel", "cobalt", "lithium", "molybdenum"},
	},
}

// PagesWithPattern returns the numbers of the pages carrying the pattern's
// signature: a keyword mention or a regex hit. Keywords catch prose
// references; the regexes catch figure-bearing lines that abbreviate the
// term (e.g. "Au grade" without "gold"). Either alone flags the page; the
// extractor makes the precise call.
func PagesWithPattern(pages []*Page, pattern DataPattern) []int {
	var matched []int
	for _, page := range pages {
		if pageMatches(page.Text, pattern) {
			matched = append(matched, page.Number)
		}
	}
	return matched
}

func pageMatches(text string, pattern DataPattern) bool {
	lower := strings.ToLower(text)
	for _, kw := range pattern.Keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	for _, re := range pattern.Patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// KeyPages returns pages carrying executive-summary or financial-metrics
// section signatures. Executive summaries are only looked for in the first
// 20 pages; financial metrics pages mention NPV and IRR together.
func KeyPages(pages []*Page) []int {
	var matched []int
	for _, page := range pages {
		lower := strings.ToLower(page.Text)

		if page.Number <= 20 &&
			(strings.Contains(lower, "executive summary") ||
				strings.Contains(lower, "summary of results") ||
				strings.Contains(lower, "key highlights")) {
			matched = append(matched, page.Number)
			continue
		}

		if (strings.Contains(lower, "npv") || strings.Contains(lower, "net present value")) &&
			(strings.Contains(lower, "irr") || strings.Contains(lower, "internal rate")) {
			matched = append(matched, page.Number)
		}
	}
	return matched
}

// RankPages identifies the pages worth forwarding to the claim extractor:
// the union of all pattern and key-section hits, sorted ascending and capped
// at MaxRelevantPages. The result is independent of scan order.
func RankPages(pages []*Page) []*Page {
	relevant := make(map[int]bool)
	for _, pattern := range PagePatterns {
		for _, n := range PagesWithPattern(pages, pattern) {
			relevant[n] = true
		}
	}
	for _, n := range KeyPages(pages) {
		relevant[n] = true
	}

	numbers := make([]int, 0, len(relevant))
	for n := range relevant {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	if len(numbers) > MaxRelevantPages {
		numbers = numbers[:MaxRelevantPages]
	}

	byNumber := make(map[int]*Page, len(pages))
	for _, p := range pages {
		byNumber[p.Number] = p
	}
	ranked := make([]*Page, 0, len(numbers))
	for _, n := range numbers {
		if p, ok := byNumber[n]; ok {
			ranked = append(ranked, p)
		}
	}
	return ranked
}

// Excerpts bounds each ranked page's text for the extraction prompt.
func Excerpts(pages []*Page) []PageExcerpt {
	excerpts := make([]PageExcerpt, 0, len(pages))
	for _, p := range pages {
		excerpts = append(excerpts, PageExcerpt{Page: p.Number, Text: truncate(p.Text, PageExcerptLimit)})
	}
	return excerpts
}

// truncate bounds s to at most limit bytes without splitting a UTF-8
// sequence.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := s[:limit]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}

// Package goquery discovers anchorable sections, tables, and structured
// company tags in filing HTML using github.com/PuerkitoBio/goquery.
package goquery

import (
	"fmt"
	"regexp"
	"strings"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/lithoslabs/evidence"
)

// MaxSections caps how many discovered sections are handed to extraction.
const MaxSections = 10

const sectionTextLimit = 2000

// sectionPatterns name the heading phrases of well-known filing sections.
// Filing HTML is machine generated, so a regex scan over the raw markup is
// more reliable than walking the DOM for these landmarks. Each heading hit
// anchors to the nearest preceding div that carries an element id.
var sectionPatterns = []struct {
	kind    string
	heading *regexp.Regexp
}{
	{"financial_statements", regexp.MustCompile(`(?i)financial\s+statements`)},
	{"management_discussion", regexp.MustCompile(`(?i)management.s\s+discussion`)},
	{"balance_sheet", regexp.MustCompile(`(?i)balance\s+sheets?`)},
	{"income_statement", regexp.MustCompile(`(?i)statements?\s+of\s+(?:income|operations)`)},
	{"cash_flow", regexp.MustCompile(`(?i)cash\s+flows?`)},
}

var divIDRE = regexp.MustCompile(`<div[^>]*\bid="([^"]+)"[^>]*>`)

// headingWindow bounds how far a heading may sit past its section's opening
// div before the association is rejected as coincidental.
const headingWindow = 500

// dei inline XBRL tags carrying registrant identity.
const (
	tagRegistrantName = "dei:EntityRegistrantName"
	tagCity           = "dei:EntityAddressCityOrTown"
	tagState          = "dei:EntityAddressStateOrProvince"
	tagIncorporation  = "dei:EntityIncorporationStateCountryCode"
)

// Ensure Service implements evidence.SectionService at compile time.
var _ evidence.SectionService = (*Service)(nil)

// Service locates sections and structured tags in filing HTML.
type Service struct{}

// NewService creates a new Service.
func NewService() *Service {
	return &Service{}
}

// Sections returns up to MaxSections recognizable filing sections, each with
// its anchorable element id, a bounded text excerpt, and the tables found
// inside it. Duplicate element ids across patterns are dropped.
func (s *Service) Sections(html string) ([]*evidence.Section, error) {
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, evidence.Errorf(evidence.EINTERNAL, "parse html: %v", err)
	}

	divs := divIDRE.FindAllStringSubmatchIndex(html, -1)

	seen := make(map[string]bool)
	var sections []*evidence.Section
	tableCount := 0
	for _, sp := range sectionPatterns {
		for _, loc := range sp.heading.FindAllStringIndex(html, -1) {
			id := enclosingDivID(html, divs, loc[0])
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			sections = append(sections, buildSection(doc, id, sp.kind, &tableCount))
			if len(sections) >= MaxSections {
				return sections, nil
			}
		}
	}
	return sections, nil
}

// enclosingDivID returns the id of the nearest identifiable div opening
// before pos, or "" when none opens within headingWindow characters.
func enclosingDivID(html string, divs [][]int, pos int) string {
	for i := len(divs) - 1; i >= 0; i-- {
		d := divs[i]
		if d[1] > pos {
			continue
		}
		if pos-d[1] > headingWindow {
			return ""
		}
		return html[d[2]:d[3]]
	}
	return ""
}

// buildSection fills in the section's title, text excerpt, and tables from
// the element subtree rooted at id. tableCount runs across the whole
// document so table labels stay unique between sections; the label is
// 1-based ("Table 1") while the synthetic element id is 0-based.
func buildSection(doc *gq.Document, id, kind string, tableCount *int) *evidence.Section {
	sec := &evidence.Section{ID: id, Kind: kind}

	root := doc.Find("#" + id)
	if root.Length() == 0 {
		return sec
	}

	// Filing HTML styles headings inline rather than with h tags.
	sec.Title = strings.TrimSpace(root.Find(`span[style*="font-weight:700"]`).First().Text())

	text := strings.Join(strings.Fields(root.Text()), " ")
	if len(text) > sectionTextLimit {
		text = text[:sectionTextLimit]
	}
	sec.Text = text

	root.Find("table").Each(func(_ int, table *gq.Selection) {
		n := *tableCount
		*tableCount = n + 1

		tbl := evidence.Table{
			ElementID: fmt.Sprintf("evloc-table-%d", n),
			Label:     fmt.Sprintf("Table %d", n+1),
		}
		// A table with a native id is already addressable; keep it.
		if nativeID, ok := table.Attr("id"); ok && nativeID != "" {
			tbl.ElementID = nativeID
		}
		table.Find("tr").Each(func(_ int, tr *gq.Selection) {
			var cells []string
			tr.Find("td, th").Each(func(_ int, cell *gq.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			tbl.Rows = append(tbl.Rows, strings.Join(cells, " | "))
		})
		sec.Tables = append(sec.Tables, tbl)
	})

	return sec
}

// CompanyInfo reads registrant name and address from inline XBRL dei tags.
// Each found value becomes a claim already anchored to the tag's enclosing
// element, so no span matching is needed for these fields. Missing tags
// leave the corresponding claim nil.
func (s *Service) CompanyInfo(html string) (*evidence.CompanyInfo, error) {
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, evidence.Errorf(evidence.EINTERNAL, "parse html: %v", err)
	}

	info := &evidence.CompanyInfo{}
	if text, id := taggedValue(doc, tagRegistrantName); text != "" {
		info.CompanyName = &evidence.Claim{Text: text, Value: text, ElementID: id}
	}

	city, cityID := taggedValue(doc, tagCity)
	state, stateID := taggedValue(doc, tagState)
	country, countryID := taggedValue(doc, tagIncorporation)

	var parts []string
	elementID := ""
	for _, p := range []struct{ text, id string }{
		{city, cityID},
		{state, stateID},
		{country, countryID},
	} {
		if p.text == "" {
			continue
		}
		parts = append(parts, p.text)
		if elementID == "" {
			elementID = p.id
		}
	}
	if len(parts) > 0 {
		loc := strings.Join(parts, ", ")
		info.Location = &evidence.Claim{Text: loc, Value: loc, ElementID: elementID}
	}
	return info, nil
}

// taggedValue returns the first tag's trimmed text and the id of its nearest
// identifiable ancestor, which includes the tag element itself.
func taggedValue(doc *gq.Document, name string) (text, elementID string) {
	sel := doc.Find(fmt.Sprintf(`[name=%q]`, name)).First()
	if sel.Length() == 0 {
		return "", ""
	}
	text = strings.TrimSpace(sel.Text())

	for cur := sel; cur.Length() > 0; cur = cur.Parent() {
		if id, ok := cur.Attr("id"); ok && id != "" {
			return text, id
		}
	}
	return text, ""
}

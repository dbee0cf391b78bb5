package evidence_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/lithoslabs/evidence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(n int, text string) *evidence.Page {
	return &evidence.Page{Number: n, Text: text, Viewport: evidence.Viewport{Width: 612, Height: 792}}
}

func TestRankPages(t *testing.T) {
	t.Parallel()

	t.Run("finds pages with financial signatures regardless of scan order", func(t *testing.T) {
		t.Parallel()

		// 50-page report where only pages 3, 12 and 40 carry NPV/IRR
		// data; the ranking must be the same however the report is
		// ordered.
		pages := make([]*evidence.Page, 0, 50)
		for i := 50; i >= 1; i-- {
			text := "general geology discussion without figures"
			switch i {
			case 3:
				text = "the after-tax NPV of $485.3 million was calculated"
			case 12:
				text = "IRR: 22.5% at base case pricing"
			case 40:
				text = "Net Present Value: $485.3 million (post-tax)"
			}
			pages = append(pages, page(i, text))
		}

		ranked := evidence.RankPages(pages)
		numbers := make([]int, 0, len(ranked))
		for _, p := range ranked {
			numbers = append(numbers, p.Number)
		}
		assert.Equal(t, []int{3, 12, 40}, numbers)
	})

	t.Run("caps at MaxRelevantPages", func(t *testing.T) {
		t.Parallel()

		pages := make([]*evidence.Page, 0, 40)
		for i := 1; i <= 40; i++ {
			pages = append(pages, page(i, fmt.Sprintf("page %d mentions NPV of $100 million", i)))
		}

		ranked := evidence.RankPages(pages)
		require.Len(t, ranked, evidence.MaxRelevantPages)
		// Ascending and starting from the lowest-numbered hits.
		assert.Equal(t, 1, ranked[0].Number)
		assert.Equal(t, evidence.MaxRelevantPages, ranked[len(ranked)-1].Number)
	})

	t.Run("executive summary counts only in the first 20 pages", func(t *testing.T) {
		t.Parallel()

		pages := []*evidence.Page{
			page(5, "Executive Summary of the project"),
			page(35, "executive summary repeated in appendix"),
		}

		ranked := evidence.RankPages(pages)
		require.Len(t, ranked, 1)
		assert.Equal(t, 5, ranked[0].Number)
	})

	t.Run("empty report yields no pages", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, evidence.RankPages(nil))
	})
}

func TestPagesWithPattern(t *testing.T) {
	t.Parallel()

	var reserves evidence.DataPattern
	for _, p := range evidence.PagePatterns {
		if p.Name == "reserves" {
			reserves = p
		}
	}
	require.NotEmpty(t, reserves.Name)

	pages := []*evidence.Page{
		page(1, "Proven Reserves: 12.5 Mt at 1.1% Cu"),
		page(2, "no relevant content"),
		page(3, "total mineral reserves summarized in table 8"),
	}

	assert.Equal(t, []int{1, 3}, evidence.PagesWithPattern(pages, reserves))
}

func TestPagesWithPattern_RegexOnlyHit(t *testing.T) {
	t.Parallel()

	var commodities evidence.DataPattern
	for _, p := range evidence.PagePatterns {
		if p.Name == "commodities" {
			commodities = p
		}
	}
	require.NotEmpty(t, commodities.Name)

	// "Au grade" carries no commodity keyword; only the regex catches it.
	pages := []*evidence.Page{
		page(1, "Au grade 2.1 g/t over 14 m intercept"),
		page(2, "no relevant content"),
	}

	assert.Equal(t, []int{1}, evidence.PagesWithPattern(pages, commodities))
}

func TestKeyPages(t *testing.T) {
	t.Parallel()

	pages := []*evidence.Page{
		page(5, "Executive Summary of the project"),
		page(25, "base case npv and irr are tabulated below"),
		page(35, "executive summary repeated in appendix"),
		page(40, "irr sensitivity only, no present-value figures"),
	}

	// The financial-metrics signature applies anywhere; the executive
	// summary only in the first 20 pages.
	assert.Equal(t, []int{5, 25}, evidence.KeyPages(pages))
}

func TestExcerpts(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("resource estimate detail ", 200)
	excerpts := evidence.Excerpts([]*evidence.Page{page(7, long), page(9, "short text")})

	require.Len(t, excerpts, 2)
	assert.Equal(t, 7, excerpts[0].Page)
	assert.LessOrEqual(t, len(excerpts[0].Text), evidence.PageExcerptLimit)
	assert.Equal(t, "short text", excerpts[1].Text)
}

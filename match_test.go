package evidence_test

import (
	"strings"
	"testing"

	"github.com/lithoslabs/evidence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses whitespace runs", "NPV  of\t$485.3M\n\nat", "npv of $485.3m at"},
		{"trims leading and trailing", "  hello world \n", "hello world"},
		{"lowercases", "Net Present Value", "net present value"},
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, evidence.Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"NPV of  $485.3M",
		"  already clean  ",
		"multi\nline\ttext with   gaps",
		"",
	}
	for _, in := range inputs {
		once := evidence.Normalize(in)
		assert.Equal(t, once, evidence.Normalize(once))
	}
}

func TestMatchSpan_Exact(t *testing.T) {
	t.Parallel()

	// Quote differs from the haystack only in case and spacing.
	haystack := "the project reports npv of $485.3m at a 5% discount rate"
	m := evidence.MatchSpan(haystack, "NPV of $485.3M")

	require.True(t, m.Found)
	assert.Equal(t, evidence.MatchExact, m.Strategy)
	assert.Equal(t, 20, m.Start)
	assert.Equal(t, 34, m.End)
	assert.Equal(t, "npv of $485.3m", m.Text)
	assert.Equal(t, "npv of $485.3m", haystack[m.Start:m.End])
}

func TestMatchSpan_PartialPrefix(t *testing.T) {
	t.Parallel()

	// The haystack carries only the opening fragment of a long quote, the
	// situation the prefix tier exists for. PrefixLength is a heuristic
	// threshold, not an exact-science boundary.
	quote := "annual production averages 125,000 tonnes of copper concentrate over the mine life"
	needle := evidence.Normalize(quote)
	require.Greater(t, len(needle), evidence.PrefixLength)

	haystack := "summary: " + needle[:evidence.PrefixLength] + " [table continues]"
	m := evidence.MatchSpan(haystack, quote)

	require.True(t, m.Found)
	assert.Equal(t, evidence.MatchPartialPrefix, m.Strategy)
	assert.Equal(t, needle[:evidence.PrefixLength], m.Text)
	assert.Equal(t, len("summary: "), m.Start)
	assert.Equal(t, m.Start+evidence.PrefixLength, m.End)
}

func TestMatchSpan_KeyPhrase(t *testing.T) {
	t.Parallel()

	// Neither the full quote nor its prefix appears, but the tonnage token
	// does.
	quote := "125.4 Mt of measured resources delineated across the property"
	haystack := "the deposit hosts 125.4 mt of ore grading 1.2% cu"
	m := evidence.MatchSpan(haystack, quote)

	require.True(t, m.Found)
	assert.Equal(t, evidence.MatchKeyPhrase, m.Strategy)
	assert.Equal(t, "125.4 mt", m.Text)
	assert.Equal(t, "125.4 mt", haystack[m.Start:m.End])
}

func TestMatchSpan_NotFound(t *testing.T) {
	t.Parallel()

	m := evidence.MatchSpan("completely unrelated page text", "zzz qqq")
	assert.False(t, m.Found)
	assert.Empty(t, m.Strategy)
}

func TestMatchSpan_EmptyInputs(t *testing.T) {
	t.Parallel()

	assert.False(t, evidence.MatchSpan("", "some quote").Found)
	assert.False(t, evidence.MatchSpan("some haystack", "").Found)
	assert.False(t, evidence.MatchSpan("some haystack", "   ").Found)
}

func TestMatchSpan_LeftmostOccurrence(t *testing.T) {
	t.Parallel()

	haystack := "npv of $10m stated early and npv of $10m repeated later"
	m := evidence.MatchSpan(haystack, "NPV of $10M")

	require.True(t, m.Found)
	assert.Equal(t, 0, m.Start)
}

func TestMatchSpan_ExactWinsOverFallbacks(t *testing.T) {
	t.Parallel()

	// A long quote present verbatim must report exact, not partial-prefix.
	quote := strings.Repeat("copper grade 1.5% recovered ", 3)
	haystack := "intro " + evidence.Normalize(quote) + " outro"
	m := evidence.MatchSpan(haystack, quote)

	require.True(t, m.Found)
	assert.Equal(t, evidence.MatchExact, m.Strategy)
}

package evidence

import (
	"regexp"
	"strings"
)

// Normalize canonicalizes text for comparison: whitespace runs (including
// newlines and tabs) collapse to a single space, leading/trailing whitespace
// is trimmed, and case folds to lower. Both the haystack and the needle must
// pass through Normalize before any comparison; comparing a normalized
// string against a raw one is always a bug.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " ")))
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// MatchStrategy identifies which fallback tier produced a match.
type MatchStrategy string

// Match strategies, in the order they are attempted.
const (
	MatchExact         MatchStrategy = "exact"
	MatchPartialPrefix MatchStrategy = "partial-prefix"
	MatchKeyPhrase     MatchStrategy = "key-phrase"
)

// PrefixLength is the number of normalized characters anchored on when a
// full quote cannot be found verbatim. LLM quotes tend to drift after the
// first clause, so the stable opening fragment is a more robust anchor than
// full-string equality. The value is a heuristic carried over from
// production tuning, not a derived bound.
var PrefixLength = 30

// KeyPhrasePattern pulls salient fragments out of a normalized quote for the
// last-resort search tier: numeric-unit tokens (tonnages, percentages,
// decimal figures) or any three-consecutive-word run.
var KeyPhrasePattern = regexp.MustCompile(`\d+[\d,.]* ?mt|[\d.]+%|[\d,]+\.[\d]+|\b\w+ \w+ \w+`)

// MatchResult is the outcome of locating a quote inside a haystack.
// Start and End index into the normalized haystack. Found=false is an
// expected, non-exceptional outcome: the claim's value is still surfaced to
// the user, only without a navigable anchor.
type MatchResult struct {
	Found    bool          `json:"found"`
	Strategy MatchStrategy `json:"strategy,omitempty"`
	Text     string        `json:"matchedSubstring,omitempty"`
	Start    int           `json:"startIndex"`
	End      int           `json:"endIndex"`
}

// MatchSpan locates a raw claim quote inside a normalized haystack using a
// three-tier fallback: exact substring, then the quote's opening prefix,
// then extracted key phrases. The first tier to succeed wins, and within a
// tier the left-most occurrence is returned; multiple occurrences are never
// ranked.
func MatchSpan(haystack, quote string) MatchResult {
	needle := Normalize(quote)
	if needle == "" || haystack == "" {
		return MatchResult{}
	}

	if i := strings.Index(haystack, needle); i >= 0 {
		return MatchResult{Found: true, Strategy: MatchExact, Text: needle, Start: i, End: i + len(needle)}
	}

	if len(needle) > PrefixLength {
		prefix := needle[:PrefixLength]
		if i := strings.Index(haystack, prefix); i >= 0 {
			return MatchResult{Found: true, Strategy: MatchPartialPrefix, Text: prefix, Start: i, End: i + len(prefix)}
		}
	}

	for _, phrase := range KeyPhrasePattern.FindAllString(needle, -1) {
		if i := strings.Index(haystack, phrase); i >= 0 {
			return MatchResult{Found: true, Strategy: MatchKeyPhrase, Text: phrase, Start: i, End: i + len(phrase)}
		}
	}

	return MatchResult{}
}

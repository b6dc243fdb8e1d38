// Package scoring implements the keyword-based relevance engine that matches
// job descriptions against profile items and selects the top items per
// category. It is pure and CPU-only; the optional context cache is the only
// shared state.
package scoring

import (
	"strings"
	"unicode"
)

// stopWords are common English function words excluded from matching.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "as": {}, "is": {}, "was": {}, "are": {}, "were": {},
	"been": {}, "be": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {},
	"should": {}, "may": {}, "might": {}, "must": {}, "shall": {},
	"can": {}, "need": {}, "we": {}, "you": {}, "they": {}, "he": {},
	"she": {}, "it": {}, "i": {}, "me": {}, "my": {}, "our": {},
	"your": {}, "their": {}, "this": {}, "that": {}, "these": {},
	"those": {}, "what": {}, "which": {}, "who": {}, "whom": {},
	"when": {}, "where": {}, "why": {}, "how": {}, "all": {}, "each": {},
	"every": {}, "both": {}, "few": {}, "more": {}, "most": {},
	"other": {}, "some": {}, "such": {}, "no": {}, "not": {}, "only": {},
	"own": {}, "same": {}, "so": {}, "than": {}, "too": {}, "very": {},
	"just": {}, "also": {}, "about": {}, "into": {}, "through": {},
	"during": {}, "before": {}, "after": {}, "above": {}, "below": {},
	"between": {}, "under": {}, "again": {}, "further": {}, "then": {},
	"once": {},
}

// Tokenize turns free text into a filtered sequence of lowercase keyword
// tokens in original order. It keeps '+', '#' and '.' so tokens like "c++",
// "c#", ".net" and "node.js" survive, strips a trailing sentence period,
// and drops stop words, single characters and pure numbers.
func Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		case r == '+' || r == '#' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	var tokens []string
	for _, t := range strings.Fields(b.String()) {
		// Sentence-ending punctuation, but keep ".net" and a lone dot intact.
		if strings.HasSuffix(t, ".") && t != ".net" && len(t) > 1 {
			t = strings.TrimRight(t, ".")
		}
		if _, stop := stopWords[t]; stop {
			continue
		}
		if len(t) <= 1 || isAllDigits(t) {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// tokenSet tokenizes text and collapses the result into a set.
func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range Tokenize(text) {
		set[t] = struct{}{}
	}
	return set
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

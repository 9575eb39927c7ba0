package evidence

import (
	"strings"
	"unicode"
)

// GenerateQueries produces the search queries for a claim: the claim itself,
// a fact-check variant, and an entity-focused variant built from capitalized
// words. Deterministic, no model call involved.
func GenerateQueries(claim string) []string {
	queries := []string{
		claim,
		"fact check " + claim,
	}

	entities := capitalizedWords(claim)
	if len(entities) > 0 {
		if len(entities) > 2 {
			entities = entities[:2]
		}
		queries = append(queries, strings.Join(entities, " ")+" facts verification")
	} else {
		queries = append(queries, "truth about "+truncate(claim, 50))
	}

	return queries
}

// capitalizedWords returns the words that start with an upper-case letter,
// skipping short fragments. Crude, but good enough to pull aircraft names
// and manufacturers out of a claim.
func capitalizedWords(text string) []string {
	var words []string
	for _, w := range strings.Fields(text) {
		runes := []rune(w)
		if len(runes) > 2 && unicode.IsUpper(runes[0]) {
			words = append(words, w)
		}
	}
	return words
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

package evidence

import (
	"strings"

	"github.com/ppiankov/chaff/internal/search"
)

const (
	maxFacts           = 5
	minSentenceLen     = 20
	sentencesPerResult = 3
)

// Fact is one extracted statement with its originating source
type Fact struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

// ExtractFacts derives short factual statements from search results by naive
// sentence selection: the first few sentences of each snippet, short fragments
// dropped, duplicates removed case-insensitively while preserving order.
func ExtractFacts(results []search.Result) []Fact {
	seen := make(map[string]struct{})
	var facts []Fact

	for _, r := range results {
		sentences := strings.Split(r.Snippet, ". ")
		if len(sentences) > sentencesPerResult {
			sentences = sentences[:sentencesPerResult]
		}
		for _, s := range sentences {
			s = strings.TrimSpace(s)
			if len(s) <= minSentenceLen {
				continue
			}
			key := strings.ToLower(s)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			facts = append(facts, Fact{Text: s, Source: r.Source})
			if len(facts) >= maxFacts {
				return facts
			}
		}
	}

	return facts
}

package evidence

import (
	"testing"

	"github.com/ppiankov/chaff/internal/search"
)

func TestExtractFacts_SentenceSelection(t *testing.T) {
	results := []search.Result{
		{
			Snippet: "The Boeing 747 first flew in 1969 and carries four engines. Short. It remains in widespread cargo service today. A fourth sentence that should be ignored entirely by the extractor.",
			Source:  "https://example.com/747",
		},
	}

	facts := ExtractFacts(results)

	// Only the first three sentences are considered, and "Short." is dropped
	if len(facts) != 2 {
		t.Fatalf("Expected 2 facts, got %d: %v", len(facts), facts)
	}
	if facts[0].Text != "The Boeing 747 first flew in 1969 and carries four engines" {
		t.Errorf("Unexpected first fact: %q", facts[0].Text)
	}
	if facts[0].Source != "https://example.com/747" {
		t.Errorf("Expected source attached to fact, got %q", facts[0].Source)
	}
}

func TestExtractFacts_DeduplicatesCaseInsensitive(t *testing.T) {
	results := []search.Result{
		{Snippet: "The Concorde was retired in 2003 after 27 years of service", Source: "https://a.example.com"},
		{Snippet: "THE CONCORDE WAS RETIRED IN 2003 AFTER 27 YEARS OF SERVICE", Source: "https://b.example.com"},
	}

	facts := ExtractFacts(results)

	if len(facts) != 1 {
		t.Fatalf("Expected 1 fact after dedupe, got %d", len(facts))
	}
	// First occurrence wins, source included
	if facts[0].Source != "https://a.example.com" {
		t.Errorf("Expected first source to win, got %q", facts[0].Source)
	}
}

func TestExtractFacts_CapsTotal(t *testing.T) {
	results := []search.Result{
		{Snippet: "Runway one is three thousand meters long and paved. Runway two is three thousand meters long and grooved. Runway three handles only daylight operations", Source: "https://a.example.com"},
		{Snippet: "Terminal one opened in nineteen seventy for domestic flights. Terminal two opened in nineteen eighty for international flights. Terminal three remains under construction", Source: "https://b.example.com"},
	}

	facts := ExtractFacts(results)

	if len(facts) != maxFacts {
		t.Errorf("Expected %d facts, got %d", maxFacts, len(facts))
	}
}

func TestExtractFacts_Empty(t *testing.T) {
	if facts := ExtractFacts(nil); len(facts) != 0 {
		t.Errorf("Expected no facts for no results, got %d", len(facts))
	}

	// Snippets below the length floor yield nothing
	results := []search.Result{{Snippet: "Too short. Also tiny.", Source: "https://a.example.com"}}
	if facts := ExtractFacts(results); len(facts) != 0 {
		t.Errorf("Expected no facts from short fragments, got %d", len(facts))
	}
}

package search

import (
	"context"
	"strings"
	"testing"
)

func TestMockProvider_KeywordMatch(t *testing.T) {
	provider := NewMockProvider()

	results, err := provider.Search(context.Background(), "fact check Boeing 747 engines")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 canned results, got %d", len(results))
	}
	if !strings.Contains(results[0].Snippet, "747") {
		t.Errorf("Expected 747 fact, got %q", results[0].Snippet)
	}
}

func TestMockProvider_CaseInsensitive(t *testing.T) {
	provider := NewMockProvider()

	results, err := provider.Search(context.Background(), "CONCORDE top speed")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(results) == 0 || !strings.Contains(results[0].Snippet, "Concorde") {
		t.Errorf("Expected Concorde facts, got %v", results)
	}
}

func TestMockProvider_DefaultFallback(t *testing.T) {
	provider := NewMockProvider()

	results, err := provider.Search(context.Background(), "helicopter rotor physics")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected default facts, got %d results", len(results))
	}
	if results[0].Source != "mock:general" {
		t.Errorf("Expected general source tag, got %q", results[0].Source)
	}
}

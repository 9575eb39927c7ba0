package search

import (
	"context"
	"strings"
)

// Canned aviation facts keyed by query keyword. Used for offline runs and
// predictable demos.
var (
	mockKeys  = []string{"747", "concorde"}
	mockFacts = map[string][]Result{
		"747": {
			{Snippet: "The Boeing 747 has 4 engines", Source: "mock:747"},
			{Snippet: "The 747 first flew in 1969", Source: "mock:747"},
		},
		"concorde": {
			{Snippet: "The Concorde could fly at Mach 2.04", Source: "mock:concorde"},
			{Snippet: "The Concorde was retired in 2003", Source: "mock:concorde"},
		},
	}
	mockDefault = []Result{
		{Snippet: "Commercial pilots need an ATP license", Source: "mock:general"},
		{Snippet: "Modern aircraft have multiple redundant systems", Source: "mock:general"},
	}
)

// MockProvider returns predictable aviation facts without any network
// dependency
type MockProvider struct{}

// NewMockProvider creates a mock search provider
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Name returns the provider name
func (p *MockProvider) Name() string {
	return "mock"
}

// Search matches the query against known keywords and falls back to
// general aviation facts
func (p *MockProvider) Search(_ context.Context, query string) ([]Result, error) {
	lower := strings.ToLower(query)
	for _, key := range mockKeys {
		if strings.Contains(lower, key) {
			return mockFacts[key], nil
		}
	}
	return mockDefault, nil
}

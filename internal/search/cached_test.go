package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ppiankov/chaff/internal/cache"
)

// countingProvider records how many searches reach the backend
type countingProvider struct {
	results []Result
	err     error
	calls   int
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) Search(_ context.Context, _ string) ([]Result, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.results, nil
}

func TestCachedProvider_SecondCallHitsCache(t *testing.T) {
	inner := &countingProvider{
		results: []Result{{Snippet: "The 747 first flew in 1969", Source: "mock:747"}},
	}
	provider := NewCachedProvider(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, nil)

	for i := 0; i < 2; i++ {
		results, err := provider.Search(context.Background(), "747 first flight")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(results) != 1 || results[0].Source != "mock:747" {
			t.Fatalf("Unexpected results: %v", results)
		}
	}

	if inner.calls != 1 {
		t.Errorf("Expected 1 backend call, got %d", inner.calls)
	}
}

func TestCachedProvider_DistinctQueriesMiss(t *testing.T) {
	inner := &countingProvider{results: []Result{{Snippet: "fact", Source: "s"}}}
	provider := NewCachedProvider(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, nil)

	_, _ = provider.Search(context.Background(), "query one")
	_, _ = provider.Search(context.Background(), "query two")

	if inner.calls != 2 {
		t.Errorf("Expected 2 backend calls for distinct queries, got %d", inner.calls)
	}
}

func TestCachedProvider_ErrorsAreNotCached(t *testing.T) {
	inner := &countingProvider{err: ErrUnavailable}
	provider := NewCachedProvider(inner, cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, nil)

	for i := 0; i < 2; i++ {
		if _, err := provider.Search(context.Background(), "flaky"); !errors.Is(err, ErrUnavailable) {
			t.Fatalf("Expected ErrUnavailable, got %v", err)
		}
	}

	if inner.calls != 2 {
		t.Errorf("Expected every failed search to reach the backend, got %d calls", inner.calls)
	}
}

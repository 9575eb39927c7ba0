package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleResultsHTML = `<html><body>
<div class="results">
  <div class="result results_links results_links_deep web-result">
    <h2 class="result__title">
      <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fen.wikipedia.org%2Fwiki%2FBoeing_747&amp;rut=abc">Boeing 747 - Wikipedia</a>
    </h2>
    <a class="result__snippet" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fen.wikipedia.org%2Fwiki%2FBoeing_747">The Boeing 747 is a large, long-range wide-body airliner. It first flew in 1969.</a>
  </div>
  <div class="result results_links results_links_deep web-result">
    <h2 class="result__title">
      <a class="result__a" href="https://www.boeing.com/747">747 | Boeing</a>
    </h2>
    <div class="result__snippet">The 747 changed commercial aviation with its four-engine design.</div>
  </div>
</div>
</body></html>`

func TestParseResults(t *testing.T) {
	results, err := parseResults(sampleResultsHTML, 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	if results[0].Source != "https://en.wikipedia.org/wiki/Boeing_747" {
		t.Errorf("Expected unwrapped redirect URL, got %q", results[0].Source)
	}
	if results[0].Snippet == "" {
		t.Error("Expected non-empty snippet")
	}

	if results[1].Source != "https://www.boeing.com/747" {
		t.Errorf("Expected direct URL, got %q", results[1].Source)
	}
}

func TestParseResults_MaxResults(t *testing.T) {
	results, err := parseResults(sampleResultsHTML, 1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(results) != 1 {
		t.Errorf("Expected results capped at 1, got %d", len(results))
	}
}

func TestParseResults_NoResults(t *testing.T) {
	results, err := parseResults("<html><body><p>No results.</p></body></html>", 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(results) != 0 {
		t.Errorf("Expected no results, got %d", len(results))
	}
}

func TestCleanResultURL(t *testing.T) {
	tests := []struct {
		href     string
		expected string
		desc     string
	}{
		{
			href:     "//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fpage&rut=xyz",
			expected: "https://example.com/page",
			desc:     "Redirect link unwrapped",
		},
		{
			href:     "https://example.com/direct",
			expected: "https://example.com/direct",
			desc:     "Direct link untouched",
		},
		{
			href:     "/relative/path",
			expected: "/relative/path",
			desc:     "Relative link untouched",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := cleanResultURL(tt.href); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDuckDuckGoProvider_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.URL.Query().Get("q") == "" {
			t.Error("Expected q query parameter")
		}
		io.WriteString(w, sampleResultsHTML)
	}))
	defer server.Close()

	provider := NewDuckDuckGoProvider(Config{
		BaseURL:           server.URL + "/html/",
		UserAgent:         "Chaff/0.1 (+https://github.com/ppiankov/chaff)",
		Timeout:           5,
		MaxResults:        5,
		RequestsPerSecond: 100,
	}, nil)

	results, err := provider.Search(context.Background(), "Boeing 747 engines")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(results))
	}
}

func TestDuckDuckGoProvider_Search_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	provider := NewDuckDuckGoProvider(Config{
		BaseURL:           server.URL + "/html/",
		UserAgent:         "Chaff/0.1",
		Timeout:           5,
		RequestsPerSecond: 100,
	}, nil)

	_, err := provider.Search(context.Background(), "anything")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable, got %v", err)
	}
}

func TestDuckDuckGoProvider_Search_RobotsDisallowed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			fmt.Fprint(w, "User-agent: *\nDisallow: /\n")
			return
		}
		t.Error("Expected no fetch past a disallowing robots.txt")
	}))
	defer server.Close()

	provider := NewDuckDuckGoProvider(Config{
		BaseURL:           server.URL + "/html/",
		UserAgent:         "Chaff/0.1",
		Timeout:           5,
		RequestsPerSecond: 100,
	}, nil)

	_, err := provider.Search(context.Background(), "anything")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable for disallowed fetch, got %v", err)
	}
}

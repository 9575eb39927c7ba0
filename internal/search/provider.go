package search

import (
	"context"
	"errors"

	"github.com/ppiankov/chaff/internal/model"
)

// ErrUnavailable marks a search call that could not reach its backend.
// The evidence pipeline treats it as a degraded query, never a fatal error.
var ErrUnavailable = errors.New("search unavailable")

// Result is one search hit
type Result struct {
	// Snippet is the text excerpt returned for the query
	Snippet string `json:"snippet"`

	// Source identifies where the snippet came from (URL or provider tag)
	Source string `json:"source"`
}

// Provider defines the interface for search backends. An empty result
// list is a valid answer, not an error.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Search returns ranked snippets for the query
	Search(ctx context.Context, query string) ([]Result, error)
}

// Config holds search provider configuration
type Config struct {
	// Provider name: "duckduckgo", "mock", ""
	Provider string

	// BaseURL overrides the provider endpoint
	BaseURL string

	// UserAgent sent with outbound requests
	UserAgent string

	// Timeout for search requests
	Timeout int // seconds

	// MaxResults caps the snippets returned per query
	MaxResults int

	// RequestsPerSecond limits outbound request rate per host
	RequestsPerSecond float64

	// Burst allows short bursts above the sustained rate
	Burst int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "",
		UserAgent:         "Chaff/0.1 (+https://github.com/ppiankov/chaff)",
		Timeout:           15,
		MaxResults:        5,
		RequestsPerSecond: 1.0,
		Burst:             2,
	}
}

// ConfigFromModel converts the application config sections into a
// search.Config
func ConfigFromModel(sc model.SearchConfig, rl model.RateLimitingConfig) Config {
	return Config{
		Provider:          sc.Provider,
		BaseURL:           sc.BaseURL,
		UserAgent:         sc.UserAgent,
		Timeout:           sc.Timeout,
		MaxResults:        sc.MaxResults,
		RequestsPerSecond: rl.RequestsPerSecond,
		Burst:             rl.BurstSize,
		HTTPProxy:         sc.HTTPProxy,
		HTTPSProxy:        sc.HTTPSProxy,
	}
}

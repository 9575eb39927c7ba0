package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/ppiankov/chaff/internal/util"
)

const defaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"

// DuckDuckGoProvider scrapes the DuckDuckGo HTML results endpoint.
// Outbound requests honor robots.txt and are paced per host.
type DuckDuckGoProvider struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	maxResults int
	robots     *util.RobotsChecker
	limiter    *util.RateLimiter
	logger     *zap.Logger
}

// NewDuckDuckGoProvider creates a DuckDuckGo search provider
func NewDuckDuckGoProvider(config Config, logger *zap.Logger) *DuckDuckGoProvider {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultDuckDuckGoURL
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 15
	}

	maxResults := config.MaxResults
	if maxResults == 0 {
		maxResults = 5
	}

	rps := config.RequestsPerSecond
	if rps == 0 {
		rps = 1.0
	}

	return &DuckDuckGoProvider{
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, ""),
			},
		},
		baseURL:    baseURL,
		userAgent:  config.UserAgent,
		maxResults: maxResults,
		robots:     util.NewRobotsChecker(config.UserAgent, time.Duration(timeout)*time.Second),
		limiter:    util.NewRateLimiter(rps, config.Burst),
		logger:     logger,
	}
}

// Name returns the provider name
func (p *DuckDuckGoProvider) Name() string {
	return "duckduckgo"
}

// Search runs one query against the HTML results endpoint. Transport
// failures, disallowed fetches, and non-200 responses all surface as
// ErrUnavailable so the caller can degrade gracefully.
func (p *DuckDuckGoProvider) Search(ctx context.Context, query string) ([]Result, error) {
	endpoint := p.baseURL + "?q=" + url.QueryEscape(query)

	allowed, crawlDelay, err := p.robots.CanFetch(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("robots check: %w: %w", ErrUnavailable, err)
	}
	if !allowed {
		p.logger.Warn("search blocked by robots.txt", zap.String("url", p.baseURL))
		return nil, fmt.Errorf("robots.txt disallows fetch: %w", ErrUnavailable)
	}

	if err := p.limiter.WaitWithDelay(ctx, endpoint, crawlDelay); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w: %w", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %w", resp.StatusCode, ErrUnavailable)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w: %w", ErrUnavailable, err)
	}

	results, err := parseResults(string(body), p.maxResults)
	if err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}

	p.logger.Debug("search complete",
		zap.String("query", query),
		zap.Int("results", len(results)))

	return results, nil
}

// parseResults walks the DuckDuckGo HTML results page. Each result block
// carries a "result__a" title link followed by a "result__snippet" node;
// a sequential walk pairs snippets with the preceding link.
func parseResults(htmlContent string, maxResults int) ([]Result, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	var results []Result
	currentSource := ""

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(results) >= maxResults {
			return
		}

		if n.Type == html.ElementNode {
			if n.Data == "a" && hasClass(n, "result__a") {
				for _, attr := range n.Attr {
					if attr.Key == "href" {
						currentSource = cleanResultURL(attr.Val)
					}
				}
			}

			if hasClass(n, "result__snippet") {
				snippet := strings.TrimSpace(nodeText(n))
				if snippet != "" {
					results = append(results, Result{
						Snippet: snippet,
						Source:  currentSource,
					})
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)

	return results, nil
}

// cleanResultURL unwraps DuckDuckGo redirect links (the real target is in
// the uddg query parameter)
func cleanResultURL(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}

	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}

	return href
}

// nodeText collects the text content of a node and its children
func nodeText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

// hasClass reports whether the node's class attribute contains the class
func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" && strings.Contains(attr.Val, class) {
			return true
		}
	}
	return false
}

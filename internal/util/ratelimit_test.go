package util

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_New(t *testing.T) {
	limiter := NewRateLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewRateLimiter(10, -1)
	if l2.defaultBurst != 2 {
		t.Errorf("expected default burst 2 for negative input, got %d", l2.defaultBurst)
	}
}

func TestRateLimiter_Wait(t *testing.T) {
	limiter := NewRateLimiter(100, 1) // 100 rps, burst 1
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://html.duckduckgo.com/html/?q=test"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different host should also work
	if err := limiter.Wait(ctx, "https://example.com"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestRateLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewRateLimiter(100, 1)
	ctx := context.Background()

	start := time.Now()
	err := limiter.WaitWithDelay(ctx, "https://example.com", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}

	duration := time.Since(start)
	if duration < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", duration)
	}
}

func TestRateLimiter_ExhaustsBurst(t *testing.T) {
	limiter := NewRateLimiter(1, 1)
	url := "https://example.com"

	if !limiter.Allow(url) {
		t.Errorf("first request should pass")
	}

	// Burst 1 token is consumed
	if limiter.Allow(url) {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}

	// Different host has its own bucket
	if !limiter.Allow("https://other.com") {
		t.Errorf("expected allow for other host")
	}
}

func TestRateLimiter_SetHostRate(t *testing.T) {
	limiter := NewRateLimiter(10, 10) // fast default

	limiter.SetHostRate("slow.com", 0.1, 1) // very slow

	if !limiter.Allow("https://slow.com") {
		t.Errorf("first request should pass")
	}

	if limiter.Allow("https://slow.com") {
		t.Errorf("second request should fail")
	}

	if !limiter.Allow("https://fast.com") {
		t.Errorf("other host should pass")
	}
}

func TestExtractHost(t *testing.T) {
	host, err := extractHost("https://example.com/foo")
	if err != nil {
		t.Fatalf("extractHost failed: %v", err)
	}
	if host != "example.com" {
		t.Errorf("expected example.com, got %s", host)
	}

	_, err = extractHost("::invalid")
	if err == nil {
		t.Errorf("expected error for invalid URL")
	}
}

func TestNormalizeUserAgent(t *testing.T) {
	got := NormalizeUserAgent("Chaff/0.1 (+https://github.com/ppiankov/chaff)")
	if got != "Chaff" {
		t.Errorf("expected Chaff, got %s", got)
	}

	if got := NormalizeUserAgent(""); got != "" {
		t.Errorf("expected empty string unchanged, got %s", got)
	}
}

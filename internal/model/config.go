package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the full runtime configuration, assembled from defaults,
// the config file, environment variables and CLI flags
type Config struct {
	// Domain is the subject domain claims are expected to belong to
	Domain string `yaml:"domain"`

	LLM          LLMConfig          `yaml:"llm"`
	Detector     DetectorConfig     `yaml:"detector"`
	Search       SearchConfig       `yaml:"search"`
	Cache        CacheConfig        `yaml:"cache"`
	Review       ReviewConfig       `yaml:"review"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	Output       OutputConfig       `yaml:"output"`
}

// LLMConfig configures the LLM gateway
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string `yaml:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model"`

	// APIKey is normally supplied via environment, not the config file
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint (e.g. local Ollama)
	BaseURL string `yaml:"base_url,omitempty"`

	// Timeout per completion call, in seconds
	Timeout int `yaml:"timeout"`

	// MaxTokens limits completion length
	MaxTokens int `yaml:"max_tokens"`

	// Temperature for completions (low keeps verdicts stable)
	Temperature float64 `yaml:"temperature"`

	// Proxy settings (empty falls back to environment)
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
}

// DetectorConfig configures the claim evaluation state machine
type DetectorConfig struct {
	// ConfidenceThreshold routes claims below it to evidence lookup
	ConfidenceThreshold int `yaml:"confidence_threshold"`

	// MaxRetries bounds the retry loop for transient gateway failures
	MaxRetries int `yaml:"max_retries"`
}

// SearchConfig configures the search provider
type SearchConfig struct {
	// Provider name: "duckduckgo", "mock", "" (disabled)
	Provider string `yaml:"provider"`

	// BaseURL overrides the search endpoint (used by tests)
	BaseURL string `yaml:"base_url,omitempty"`

	// UserAgent for outbound requests and robots.txt matching
	UserAgent string `yaml:"user_agent"`

	// Timeout per search call, in seconds
	Timeout int `yaml:"timeout"`

	// MaxResults caps how many snippets one query may return
	MaxResults int `yaml:"max_results"`

	// Proxy settings (empty falls back to environment)
	HTTPProxy  string `yaml:"http_proxy,omitempty"`
	HTTPSProxy string `yaml:"https_proxy,omitempty"`
}

// CacheConfig configures search-result caching
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`

	// Dir is the disk cache directory (default: ~/.chaff/cache)
	Dir string `yaml:"dir"`

	// TTL is how long a cached search result stays valid
	TTL time.Duration `yaml:"ttl"`
}

// ReviewConfig configures production-mode trust scoring
type ReviewConfig struct {
	// TrustThreshold gates human review: below it, review is required
	TrustThreshold float64 `yaml:"trust_threshold"`

	// CalibrationFloor flags evaluations whose calibration score is too low
	CalibrationFloor float64 `yaml:"calibration_floor"`

	// ConfidenceFloor flags evaluations with very low stated confidence
	ConfidenceFloor int `yaml:"confidence_floor"`

	// AnomalyCeiling flags claims far outside the configured domain
	AnomalyCeiling float64 `yaml:"anomaly_ceiling"`

	// HistorySize bounds the rolling consistency history
	HistorySize int `yaml:"history_size"`
}

// ConcurrencyConfig configures batch evaluation
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitingConfig paces outbound search requests per host
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
	JSON    bool `yaml:"json"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Domain: "aviation",
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "",
			Timeout:     60,
			MaxTokens:   1000,
			Temperature: 0.3,
		},
		Detector: DetectorConfig{
			ConfidenceThreshold: 70,
			MaxRetries:          3,
		},
		Search: SearchConfig{
			Provider:   "duckduckgo",
			UserAgent:  "Chaff/0.1 (+https://github.com/ppiankov/chaff)",
			Timeout:    15,
			MaxResults: 5,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     defaultCacheDir(),
			TTL:     24 * time.Hour,
		},
		Review: ReviewConfig{
			TrustThreshold:   0.6,
			CalibrationFloor: 0.4,
			ConfidenceFloor:  50,
			AnomalyCeiling:   0.7,
			HistorySize:      100,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 1.0,
			BurstSize:         2,
		},
	}
}

// defaultCacheDir resolves ~/.chaff/cache, falling back to a relative
// directory when the home directory is unknown
func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chaff-cache"
	}
	return filepath.Join(home, ".chaff", "cache")
}

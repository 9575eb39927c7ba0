package llm

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/ppiankov/chaff/internal/model"
)

// ErrGatewayTimeout marks a completion call that exceeded its deadline.
// The state machine treats it as transient and retries with backoff.
var ErrGatewayTimeout = errors.New("llm gateway timeout")

// ErrGateway marks any other transport or API failure
var ErrGateway = errors.New("llm gateway error")

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete generates a completion for the given prompt
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one completion call
type CompletionRequest struct {
	// Prompt is the full prompt text
	Prompt string

	// System is an optional system instruction
	System string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature overrides the configured temperature when set
	Temperature float64
}

// CompletionResponse contains the completion output
type CompletionResponse struct {
	// Text is the completion text, whitespace-trimmed
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Temperature for completions (low keeps verdicts stable)
	Temperature float64

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "", // Disabled by default
		Model:       "",
		Timeout:     60,
		MaxTokens:   1000,
		Temperature: 0.3,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(mc model.LLMConfig) Config {
	return Config{
		Provider:    mc.Provider,
		Model:       mc.Model,
		APIKey:      mc.APIKey,
		BaseURL:     mc.BaseURL,
		Timeout:     mc.Timeout,
		MaxTokens:   mc.MaxTokens,
		Temperature: mc.Temperature,
		HTTPProxy:   mc.HTTPProxy,
		HTTPSProxy:  mc.HTTPSProxy,
	}
}

// wrapGatewayErr maps a transport failure onto the gateway error taxonomy.
// Deadline failures become ErrGatewayTimeout so callers can treat timeouts
// and other transient errors uniformly in the retry loop.
func wrapGatewayErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%s: %w: %w", op, ErrGatewayTimeout, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrGateway, err)
}

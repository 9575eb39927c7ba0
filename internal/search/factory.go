package search

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// NewProvider creates a search provider based on configuration.
// Returns nil (and no error) when no provider is configured: search is an
// optional capability and the detector skips evidence lookup without it.
func NewProvider(config Config, logger *zap.Logger) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "duckduckgo", "ddg":
		return NewDuckDuckGoProvider(config, logger), nil
	case "mock":
		return NewMockProvider(), nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown search provider: %s", config.Provider)
	}
}

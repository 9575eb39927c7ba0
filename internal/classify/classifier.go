package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/chaff/internal/llm"
	"github.com/ppiankov/chaff/internal/model"
)

// ErrInvalidInput marks a degenerate claim (empty or whitespace-only).
// It is never retried.
var ErrInvalidInput = errors.New("invalid input: empty claim")

// Classifier turns one claim into a structured judgment via a single
// LLM call plus a deterministic parser
type Classifier struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewClassifier creates a classifier backed by the given provider
func NewClassifier(provider llm.Provider, logger *zap.Logger) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		provider: provider,
		logger:   logger,
	}
}

// Classify evaluates one claim. Transport failures are returned as gateway
// errors for the caller's retry policy; an unparsable completion is NOT an
// error and comes back as a judgment with the ERROR verdict.
func (c *Classifier) Classify(ctx context.Context, claim string) (model.Judgment, error) {
	if strings.TrimSpace(claim) == "" {
		return model.Judgment{}, ErrInvalidInput
	}

	c.logger.Debug("classifying claim", zap.String("claim", claim))

	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		System: classifySystemPrompt,
		Prompt: fmt.Sprintf(classifyUserTemplate, claim),
	})
	if err != nil {
		return model.Judgment{}, fmt.Errorf("classify claim: %w", err)
	}

	judgment := ParseJudgment(resp.Text)
	c.logger.Debug("claim classified",
		zap.String("verdict", string(judgment.Verdict)),
		zap.Int("confidence", judgment.Confidence))

	return judgment, nil
}

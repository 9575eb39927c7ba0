package eval

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/chaff/internal/llm"
	"github.com/ppiankov/chaff/internal/model"
)

// neutralScore is the midpoint a sub-score degrades to when its judge call
// fails: a single grading failure must never abort a batch run
const neutralScore = 0.5

const qualityPromptTemplate = `Evaluate the quality of this reasoning for a claim verdict.

Claim: %s
Verdict: %s
Reasoning: %s

Score from 0-1 based on:
1. Does the reasoning logically support the verdict?
2. Are the arguments coherent and well-structured?
3. Does it address the key aspects of the claim?
4. Is it free from logical fallacies?

Respond with ONLY a number between 0 and 1.`

const plausibilityPromptTemplate = `Given this claim and verdict, evaluate if the verdict seems plausible.

Claim: %s
Verdict: %s

Consider:
1. Does the verdict (BS or LEGITIMATE) make intuitive sense?
2. Are there obvious red flags that were missed?
3. Does this match general knowledge and common sense?

Score from 0-1 where:
- 1.0 = Verdict seems very plausible
- 0.5 = Uncertain
- 0.0 = Verdict seems wrong

Respond with ONLY a number between 0 and 1.`

// Judge grades detector output with a second model call
type Judge struct {
	llm    llm.Provider
	logger *zap.Logger
}

// NewJudge creates a judge backed by the given provider
func NewJudge(provider llm.Provider, logger *zap.Logger) *Judge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Judge{
		llm:    provider,
		logger: logger,
	}
}

// Quality grades whether the reasoning actually supports the verdict, 0-1
func (j *Judge) Quality(ctx context.Context, claim string, verdict model.Verdict, reasoning string) float64 {
	return j.score(ctx, fmt.Sprintf(qualityPromptTemplate, claim, verdict, reasoning))
}

// Plausibility grades whether the verdict makes intuitive sense for the
// claim, independent of the reasoning, 0-1
func (j *Judge) Plausibility(ctx context.Context, claim string, verdict model.Verdict) float64 {
	return j.score(ctx, fmt.Sprintf(plausibilityPromptTemplate, claim, verdict))
}

func (j *Judge) score(ctx context.Context, prompt string) float64 {
	if j.llm == nil {
		return neutralScore
	}

	resp, err := j.llm.Complete(ctx, llm.CompletionRequest{Prompt: prompt})
	if err != nil {
		j.logger.Warn("judge call failed", zap.Error(err))
		return neutralScore
	}

	return parseScore(resp.Text)
}

// parseScore reads a bare 0-1 float from a judge reply. Anything the judge
// wraps in prose degrades to the neutral midpoint rather than failing.
func parseScore(text string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return neutralScore
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

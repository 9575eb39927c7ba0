package evidence

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/chaff/internal/llm"
	"github.com/ppiankov/chaff/internal/model"
	"github.com/ppiankov/chaff/internal/search"
)

const supportPromptTemplate = `Analyze this evidence in relation to the claim.

Claim: %s

Evidence found:
%s

Provide:
1. A brief summary of what the evidence shows
2. Whether the evidence SUPPORTS, REFUTES, or is INCONCLUSIVE regarding the claim
3. Key facts that influenced your assessment

Format your response as:
SUMMARY: [1-2 sentences]
ASSESSMENT: [SUPPORTS/REFUTES/INCONCLUSIVE]
KEY FACTS: [List 2-3 most relevant facts]`

// Finding is the outcome of one evidence gathering run. Support relates the
// evidence to the claim itself, not to any verdict about the claim.
type Finding struct {
	Facts   []Fact        `json:"facts"`
	Sources []string      `json:"sources"`
	Support model.Support `json:"support"`
	Queries []string      `json:"queries"`
}

// Pipeline gathers web evidence for a claim: generate queries, search each,
// extract facts, classify support. Every stage degrades gracefully — the
// pipeline never fails, it only gets less conclusive.
type Pipeline struct {
	search search.Provider
	llm    llm.Provider
	logger *zap.Logger
}

// NewPipeline creates an evidence pipeline. The LLM provider is used for
// support classification and may be nil, in which case every finding comes
// back INCONCLUSIVE.
func NewPipeline(searchProvider search.Provider, llmProvider llm.Provider, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		search: searchProvider,
		llm:    llmProvider,
		logger: logger,
	}
}

// Gather runs the full pipeline for one claim. Failed queries are skipped,
// a failed support classification leaves the finding INCONCLUSIVE.
func (p *Pipeline) Gather(ctx context.Context, claim string) *Finding {
	finding := &Finding{
		Support: model.SupportInconclusive,
		Queries: GenerateQueries(claim),
	}

	var results []search.Result
	for _, query := range finding.Queries {
		res, err := p.search.Search(ctx, query)
		if err != nil {
			p.logger.Warn("search query failed",
				zap.String("query", query),
				zap.Error(err))
			continue
		}
		results = append(results, res...)
	}

	finding.Facts = ExtractFacts(results)
	finding.Sources = collectSources(finding.Facts)

	if len(finding.Facts) == 0 {
		p.logger.Debug("no evidence found", zap.String("claim", claim))
		return finding
	}

	support, err := p.classifySupport(ctx, claim, finding.Facts)
	if err != nil {
		p.logger.Warn("evidence classification failed", zap.Error(err))
		return finding
	}
	finding.Support = support

	p.logger.Debug("evidence gathered",
		zap.Int("facts", len(finding.Facts)),
		zap.Int("sources", len(finding.Sources)),
		zap.String("support", string(finding.Support)))

	return finding
}

// classifySupport asks the model whether the facts support or refute the claim
func (p *Pipeline) classifySupport(ctx context.Context, claim string, facts []Fact) (model.Support, error) {
	if p.llm == nil {
		return model.SupportInconclusive, nil
	}

	var b strings.Builder
	for _, f := range facts {
		fmt.Fprintf(&b, "- %s\n", f.Text)
	}

	resp, err := p.llm.Complete(ctx, llm.CompletionRequest{
		Prompt: fmt.Sprintf(supportPromptTemplate, claim, strings.TrimRight(b.String(), "\n")),
	})
	if err != nil {
		return model.SupportInconclusive, fmt.Errorf("classify evidence: %w", err)
	}

	return ParseSupport(resp.Text), nil
}

// ParseSupport maps a model reply onto a support classification. REFUTES is
// checked first so a reply mentioning both labels counts as a refutation;
// anything without a recognizable label is INCONCLUSIVE.
func ParseSupport(text string) model.Support {
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "REFUTES"):
		return model.SupportRefutes
	case strings.Contains(upper, "SUPPORTS"):
		return model.SupportSupports
	default:
		return model.SupportInconclusive
	}
}

func collectSources(facts []Fact) []string {
	seen := make(map[string]struct{})
	var sources []string
	for _, f := range facts {
		if f.Source == "" {
			continue
		}
		if _, ok := seen[f.Source]; ok {
			continue
		}
		seen[f.Source] = struct{}{}
		sources = append(sources, f.Source)
	}
	return sources
}

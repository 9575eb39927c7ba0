package eval

import (
	"math"
	"strings"
	"sync"

	"github.com/ppiankov/chaff/internal/model"
)

// similarityThreshold is the minimum similarity for a prior claim to count
// as "the same claim asked again"
const similarityThreshold = 0.7

// SimilarityFunc scores how alike two claims are, 0-1. The default is
// word-set overlap; callers wanting embeddings can plug their own.
type SimilarityFunc func(a, b string) float64

// JaccardSimilarity is the default similarity: word-set intersection over
// union, case-insensitive.
func JaccardSimilarity(a, b string) float64 {
	aw := wordSet(a)
	bw := wordSet(b)
	if len(aw) == 0 || len(bw) == 0 {
		return 0
	}

	intersection := 0
	for w := range aw {
		if _, ok := bw[w]; ok {
			intersection++
		}
	}
	union := len(aw) + len(bw) - intersection

	return float64(intersection) / float64(union)
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(text)) {
		set[w] = struct{}{}
	}
	return set
}

type record struct {
	claim      string
	verdict    model.Verdict
	confidence int
}

// History is the rolling record of prior evaluations used for consistency
// scoring. It is the only cross-claim mutable state in the whole system,
// so it carries its own lock; everything else is private to one run.
type History struct {
	mu         sync.Mutex
	records    []record
	size       int
	similarity SimilarityFunc
}

// NewHistory creates a rolling history capped at size entries. A nil
// similarity function selects JaccardSimilarity.
func NewHistory(size int, similarity SimilarityFunc) *History {
	if size <= 0 {
		size = 100
	}
	if similarity == nil {
		similarity = JaccardSimilarity
	}
	return &History{
		size:       size,
		similarity: similarity,
	}
}

// Add appends an evaluation, evicting the oldest once the cap is reached
func (h *History) Add(claim string, verdict model.Verdict, confidence int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, record{claim: claim, verdict: verdict, confidence: confidence})
	if len(h.records) > h.size {
		h.records = h.records[len(h.records)-h.size:]
	}
}

// Len returns the number of stored evaluations
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

// Consistency scores the evaluation against similar prior claims, 0-1.
// With no history or no similar prior claim there is nothing to contradict,
// so the score is 1.0.
func (h *History) Consistency(claim string, verdict model.Verdict, confidence int) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	var similar []record
	for _, r := range h.records {
		if h.similarity(claim, r.claim) > similarityThreshold {
			similar = append(similar, r)
		}
	}
	if len(similar) == 0 {
		return 1.0
	}

	verdictScore := verdictAgreement(verdict, similar)
	confidenceScore := confidenceAgreement(confidence, similar)

	return (verdictScore + confidenceScore) / 2
}

// verdictAgreement is the fraction of similar prior claims with the same
// verdict
func verdictAgreement(verdict model.Verdict, similar []record) float64 {
	matching := 0
	for _, r := range similar {
		if r.verdict == verdict {
			matching++
		}
	}
	return float64(matching) / float64(len(similar))
}

// confidenceAgreement scores how far the confidence sits from the prior
// distribution, via z-score when there is spread
func confidenceAgreement(confidence int, similar []record) float64 {
	var sum float64
	for _, r := range similar {
		sum += float64(r.confidence)
	}
	mean := sum / float64(len(similar))

	var variance float64
	for _, r := range similar {
		d := float64(r.confidence) - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(len(similar)))

	if std == 0 {
		if math.Abs(float64(confidence)-mean) < 10 {
			return 1.0
		}
		return 0.5
	}

	z := math.Abs(float64(confidence)-mean) / std
	score := 1 - z/3
	if score < 0 {
		return 0
	}
	return score
}

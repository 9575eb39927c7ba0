package eval

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/chaff/internal/model"
	"github.com/ppiankov/chaff/internal/worker"
)

// Checker evaluates one claim end to end
type Checker interface {
	Check(ctx context.Context, claim string) (*model.Evaluation, error)
}

// LabeledResult pairs a dataset claim with its evaluation
type LabeledResult struct {
	Claim      model.Claim       `json:"claim"`
	Evaluation *model.Evaluation `json:"evaluation"`
	Correct    bool              `json:"correct"`
}

// Report is the outcome of a labeled run: per-claim results in dataset
// order plus aggregated metrics
type Report struct {
	Results []LabeledResult         `json:"results"`
	Metrics *model.AggregateMetrics `json:"metrics"`
}

// Runner drives a labeled dataset through the detector concurrently
type Runner struct {
	checker Checker
	workers int
	logger  *zap.Logger
}

// NewRunner creates a labeled evaluation runner
func NewRunner(checker Checker, workers int, logger *zap.Logger) *Runner {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		checker: checker,
		workers: workers,
		logger:  logger,
	}
}

// labeledJob evaluates one dataset claim inside the worker pool
type labeledJob struct {
	index   int
	claim   model.Claim
	checker Checker
}

// labeledJobResult carries the dataset index so results can be restored
// to dataset order after concurrent completion
type labeledJobResult struct {
	index  int
	result LabeledResult
}

func (r labeledJobResult) GetError() error { return nil }

// Execute runs the claim through the checker. A checker failure becomes an
// ERROR evaluation so the claim stays in the accuracy denominator.
func (j labeledJob) Execute(ctx context.Context) worker.Result {
	eval, err := j.checker.Check(ctx, j.claim.Text)
	if err != nil || eval == nil {
		eval = &model.Evaluation{
			Claim:       j.claim.Text,
			Verdict:     model.VerdictError,
			Confidence:  0,
			Err:         fmt.Sprintf("check failed: %v", err),
			EvaluatedAt: time.Now(),
		}
	}

	return labeledJobResult{
		index: j.index,
		result: LabeledResult{
			Claim:      j.claim,
			Evaluation: eval,
			Correct:    eval.Verdict == j.claim.Verdict,
		},
	}
}

// Run evaluates every claim and aggregates accuracy. Results come back in
// dataset order regardless of completion order.
func (r *Runner) Run(ctx context.Context, claims []model.Claim) *Report {
	pool := worker.NewPool(ctx, r.workers)
	pool.Start()

	collected := make(chan []worker.Result, 1)
	go func() {
		collected <- pool.Wait()
	}()

	for i, claim := range claims {
		pool.Submit(labeledJob{index: i, claim: claim, checker: r.checker})
	}
	pool.Close()

	raw := <-collected

	ordered := make([]labeledJobResult, 0, len(raw))
	for _, res := range raw {
		jr, ok := res.(labeledJobResult)
		if !ok {
			continue
		}
		ordered = append(ordered, jr)
		r.logger.Debug("labeled claim evaluated",
			zap.String("id", jr.result.Claim.ID),
			zap.String("verdict", string(jr.result.Evaluation.Verdict)),
			zap.Bool("correct", jr.result.Correct))
	}
	sort.Slice(ordered, func(a, b int) bool {
		return ordered[a].index < ordered[b].index
	})

	results := make([]LabeledResult, len(ordered))
	for i, jr := range ordered {
		results[i] = jr.result
	}

	return &Report{
		Results: results,
		Metrics: Aggregate(results),
	}
}

// Aggregate summarizes labeled results. Failures (verdict ERROR) count as
// incorrect, never as skipped.
func Aggregate(results []LabeledResult) *model.AggregateMetrics {
	m := &model.AggregateMetrics{
		Total:        len(results),
		ByDifficulty: make(map[model.Difficulty]*model.Breakdown),
		ByCategory:   make(map[string]*model.Breakdown),
	}
	if len(results) == 0 {
		return m
	}

	var confidenceCorrect, confidenceIncorrect float64
	incorrect := 0
	searched := 0
	var totalLatency time.Duration

	for _, r := range results {
		if r.Correct {
			m.Correct++
			confidenceCorrect += float64(r.Evaluation.Confidence)
		} else {
			incorrect++
			confidenceIncorrect += float64(r.Evaluation.Confidence)
		}
		if r.Evaluation.Verdict == model.VerdictError {
			m.Failures++
		}
		if r.Evaluation.UsedSearch {
			searched++
		}
		totalLatency += r.Evaluation.Elapsed

		db := m.ByDifficulty[r.Claim.Difficulty]
		if db == nil {
			db = &model.Breakdown{}
			m.ByDifficulty[r.Claim.Difficulty] = db
		}
		db.Total++
		if r.Correct {
			db.Correct++
		}

		if r.Claim.Category != "" {
			cb := m.ByCategory[r.Claim.Category]
			if cb == nil {
				cb = &model.Breakdown{}
				m.ByCategory[r.Claim.Category] = cb
			}
			cb.Total++
			if r.Correct {
				cb.Correct++
			}
		}
	}

	m.Accuracy = float64(m.Correct) / float64(m.Total)
	if m.Correct > 0 {
		m.MeanConfidenceCorrect = confidenceCorrect / float64(m.Correct)
	}
	if incorrect > 0 {
		m.MeanConfidenceIncorrect = confidenceIncorrect / float64(incorrect)
	}
	m.ConfidenceGap = m.MeanConfidenceCorrect - m.MeanConfidenceIncorrect
	m.SearchRate = float64(searched) / float64(m.Total)
	m.MeanLatency = totalLatency / time.Duration(m.Total)

	for _, b := range m.ByDifficulty {
		if b.Total > 0 {
			b.Accuracy = float64(b.Correct) / float64(b.Total)
		}
	}
	for _, b := range m.ByCategory {
		if b.Total > 0 {
			b.Accuracy = float64(b.Correct) / float64(b.Total)
		}
	}

	return m
}

package detect

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/chaff/internal/calibrate"
	"github.com/ppiankov/chaff/internal/classify"
	"github.com/ppiankov/chaff/internal/evidence"
	"github.com/ppiankov/chaff/internal/model"
)

// ErrInvalidInput marks a degenerate claim (empty or whitespace-only).
// It fails fast and is never retried.
var ErrInvalidInput = classify.ErrInvalidInput

const (
	// flipConfidence is assigned when evidence contradicts the initial
	// verdict: the flip is trusted, but residual uncertainty remains
	flipConfidence = 65

	// maxRevisedConfidence caps any evidence-driven confidence raise
	maxRevisedConfidence = 95

	// supportBoost is added when evidence agrees with the initial verdict
	supportBoost = 20
)

// Classifier produces an initial judgment for a claim
type Classifier interface {
	Classify(ctx context.Context, claim string) (model.Judgment, error)
}

// EvidenceGatherer runs the web evidence pipeline for a claim
type EvidenceGatherer interface {
	Gather(ctx context.Context, claim string) *evidence.Finding
}

// Detector drives one claim through the evaluation state machine: initial
// check with retries, confidence routing, optional evidence gathering,
// verdict revision. Every run yields exactly one Evaluation; only invalid
// input returns an error instead of a result.
type Detector struct {
	classifier Classifier
	evidence   EvidenceGatherer
	config     model.DetectorConfig
	logger     *zap.Logger

	// sleep is swapped out in tests to avoid real backoff waits
	sleep func(time.Duration)
}

// NewDetector creates a detector. The evidence gatherer may be nil, which
// disables the search pipeline entirely.
func NewDetector(classifier Classifier, gatherer EvidenceGatherer, config model.DetectorConfig, logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{
		classifier: classifier,
		evidence:   gatherer,
		config:     config,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Check evaluates one claim and always returns a complete Evaluation:
// a run that exhausts its retries comes back with the ERROR verdict and
// the last failure message, not a Go error.
func (d *Detector) Check(ctx context.Context, claim string) (*model.Evaluation, error) {
	start := time.Now()

	judgment, retries, err := d.initialCheck(ctx, claim)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		return d.finish(&model.Evaluation{
			Claim:      claim,
			Verdict:    model.VerdictError,
			Confidence: 0,
			Retries:    retries,
			Err:        err.Error(),
		}, start), nil
	}

	band := calibrate.Categorize(claim)
	eval := &model.Evaluation{
		Claim:      claim,
		Verdict:    judgment.Verdict,
		Confidence: judgment.Confidence,
		Reasoning:  judgment.Reasoning,
		Band:       band,
		Retries:    retries,
	}

	// Route on the lower of model and band confidence. The evaluation
	// itself keeps the model's own number when no search runs.
	effective := eval.Confidence
	if bc := band.Confidence(); bc < effective {
		effective = bc
	}
	if effective >= d.config.ConfidenceThreshold || d.evidence == nil {
		d.logger.Debug("confidence sufficient, skipping search",
			zap.Int("confidence", eval.Confidence),
			zap.Int("effective", effective),
			zap.String("band", band.String()))
		return d.finish(eval, start), nil
	}

	d.logger.Debug("low confidence, gathering evidence",
		zap.Int("effective", effective),
		zap.Int("threshold", d.config.ConfidenceThreshold))

	finding := d.evidence.Gather(ctx, claim)
	eval.UsedSearch = true
	eval.Support = finding.Support
	eval.Sources = finding.Sources
	d.revise(eval, finding.Support)

	return d.finish(eval, start), nil
}

// initialCheck runs the classifier with the retry loop. Gateway failures and
// unparsable replies both count as transient and back off exponentially
// (1s, 2s, 4s); invalid input fails fast.
func (d *Detector) initialCheck(ctx context.Context, claim string) (model.Judgment, int, error) {
	var lastErr error
	retries := 0
	for {
		judgment, err := d.classifier.Classify(ctx, claim)
		switch {
		case errors.Is(err, ErrInvalidInput):
			return model.Judgment{}, retries, err
		case err != nil:
			lastErr = err
		case judgment.IsError():
			lastErr = fmt.Errorf("unparsable reply: %s", judgment.Reasoning)
		default:
			return judgment, retries, nil
		}

		if retries >= d.config.MaxRetries || ctx.Err() != nil {
			return model.Judgment{}, retries, lastErr
		}
		retries++
		wait := time.Duration(1<<(retries-1)) * time.Second
		d.logger.Warn("initial check failed, retrying",
			zap.Int("retry", retries),
			zap.Duration("backoff", wait),
			zap.Error(lastErr))
		d.sleep(wait)
	}
}

// revise applies the fixed evidence policy to the evaluation in place.
// Support is relative to the claim, so evidence agrees with the current
// verdict when it supports a LEGITIMATE claim or refutes a BS one.
func (d *Detector) revise(eval *model.Evaluation, support model.Support) {
	if support == model.SupportInconclusive {
		// Unresolved uncertainty: confidence never rises past the
		// threshold that triggered the search
		if eval.Confidence > d.config.ConfidenceThreshold {
			eval.Confidence = d.config.ConfidenceThreshold
		}
		return
	}

	agrees := (support == model.SupportSupports && eval.Verdict == model.VerdictLegitimate) ||
		(support == model.SupportRefutes && eval.Verdict == model.VerdictBS)
	if agrees {
		eval.Confidence += supportBoost
		if eval.Confidence > maxRevisedConfidence {
			eval.Confidence = maxRevisedConfidence
		}
		return
	}

	prior := eval.Verdict
	eval.Verdict = prior.Opposite()
	eval.Confidence = flipConfidence
	eval.Reasoning = fmt.Sprintf("Initially judged %s, but gathered evidence indicates otherwise. %s",
		prior, eval.Reasoning)
	d.logger.Info("verdict flipped by evidence",
		zap.String("from", string(prior)),
		zap.String("to", string(eval.Verdict)))
}

func (d *Detector) finish(eval *model.Evaluation, start time.Time) *model.Evaluation {
	eval.Elapsed = time.Since(start)
	eval.EvaluatedAt = time.Now()
	return eval
}

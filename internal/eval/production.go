package eval

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/chaff/internal/llm"
	"github.com/ppiankov/chaff/internal/model"
)

// ProductionEvaluator scores evaluations without ground truth and gates
// human review. Safe for concurrent use: the history carries the only lock.
type ProductionEvaluator struct {
	judge   *Judge
	history *History
	drift   *DriftDetector
	config  model.ReviewConfig
	logger  *zap.Logger
}

// NewProductionEvaluator wires judge, history and drift detection for the
// given domain. A nil judgeProvider degrades judge scores to neutral; a nil
// history gets a fresh one sized from the config.
func NewProductionEvaluator(judgeProvider llm.Provider, history *History, domain string, cfg model.ReviewConfig, logger *zap.Logger) *ProductionEvaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if history == nil {
		history = NewHistory(cfg.HistorySize, nil)
	}
	return &ProductionEvaluator{
		judge:   NewJudge(judgeProvider, logger),
		history: history,
		drift:   NewDriftDetector(domain),
		config:  cfg,
		logger:  logger,
	}
}

// Evaluate scores one finished evaluation. It never fails: judge outages
// degrade to neutral sub-scores and any upstream error rides along in Err.
func (p *ProductionEvaluator) Evaluate(ctx context.Context, eval *model.Evaluation) *model.ProductionMetrics {
	m := &model.ProductionMetrics{
		Claim:      eval.Claim,
		Verdict:    eval.Verdict,
		Confidence: eval.Confidence,
		Err:        eval.Err,
	}

	m.Quality = p.judge.Quality(ctx, eval.Claim, eval.Verdict, eval.Reasoning)
	m.Plausibility = p.judge.Plausibility(ctx, eval.Claim, eval.Verdict)
	m.Calibration = CalibrationScore(eval.Confidence, eval.Reasoning)
	m.Consistency = p.history.Consistency(eval.Claim, eval.Verdict, eval.Confidence)
	m.Anomaly = p.drift.Anomaly(eval.Claim)

	m.Trust = (m.Quality + m.Calibration + m.Consistency) / 3 * (1 - m.Anomaly)

	m.ReviewReasons = p.reviewReasons(m)
	m.RequiresReview = len(m.ReviewReasons) > 0
	m.EvaluatedAt = time.Now()

	p.history.Add(eval.Claim, eval.Verdict, eval.Confidence)

	p.logger.Debug("production evaluation",
		zap.String("claim", eval.Claim),
		zap.Float64("trust", m.Trust),
		zap.Bool("requires_review", m.RequiresReview),
		zap.Strings("reasons", m.ReviewReasons))

	return m
}

// reviewReasons lists every review gate the metrics trip
func (p *ProductionEvaluator) reviewReasons(m *model.ProductionMetrics) []string {
	var reasons []string
	if m.Trust < p.config.TrustThreshold {
		reasons = append(reasons, "trust below threshold")
	}
	if m.Calibration < p.config.CalibrationFloor {
		reasons = append(reasons, "calibration below floor")
	}
	if m.Confidence < p.config.ConfidenceFloor {
		reasons = append(reasons, "confidence below floor")
	}
	if m.Anomaly > p.config.AnomalyCeiling {
		reasons = append(reasons, "anomaly above ceiling")
	}
	if m.Confidence > 90 && m.Plausibility < 0.5 {
		reasons = append(reasons, "high confidence on implausible verdict")
	}
	return reasons
}

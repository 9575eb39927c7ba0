package model

import "time"

// Breakdown is an accuracy slice over one dataset grouping
type Breakdown struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// AggregateMetrics summarizes a labeled evaluation run.
// Failed claims stay in the denominator: a claim that exhausted retries
// counts as incorrect, never as skipped.
type AggregateMetrics struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Failures int     `json:"failures"`
	Accuracy float64 `json:"accuracy"`

	// ByDifficulty and ByCategory slice accuracy by dataset tags
	ByDifficulty map[Difficulty]*Breakdown `json:"by_difficulty"`
	ByCategory   map[string]*Breakdown     `json:"by_category"`

	// Mean confidence split by correctness. A gap at or below zero
	// (no more confident when right than when wrong) flags miscalibration.
	MeanConfidenceCorrect   float64 `json:"mean_confidence_correct"`
	MeanConfidenceIncorrect float64 `json:"mean_confidence_incorrect"`
	ConfidenceGap           float64 `json:"confidence_gap"`

	// SearchRate is the fraction of claims that triggered evidence lookup
	SearchRate float64 `json:"search_rate"`

	// MeanLatency is the mean per-claim wall-clock time
	MeanLatency time.Duration `json:"mean_latency"`
}

// ProductionMetrics scores one evaluation without ground truth.
// Sub-scores are 0-1; trust combines them and gates human review.
type ProductionMetrics struct {
	Claim      string  `json:"claim"`
	Verdict    Verdict `json:"verdict"`
	Confidence int     `json:"confidence"`

	// Quality grades whether the reasoning supports the verdict (judge call)
	Quality float64 `json:"quality"`

	// Plausibility grades how plausible the verdict is for the claim (judge call)
	Plausibility float64 `json:"plausibility"`

	// Calibration compares stated confidence against hedging language
	Calibration float64 `json:"calibration"`

	// Consistency compares against prior verdicts for similar claims
	Consistency float64 `json:"consistency"`

	// Anomaly is high when the claim vocabulary leaves the configured domain
	Anomaly float64 `json:"anomaly"`

	// Trust is the weighted average of quality, calibration and consistency,
	// discounted by (1 - anomaly)
	Trust float64 `json:"trust"`

	// RequiresReview routes the claim to a human when trust or any
	// sub-score falls below its floor
	RequiresReview bool     `json:"requires_review"`
	ReviewReasons  []string `json:"review_reasons,omitempty"`

	// Err records a per-claim evaluation failure; the batch continues
	Err string `json:"error,omitempty"`

	EvaluatedAt time.Time `json:"evaluated_at"`
}

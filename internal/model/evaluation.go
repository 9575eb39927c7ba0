package model

import "time"

// Support classifies how gathered evidence relates to a claim
type Support string

const (
	SupportSupports     Support = "SUPPORTS"
	SupportRefutes      Support = "REFUTES"
	SupportInconclusive Support = "INCONCLUSIVE"
)

// Judgment is one classifier reply: verdict, confidence, reasoning.
// A parse failure yields {ERROR, 0, detail} rather than an error value.
type Judgment struct {
	Verdict    Verdict `json:"verdict"`
	Confidence int     `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// IsError reports whether the judgment carries the error sentinel
func (j Judgment) IsError() bool {
	return j.Verdict == VerdictError
}

// Evaluation is the terminal result of one claim evaluation.
// Every run produces exactly one; the verdict is never empty
// (a failed run carries ERROR with confidence 0).
type Evaluation struct {
	// Claim is the input claim text
	Claim string `json:"claim"`

	// Verdict is the final verdict after any evidence revision
	Verdict Verdict `json:"verdict"`

	// Confidence is the final confidence, 0-100
	Confidence int `json:"confidence"`

	// Reasoning is the natural-language justification
	Reasoning string `json:"reasoning"`

	// Band is the calibration category assigned to the claim
	Band CategoryBand `json:"band,omitempty"`

	// UsedSearch reports whether the evidence pipeline ran
	UsedSearch bool `json:"used_search"`

	// Support is the evidence classification when search ran
	Support Support `json:"support,omitempty"`

	// Sources lists the source identifiers behind any revision
	Sources []string `json:"sources,omitempty"`

	// Retries is the number of retry attempts taken
	Retries int `json:"retries"`

	// Err carries the last error message for ERROR verdicts
	Err string `json:"error,omitempty"`

	// Elapsed is the wall-clock duration of the run
	Elapsed time.Duration `json:"elapsed"`

	// EvaluatedAt is when the run finished
	EvaluatedAt time.Time `json:"evaluated_at"`
}

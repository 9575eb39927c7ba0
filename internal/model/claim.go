package model

// Verdict is the outcome of judging a claim
type Verdict string

const (
	// VerdictLegitimate means the claim is judged factually sound
	VerdictLegitimate Verdict = "LEGITIMATE"

	// VerdictBS means the claim is judged false or misleading
	VerdictBS Verdict = "BS"

	// VerdictError is the sentinel for a failed evaluation (never null)
	VerdictError Verdict = "ERROR"
)

// Valid reports whether v is one of the three recognized verdicts
func (v Verdict) Valid() bool {
	return v == VerdictLegitimate || v == VerdictBS || v == VerdictError
}

// Opposite flips LEGITIMATE to BS and vice versa.
// ERROR has no opposite and is returned unchanged.
func (v Verdict) Opposite() Verdict {
	switch v {
	case VerdictLegitimate:
		return VerdictBS
	case VerdictBS:
		return VerdictLegitimate
	default:
		return v
	}
}

// Difficulty labels how hard a dataset claim is to judge
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Valid reports whether d is a recognized difficulty label
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Claim is one labeled dataset record. Claims are loaded once and never
// mutated; all per-run state lives in the evaluation, not here.
type Claim struct {
	// ID uniquely identifies the claim within a dataset
	ID string `json:"id"`

	// Text is the claim statement to judge
	Text string `json:"claim"`

	// Verdict is the ground-truth label (LEGITIMATE or BS)
	Verdict Verdict `json:"verdict"`

	// Difficulty is the expected judging difficulty
	Difficulty Difficulty `json:"difficulty"`

	// Category is a free-form topic tag (e.g. "historical", "technical")
	Category string `json:"category"`

	// Explanation documents why the ground-truth verdict holds
	Explanation string `json:"explanation,omitempty"`

	// NeedsEvidence marks claims expected to require external verification
	NeedsEvidence bool `json:"needs_evidence"`

	// ExpectedConfidence is the confidence a well-calibrated judge should report
	ExpectedConfidence int `json:"expected_confidence"`
}

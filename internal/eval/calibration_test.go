package eval

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestCalibrationScore(t *testing.T) {
	tests := []struct {
		desc       string
		confidence int
		reasoning  string
		expected   float64
	}{
		{
			desc:       "high confidence with certain language",
			confidence: 90,
			reasoning:  "This is clearly documented and confirmed by multiple sources.",
			// certainty 100, distance 10
			expected: 0.9,
		},
		{
			desc:       "low confidence with hedging language",
			confidence: 30,
			reasoning:  "This might be true but the evidence is unclear.",
			// certainty 0, distance 30
			expected: 0.7,
		},
		{
			desc:       "extreme confidence without certain language is penalized",
			confidence: 95,
			reasoning:  "The aircraft seems to have this feature.",
			// certainty 0, distance 95, then the 0.7 penalty
			expected: 0.035,
		},
		{
			desc:       "extreme doubt without hedging language is penalized",
			confidence: 10,
			reasoning:  "This is clearly false.",
			// certainty 100, distance 90, then the 0.7 penalty
			expected: 0.07,
		},
		{
			desc:       "no signal phrases defaults to midpoint certainty",
			confidence: 50,
			reasoning:  "The 747 entered service in 1970.",
			expected:   1.0,
		},
		{
			desc:       "mixed language balances out",
			confidence: 70,
			reasoning:  "It is confirmed that the exact figure might vary.",
			// one certain, one uncertain: certainty 50, distance 20
			expected: 0.8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := CalibrationScore(tt.confidence, tt.reasoning)
			if !almostEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestCalibrationScore_Range(t *testing.T) {
	for conf := 0; conf <= 100; conf += 10 {
		got := CalibrationScore(conf, "possibly definitely unclear proven")
		if got < 0 || got > 1 {
			t.Errorf("Expected score in [0,1] for confidence %d, got %v", conf, got)
		}
	}
}

func TestCountPhrases_PresenceNotFrequency(t *testing.T) {
	if got := countPhrases("might might might", uncertainPhrases); got != 1 {
		t.Errorf("Expected repeated phrase to count once, got %d", got)
	}
}

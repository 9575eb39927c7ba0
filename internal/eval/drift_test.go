package eval

import (
	"strings"
	"testing"
)

func TestDriftDetector_Anomaly(t *testing.T) {
	d := NewDriftDetector("aviation")

	tests := []struct {
		desc     string
		claim    string
		expected float64
	}{
		{
			desc:     "strongly on-domain claim",
			claim:    "The Boeing 747 aircraft completed its first flight in 1969",
			expected: 0,
		},
		{
			desc:  "single keyword hit",
			claim: "The aircraft is louder than its predecessor",
			// 1 of the 3 hits needed for full domain confidence
			expected: 2.0 / 3.0,
		},
		{
			desc:     "no keyword hits scores the midpoint",
			claim:    "Chocolate consumption improves memory in adults",
			expected: 0.5,
		},
		{
			desc:     "keyword matching is case-insensitive",
			claim:    "BOEING and AIRBUS dominate commercial FLIGHT",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := d.Anomaly(tt.claim); !almostEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDriftDetector_DegenerateLength(t *testing.T) {
	d := NewDriftDetector("aviation")

	if got := d.Anomaly("Too short"); !almostEqual(got, 0.7) {
		t.Errorf("Expected 0.7 for a too-short claim, got %v", got)
	}

	long := strings.Repeat("aircraft flight pilot ", 30)
	if got := d.Anomaly(long); !almostEqual(got, 0.7) {
		t.Errorf("Expected 0.7 for an overlong claim despite keyword hits, got %v", got)
	}
}

func TestDriftDetector_UnknownDomain(t *testing.T) {
	d := NewDriftDetector("gardening")

	// no keyword list: even aviation vocabulary scores the midpoint
	if got := d.Anomaly("The aircraft flight was delayed at the airport"); !almostEqual(got, 0.5) {
		t.Errorf("Expected 0.5 for unknown domain, got %v", got)
	}
}

func TestDriftDetector_OtherDomains(t *testing.T) {
	d := NewDriftDetector("Finance")

	// domain lookup is case-insensitive
	if got := d.Anomaly("The stock market reflects investment sentiment"); !almostEqual(got, 0) {
		t.Errorf("Expected 0 for on-domain finance claim, got %v", got)
	}
}

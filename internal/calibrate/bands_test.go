package calibrate

import (
	"fmt"
	"testing"
	"time"

	"github.com/ppiankov/chaff/internal/model"
)

func TestCategorize_MarkerRules(t *testing.T) {
	tests := []struct {
		claim    string
		expected model.CategoryBand
		desc     string
	}{
		{
			claim:    "Tesla delivered 500,000 cars last quarter",
			expected: model.BandRecent,
			desc:     "Temporal marker routes to RECENT",
		},
		{
			claim:    "The airline will retire its entire fleet of jumbo jets",
			expected: model.BandFuture,
			desc:     "Modal future marker routes to FUTURE",
		},
		{
			claim:    "The carrier might be developing a supersonic jet",
			expected: model.BandUncertain,
			desc:     "Hedging marker routes to UNCERTAIN",
		},
		{
			claim:    "Every aircraft must generate lift to stay airborne",
			expected: model.BandBasicFact,
			desc:     "Universal quantifier routes to BASIC_FACT",
		},
		{
			claim:    "The Boeing 747 first flew in 1969",
			expected: model.BandHistorical,
			desc:     "Historical marker routes to HISTORICAL",
		},
		{
			claim:    "The GE9X produces 110,000 pounds of thrust",
			expected: model.BandTechnical,
			desc:     "Unit and performance vocabulary routes to TECHNICAL",
		},
		{
			claim:    "The Concorde was the most beautiful airliner ever made",
			expected: model.BandOpinion,
			desc:     "Subjective adjective routes to OPINION",
		},
		{
			claim:    "Airbus assembles jets in Toulouse",
			expected: model.BandTechnical,
			desc:     "No matching rule defaults to TECHNICAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := Categorize(tt.claim)
			if result != tt.expected {
				t.Errorf("Expected %v for %q, got %v", tt.expected, tt.claim, result)
			}
		})
	}
}

func TestCategorize_PriorityOrder(t *testing.T) {
	tests := []struct {
		claim    string
		expected model.CategoryBand
		desc     string
	}{
		{
			claim:    "Last month the airline said it will order 50 jets",
			expected: model.BandRecent,
			desc:     "RECENT wins over FUTURE",
		},
		{
			claim:    "Every new widebody might be grounded",
			expected: model.BandUncertain,
			desc:     "UNCERTAIN wins over BASIC_FACT",
		},
		{
			claim:    "Every pilot trains on the first generation of simulators",
			expected: model.BandBasicFact,
			desc:     "BASIC_FACT wins over HISTORICAL",
		},
		{
			claim:    "The first jet engine ran on kerosene",
			expected: model.BandHistorical,
			desc:     "HISTORICAL wins over TECHNICAL",
		},
		{
			claim:    "The best engines produce enormous thrust",
			expected: model.BandTechnical,
			desc:     "TECHNICAL wins over OPINION",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := Categorize(tt.claim)
			if result != tt.expected {
				t.Errorf("Expected %v for %q, got %v", tt.expected, tt.claim, result)
			}
		})
	}
}

func TestCategorize_YearRules(t *testing.T) {
	now := time.Now().Year()

	recent := fmt.Sprintf("The airline carried a record number of travelers in %d", now)
	if got := Categorize(recent); got != model.BandRecent {
		t.Errorf("Expected RECENT for current-year claim, got %v", got)
	}

	future := fmt.Sprintf("A hydrogen airliner enters the market in %d", now+3)
	if got := Categorize(future); got != model.BandFuture {
		t.Errorf("Expected FUTURE for future-year claim, got %v", got)
	}

	historical := "The DC-3 entered airline use in 1936"
	if got := Categorize(historical); got != model.BandHistorical {
		t.Errorf("Expected HISTORICAL for old-year claim, got %v", got)
	}
}

func TestCategorize_Deterministic(t *testing.T) {
	claim := "The A380 can carry more passengers than any other airliner"

	first := Categorize(claim)
	for i := 0; i < 10; i++ {
		if got := Categorize(claim); got != first {
			t.Fatalf("Expected stable categorization, got %v then %v", first, got)
		}
	}
}

func TestBandConfidence(t *testing.T) {
	tests := []struct {
		band     model.CategoryBand
		expected int
	}{
		{model.BandBasicFact, 95},
		{model.BandHistorical, 85},
		{model.BandTechnical, 60},
		{model.BandOpinion, 70},
		{model.BandRecent, 40},
		{model.BandFuture, 35},
		{model.BandUncertain, 30},
	}

	for _, tt := range tests {
		if got := tt.band.Confidence(); got != tt.expected {
			t.Errorf("Expected confidence %d for band %v, got %d", tt.expected, tt.band, got)
		}
	}

	// Unknown bands fall back to the TECHNICAL midpoint.
	if got := model.CategoryBand("MYSTERY").Confidence(); got != 60 {
		t.Errorf("Expected fallback confidence 60 for unknown band, got %d", got)
	}
}

package eval

import (
	"math"
	"strings"
)

// Phrase tables for the hedging heuristic. Presence counts, not frequency:
// each phrase contributes at most once.
var (
	uncertainPhrases = []string{
		"might", "possibly", "could be", "unclear", "uncertain",
		"not sure", "perhaps", "maybe", "appears to", "seems",
	}
	certainPhrases = []string{
		"definitely", "certainly", "clearly", "obviously", "proven",
		"confirmed", "established", "without doubt", "factual",
	}
)

// CalibrationScore compares stated confidence against the certainty of
// the reasoning language, 0-1. A confident number wrapped in hedging
// language scores low, as does a timid number wrapped in certainty.
func CalibrationScore(confidence int, reasoning string) float64 {
	lower := strings.ToLower(reasoning)
	uncertain := countPhrases(lower, uncertainPhrases)
	certain := countPhrases(lower, certainPhrases)

	linguisticCertainty := 50.0
	if uncertain+certain > 0 {
		linguisticCertainty = float64(certain) / float64(uncertain+certain) * 100
	}

	score := 1 - math.Abs(float64(confidence)-linguisticCertainty)/100

	// Extreme confidence without matching language is suspect
	if confidence > 90 && certain == 0 {
		score *= 0.7
	}
	if confidence < 20 && uncertain == 0 {
		score *= 0.7
	}

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func countPhrases(text string, phrases []string) int {
	count := 0
	for _, p := range phrases {
		if strings.Contains(text, p) {
			count++
		}
	}
	return count
}

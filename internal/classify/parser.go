package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/chaff/internal/model"
)

var (
	verdictToken      = regexp.MustCompile(`(?i)\b(LEGITIMATE|BS)\b`)
	confidencePattern = regexp.MustCompile(`(?i)CONFIDENCE[^0-9]*(\d{1,3})`)
)

// ParseJudgment extracts a verdict, confidence, and reasoning from a raw
// model completion. The parser is permissive: it prefers a "VERDICT:" line
// but falls back to the first standalone LEGITIMATE/BS token anywhere in
// the text. A completion with no recognizable verdict yields the ERROR
// sentinel judgment rather than an error value.
func ParseJudgment(raw string) model.Judgment {
	verdict, ok := parseVerdict(raw)
	if !ok {
		return model.Judgment{
			Verdict:    model.VerdictError,
			Confidence: 0,
			Reasoning:  "no verdict found in model response",
		}
	}

	return model.Judgment{
		Verdict:    verdict,
		Confidence: parseConfidence(raw),
		Reasoning:  parseReasoning(raw),
	}
}

func parseVerdict(raw string) (model.Verdict, bool) {
	// Prefer an explicit VERDICT line, tolerant of markdown and punctuation.
	for _, line := range strings.Split(raw, "\n") {
		idx := strings.Index(strings.ToUpper(line), "VERDICT")
		if idx < 0 {
			continue
		}
		if m := verdictToken.FindString(line[idx+len("VERDICT"):]); m != "" {
			return model.Verdict(strings.ToUpper(m)), true
		}
	}

	// Fall back to the first standalone verdict token.
	if m := verdictToken.FindString(raw); m != "" {
		return model.Verdict(strings.ToUpper(m)), true
	}
	return "", false
}

// parseConfidence returns the first confidence integer, clamped to [0,100].
// A missing confidence defaults to the 50 midpoint.
func parseConfidence(raw string) int {
	m := confidencePattern.FindStringSubmatch(raw)
	if m == nil {
		return 50
	}
	n, _ := strconv.Atoi(m[1])
	if n > 100 {
		return 100
	}
	return n
}

// parseReasoning returns the text after the REASONING marker, or the whole
// completion when the marker is absent.
func parseReasoning(raw string) string {
	idx := strings.Index(strings.ToUpper(raw), "REASONING")
	if idx < 0 {
		return strings.TrimSpace(raw)
	}
	rest := raw[idx+len("REASONING"):]
	rest = strings.TrimLeft(rest, ":* \t")
	return strings.TrimSpace(rest)
}

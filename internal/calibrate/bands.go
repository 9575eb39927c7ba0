package calibrate

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ppiankov/chaff/internal/model"
)

// Marker tables for the rule-based categorizer. Matching is case-insensitive
// on whole words, so "will" does not match "willing".
var (
	recentMarkers = []string{
		"last month", "last week", "last quarter", "last year",
		"this year", "this month", "this week", "recently",
		"yesterday", "just announced",
	}
	futureMarkers = []string{
		"will", "next year", "next month", "next decade",
		"upcoming", "planned", "plans to", "expected to",
		"set to", "going to",
	}
	hedgeMarkers = []string{
		"might", "may be", "may have", "could", "possibly",
		"perhaps", "rumored", "reportedly", "allegedly",
		"unconfirmed", "supposedly",
	}
	basicFactMarkers = []string{
		"every", "all", "always", "never", "by definition",
		"universally",
	}
	historicalMarkers = []string{
		"first", "invented", "founded", "originally", "maiden",
		"entered service", "pioneered", "debuted", "historic",
	}
	technicalMarkers = []string{
		"thrust", "engine", "engines", "altitude", "wingspan",
		"fuselage", "knots", "mach", "horsepower", "payload",
		"takeoff weight", "feet", "meters", "kilometers", "miles",
		"kg", "lbs", "pounds", "tons", "tonnes", "capacity",
		"passengers", "rpm", "psi", "avionics", "hydraulic",
		"certification",
	}
	opinionMarkers = []string{
		"best", "worst", "greatest", "beautiful", "ugly",
		"amazing", "terrible", "overrated", "underrated",
		"better than", "worse than", "should", "favorite",
		"iconic",
	}
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// Categorize assigns a confidence band to a claim using deterministic
// keyword rules. Rules are checked in priority order and the first match
// wins: temporal markers (RECENT), future markers (FUTURE), hedging
// markers (UNCERTAIN), then BASIC_FACT, HISTORICAL, TECHNICAL, OPINION.
// A claim matching no rule defaults to TECHNICAL.
func Categorize(text string) model.CategoryBand {
	norm := normalize(text)
	now := time.Now().Year()
	years := claimYears(text)

	switch {
	case hasAny(norm, recentMarkers) || hasYearBetween(years, now-1, now):
		return model.BandRecent
	case hasAny(norm, futureMarkers) || hasYearAfter(years, now):
		return model.BandFuture
	case hasAny(norm, hedgeMarkers):
		return model.BandUncertain
	case hasAny(norm, basicFactMarkers):
		return model.BandBasicFact
	case hasAny(norm, historicalMarkers) || hasYearBefore(years, now-1):
		return model.BandHistorical
	case hasAny(norm, technicalMarkers):
		return model.BandTechnical
	case hasAny(norm, opinionMarkers):
		return model.BandOpinion
	}
	return model.BandTechnical
}

// normalize lowercases the text, strips punctuation from word edges, and
// pads with spaces so markers can be matched on word boundaries.
func normalize(text string) string {
	fields := strings.Fields(strings.ToLower(text))
	for i, f := range fields {
		fields[i] = strings.Trim(f, `.,;:!?"'()[]`)
	}
	return " " + strings.Join(fields, " ") + " "
}

func hasAny(norm string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(norm, " "+m+" ") {
			return true
		}
	}
	return false
}

// claimYears extracts four-digit years mentioned in the claim.
func claimYears(text string) []int {
	var years []int
	for _, m := range yearPattern.FindAllString(text, -1) {
		if y, err := strconv.Atoi(m); err == nil {
			years = append(years, y)
		}
	}
	return years
}

func hasYearBetween(years []int, lo, hi int) bool {
	for _, y := range years {
		if y >= lo && y <= hi {
			return true
		}
	}
	return false
}

func hasYearAfter(years []int, limit int) bool {
	for _, y := range years {
		if y > limit {
			return true
		}
	}
	return false
}

func hasYearBefore(years []int, limit int) bool {
	for _, y := range years {
		if y < limit {
			return true
		}
	}
	return false
}

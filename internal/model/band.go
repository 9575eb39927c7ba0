package model

// CategoryBand is a coarse claim category used to set an expected
// confidence prior before any model call is made
type CategoryBand string

const (
	BandBasicFact  CategoryBand = "BASIC_FACT" // simple verifiable facts
	BandHistorical CategoryBand = "HISTORICAL" // well-documented past events
	BandTechnical  CategoryBand = "TECHNICAL"  // specifications and capabilities
	BandOpinion    CategoryBand = "OPINION"    // subjective judgments
	BandRecent     CategoryBand = "RECENT"     // events near the knowledge cutoff
	BandFuture     CategoryBand = "FUTURE"     // predictions, unverifiable now
	BandUncertain  CategoryBand = "UNCERTAIN"  // hedged or ambiguous statements
)

// bandConfidence is the fixed expected-confidence midpoint per band.
// Low values route a claim to evidence lookup even when the model
// itself sounds sure.
var bandConfidence = map[CategoryBand]int{
	BandBasicFact:  95,
	BandHistorical: 85,
	BandTechnical:  60,
	BandOpinion:    70,
	BandRecent:     40,
	BandFuture:     35,
	BandUncertain:  30,
}

// Confidence returns the expected-confidence midpoint for the band.
// Unknown bands fall back to the TECHNICAL midpoint.
func (b CategoryBand) Confidence() int {
	if c, ok := bandConfidence[b]; ok {
		return c
	}
	return bandConfidence[BandTechnical]
}

// String returns the band name
func (b CategoryBand) String() string {
	return string(b)
}

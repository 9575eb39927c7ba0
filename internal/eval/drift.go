package eval

import (
	"math"
	"strings"
)

// Claim length bounds outside which the claim is flagged as anomalous
const (
	minClaimLength = 10
	maxClaimLength = 500
)

// domainKeywords maps a domain name to the terms expected in its claims.
// A claim matching none of its domain's terms is likely drift from the
// traffic the detector was tuned for.
var domainKeywords = map[string][]string{
	"aviation":   {"aircraft", "flight", "pilot", "airport", "boeing", "airbus"},
	"technology": {"software", "algorithm", "computer", "data", "code"},
	"medical":    {"patient", "treatment", "disease", "doctor", "medicine", "symptoms"},
	"finance":    {"investment", "market", "stock", "trading", "economy", "bank"},
}

// DriftDetector flags claims that look unlike the domain the detector
// was configured for
type DriftDetector struct {
	domain   string
	keywords []string
}

// NewDriftDetector creates a detector for the named domain. Unknown
// domains have no keyword list, so keyword matching never fires and
// every claim scores the 0.5 midpoint.
func NewDriftDetector(domain string) *DriftDetector {
	domain = strings.ToLower(domain)
	return &DriftDetector{
		domain:   domain,
		keywords: domainKeywords[domain],
	}
}

// Anomaly scores how out-of-domain a claim looks, 0 (on-domain) to 1.
// Zero keyword hits scores the 0.5 midpoint rather than 1.0: absence of
// evidence is weaker than a length violation.
func (d *DriftDetector) Anomaly(claim string) float64 {
	lower := strings.ToLower(claim)

	hits := 0
	for _, kw := range d.keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}

	var anomaly float64
	if hits == 0 {
		anomaly = 0.5
	} else {
		anomaly = 1 - math.Min(float64(hits)/3, 1)
	}

	if len(claim) < minClaimLength || len(claim) > maxClaimLength {
		anomaly = math.Max(anomaly, 0.7)
	}

	return anomaly
}

// Package dataset loads labeled claim datasets for evaluation runs.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/chaff/internal/model"
)

// envelope mirrors the on-disk dataset layout
type envelope struct {
	Claims []model.Claim `json:"claims"`
}

// Load reads and validates a labeled claims dataset. The file holds a
// single "claims" list; every record needs a unique id, a ground-truth
// verdict (LEGITIMATE or BS, never ERROR) and a known difficulty.
func Load(path string) ([]model.Claim, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	if len(env.Claims) == 0 {
		return nil, fmt.Errorf("dataset %s contains no claims", path)
	}

	seen := make(map[string]struct{}, len(env.Claims))
	for i, c := range env.Claims {
		if c.ID == "" {
			return nil, fmt.Errorf("dataset %s: claim %d missing id", path, i)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("dataset %s: duplicate id %q", path, c.ID)
		}
		seen[c.ID] = struct{}{}

		if strings.TrimSpace(c.Text) == "" {
			return nil, fmt.Errorf("dataset %s: claim %q has empty text", path, c.ID)
		}
		if c.Verdict != model.VerdictLegitimate && c.Verdict != model.VerdictBS {
			return nil, fmt.Errorf("dataset %s: claim %q verdict must be LEGITIMATE or BS, got %q", path, c.ID, c.Verdict)
		}
		if !c.Difficulty.Valid() {
			return nil, fmt.Errorf("dataset %s: claim %q has unknown difficulty %q", path, c.ID, c.Difficulty)
		}
		if c.ExpectedConfidence < 0 || c.ExpectedConfidence > 100 {
			return nil, fmt.Errorf("dataset %s: claim %q expected_confidence out of range: %d", path, c.ID, c.ExpectedConfidence)
		}
	}

	return env.Claims, nil
}

// Filter returns the claims matching the given difficulty and category.
// Empty values match everything; the input order is preserved.
func Filter(claims []model.Claim, difficulty model.Difficulty, category string) []model.Claim {
	var out []model.Claim
	for _, c := range claims {
		if difficulty != "" && c.Difficulty != difficulty {
			continue
		}
		if category != "" && c.Category != category {
			continue
		}
		out = append(out, c)
	}
	return out
}

package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/chaff/internal/model"
)

// Checker runs one claim through the evaluation state machine
type Checker interface {
	Check(ctx context.Context, claim string) (*model.Evaluation, error)
}

// ClaimJob represents a single claim evaluation job
type ClaimJob struct {
	Claim   string
	Checker Checker
}

// Execute runs the claim through the checker
func (j *ClaimJob) Execute(ctx context.Context) Result {
	eval, err := j.Checker.Check(ctx, j.Claim)
	if err != nil {
		return &ClaimResult{
			Claim: j.Claim,
			Error: err,
		}
	}
	return &ClaimResult{
		Claim:      j.Claim,
		Evaluation: eval,
	}
}

// ClaimResult represents the result of a claim evaluation job
type ClaimResult struct {
	Claim      string
	Evaluation *model.Evaluation
	Error      error
}

// GetError returns the error from the claim result
func (r *ClaimResult) GetError() error {
	return r.Error
}

// BatchProcessor evaluates multiple claims concurrently
type BatchProcessor struct {
	checker     Checker
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(checker Checker, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		checker:     checker,
		concurrency: concurrency,
	}
}

// ProcessClaims evaluates multiple claims concurrently. Results come back
// in completion order, not submission order.
func (b *BatchProcessor) ProcessClaims(ctx context.Context, claims []string) []*ClaimResult {
	if len(claims) == 0 {
		return []*ClaimResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Drain concurrently so submission never blocks on full buffers
	collected := make(chan []Result, 1)
	go func() {
		collected <- pool.Wait()
	}()

	for _, claim := range claims {
		pool.Submit(&ClaimJob{
			Claim:   claim,
			Checker: b.checker,
		})
	}
	pool.Close()

	results := <-collected

	claimResults := make([]*ClaimResult, len(results))
	for i, result := range results {
		claimResults[i] = result.(*ClaimResult)
	}

	return claimResults
}

// ProcessFile reads claims from a file and evaluates them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ClaimResult, error) {
	claims, err := ReadClaimsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	return b.ProcessClaims(ctx, claims), nil
}

// ReadClaimsFromFile reads claims from a file (one per line)
func ReadClaimsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var claims []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Deduplicate claims
		if !seen[line] {
			seen[line] = true
			claims = append(claims, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return claims, nil
}
